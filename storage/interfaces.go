package storage

import (
	"context"

	"github.com/conceptforge/exemplar/core"
)

// VectorStore persists embedding records between runs.
// Implementations must be safe for concurrent use.
type VectorStore interface {
	// Load reads all persisted embedding records. A missing or corrupt
	// store yields an empty map, not an error; the cache rebuilds what
	// it needs from the embedder.
	Load(ctx context.Context) (map[core.ID]*core.EmbeddingRecord, error)

	// Save persists a full snapshot of the cache, replacing whatever
	// was stored before.
	Save(ctx context.Context, records map[core.ID]*core.EmbeddingRecord) error

	// Close releases backend resources.
	Close() error
}
