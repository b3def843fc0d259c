package storage

import (
	"context"
	"sync"

	"github.com/conceptforge/exemplar/core"
)

// MemoryStore is an in-process VectorStore for tests and ephemeral runs.
// Nothing survives the process.
type MemoryStore struct {
	mu      sync.Mutex
	records map[core.ID]*core.EmbeddingRecord
	closed  bool

	// SaveCount tracks how many snapshots were taken, for tests.
	SaveCount int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[core.ID]*core.EmbeddingRecord),
	}
}

// Load returns a copy of the current snapshot.
func (s *MemoryStore) Load(ctx context.Context) (map[core.ID]*core.EmbeddingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStorageClosed
	}

	out := make(map[core.ID]*core.EmbeddingRecord, len(s.records))
	for id, record := range s.records {
		out[id] = record
	}
	return out, nil
}

// Save replaces the snapshot.
func (s *MemoryStore) Save(ctx context.Context, records map[core.ID]*core.EmbeddingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}

	s.records = make(map[core.ID]*core.EmbeddingRecord, len(records))
	for id, record := range records {
		s.records[id] = record
	}
	s.SaveCount++
	return nil
}

// Close marks the store closed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
