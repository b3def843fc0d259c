package embedding

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/time/rate"

	"github.com/conceptforge/exemplar/ai"
	"github.com/conceptforge/exemplar/core"
	"github.com/conceptforge/exemplar/storage"
)

const (
	// defaultEmbedInterval spaces out embedder calls during warm-up so a
	// local service isn't flooded by a cold start.
	defaultEmbedInterval = 100 * time.Millisecond

	// defaultProgressInterval is how many entries between progress logs.
	defaultProgressInterval = 20
)

// Cache holds corpus embedding vectors in memory, backed by a
// VectorStore snapshot. Safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	records map[core.ID]*core.EmbeddingRecord
	closed  bool

	store    storage.VectorStore
	embedder ai.Embedder
	limiter  *rate.Limiter
	pool     *ants.Pool
	logger   *slog.Logger

	progressInterval int
}

// Option configures a Cache.
type Option func(*Cache) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// WithLimiter sets the rate limiter applied between embedder calls
// during warm-up. Tests pass rate.NewLimiter(rate.Inf, 0) to disable
// throttling.
func WithLimiter(limiter *rate.Limiter) Option {
	return func(c *Cache) error {
		if limiter != nil {
			c.limiter = limiter
		}
		return nil
	}
}

// WithProgressInterval sets how many entries between warm-up progress
// log lines.
func WithProgressInterval(n int) Option {
	return func(c *Cache) error {
		if n > 0 {
			c.progressInterval = n
		}
		return nil
	}
}

// NewCache creates a cache over the given store and embedder, loading
// any persisted snapshot.
func NewCache(store storage.VectorStore, embedder ai.Embedder, opts ...Option) (*Cache, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	c := &Cache{
		store:            store,
		embedder:         embedder,
		limiter:          rate.NewLimiter(rate.Every(defaultEmbedInterval), 1),
		logger:           slog.Default(),
		progressInterval: defaultProgressInterval,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	records, err := store.Load(context.Background())
	if err != nil {
		return nil, err
	}
	c.records = records

	// Warm-up runs on a single worker so concurrent callers never race
	// the embedder.
	pool, err := ants.NewPool(1)
	if err != nil {
		return nil, err
	}
	c.pool = pool

	c.logger.Info("embedding cache loaded", "records", len(records))
	return c, nil
}

// Vector returns the cached vector for an entry, if present.
func (c *Cache) Vector(id core.ID) ([]float32, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	record, ok := c.records[id]
	if !ok || len(record.Vector) == 0 {
		return nil, false
	}
	return record.Vector, true
}

// Len returns the number of cached records.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Missing returns the entries that need embedding: no cached record, or
// a record whose embedded text no longer matches the entry.
func (c *Cache) Missing(entries []*core.CorpusEntry) []*core.CorpusEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var missing []*core.CorpusEntry
	for _, entry := range entries {
		record, ok := c.records[entry.Id]
		if !ok || record.Text != entry.EmbeddingText() || len(record.Vector) == 0 {
			missing = append(missing, entry)
		}
	}
	return missing
}

// ComputeMissing embeds every entry Missing reports, honoring the rate
// limiter between calls. A failure on one entry is logged and skipped;
// the rest still embed. Whatever succeeded is snapshotted to the store
// before returning. Returns the number of entries embedded.
func (c *Cache) ComputeMissing(ctx context.Context, entries []*core.CorpusEntry) (int, error) {
	missing := c.Missing(entries)
	if len(missing) == 0 {
		return 0, nil
	}

	c.logger.Info("computing embeddings", "missing", len(missing), "total", len(entries))

	embedded := 0
	for i, entry := range missing {
		if err := c.limiter.Wait(ctx); err != nil {
			// Context cancelled mid warm-up. Keep what we have.
			break
		}

		text := entry.EmbeddingText()
		vector, err := c.embedder.EmbedText(ctx, text)
		if err != nil {
			c.logger.Warn("embedding failed, skipping entry", "campaign", entry.Campaign, "err", err)
			continue
		}
		if len(vector) == 0 {
			c.logger.Warn("embedder returned empty vector, skipping entry", "campaign", entry.Campaign)
			continue
		}

		c.put(&core.EmbeddingRecord{EntryId: entry.Id, Vector: vector, Text: text})
		embedded++

		if (i+1)%c.progressInterval == 0 {
			c.logger.Info("embedding progress", "done", i+1, "missing", len(missing))
		}
	}

	if embedded > 0 {
		if err := c.save(ctx); err != nil {
			return embedded, err
		}
	}

	c.logger.Info("embedding warm-up complete", "embedded", embedded, "skipped", len(missing)-embedded)
	return embedded, nil
}

// WarmAsync schedules ComputeMissing on the background worker and
// returns immediately. Errors are logged, not returned.
func (c *Cache) WarmAsync(ctx context.Context, entries []*core.CorpusEntry) error {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return ErrCacheClosed
	}
	c.mu.RUnlock()

	return c.pool.Submit(func() {
		if _, err := c.ComputeMissing(ctx, entries); err != nil {
			c.logger.Error("background embedding warm-up failed", "err", err)
		}
	})
}

// Put inserts or replaces a record. Used by callers that obtained a
// vector themselves, for example the retriever backfilling a query hit.
func (c *Cache) Put(record *core.EmbeddingRecord) {
	c.put(record)
}

func (c *Cache) put(record *core.EmbeddingRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records[record.EntryId] = record
}

func (c *Cache) save(ctx context.Context) error {
	c.mu.RLock()
	snapshot := make(map[core.ID]*core.EmbeddingRecord, len(c.records))
	for id, record := range c.records {
		snapshot[id] = record
	}
	c.mu.RUnlock()

	return c.store.Save(ctx, snapshot)
}

// Save snapshots the cache to the backing store.
func (c *Cache) Save(ctx context.Context) error {
	return c.save(ctx)
}

// Close releases the worker pool and closes the backing store. The
// cache is saved first so nothing embedded this run is lost.
func (c *Cache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.pool.Release()

	if err := c.save(context.Background()); err != nil {
		c.logger.Warn("failed to save embedding cache on close", "err", err)
	}
	return c.store.Close()
}
