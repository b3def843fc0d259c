package retrieval

import (
	"context"
	"log/slog"
	"time"

	"github.com/conceptforge/exemplar/ai"
	"github.com/conceptforge/exemplar/core"
	"github.com/conceptforge/exemplar/corpus"
	"github.com/conceptforge/exemplar/embedding"
	"github.com/conceptforge/exemplar/rank"
)

// Retriever answers queries against the corpus. It owns the session
// cache; the corpus store and embedding cache are shared, read-mostly
// collaborators.
type Retriever struct {
	store    *corpus.Store
	cache    *embedding.Cache
	embedder ai.Embedder
	sessions *sessionCache

	poolSize int
	logger   *slog.Logger
}

// Option configures a Retriever.
type Option func(*retrieverConfig)

type retrieverConfig struct {
	poolSize       int
	ttl            time.Duration
	rotationServes int
	rotationStride int
	params         rank.Params
	logger         *slog.Logger
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *retrieverConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPoolSize sets how many ranked candidates each query caches.
func WithPoolSize(n int) Option {
	return func(c *retrieverConfig) {
		if n > 0 {
			c.poolSize = n
		}
	}
}

// WithTTL sets the session record time-to-live.
func WithTTL(ttl time.Duration) Option {
	return func(c *retrieverConfig) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithRotation sets how many serves rotate through pool slices before
// diversity selection takes over, and how far the window advances per
// serve.
func WithRotation(serves, stride int) Option {
	return func(c *retrieverConfig) {
		if serves > 0 {
			c.rotationServes = serves
		}
		if stride > 0 {
			c.rotationStride = stride
		}
	}
}

// WithDiversityParams overrides the diversity penalty weights.
func WithDiversityParams(params rank.Params) Option {
	return func(c *retrieverConfig) {
		c.params = params
	}
}

// NewRetriever creates a retriever over the given collaborators.
func NewRetriever(store *corpus.Store, cache *embedding.Cache, embedder ai.Embedder, opts ...Option) (*Retriever, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if cache == nil {
		return nil, ErrCacheRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	cfg := &retrieverConfig{
		poolSize:       rank.DefaultPoolSize,
		ttl:            defaultTTL,
		rotationServes: defaultRotationServes,
		rotationStride: defaultRotationStride,
		params:         rank.DefaultParams(),
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Retriever{
		store:    store,
		cache:    cache,
		embedder: embedder,
		sessions: newSessionCache(cfg.ttl, cfg.rotationServes, cfg.rotationStride, cfg.params),
		poolSize: cfg.poolSize,
		logger:   cfg.logger,
	}, nil
}

// Retrieve returns up to n examples for the query. It never fails: an
// unavailable embedder degrades to lexical search, and an empty corpus
// yields an empty slice.
func (r *Retriever) Retrieve(ctx context.Context, query string, n int) []core.ScoredEntry {
	return r.RetrieveWithMonitor(ctx, query, n, nil)
}

// RetrieveWithMonitor is Retrieve with observation hooks.
// The monitor receives callbacks at each stage of the retrieval.
func (r *Retriever) RetrieveWithMonitor(ctx context.Context, query string, n int, monitor RetrievalMonitor) []core.ScoredEntry {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	queryHash := core.HashQuery(query)

	if results, served, ok := r.sessions.serve(queryHash, n); ok {
		monitor.SessionHit(queryHash, served)
		monitor.Finish(results)
		return results
	}
	monitor.SessionMiss(queryHash)

	pool := r.buildPool(ctx, query, monitor)
	results := r.sessions.store(queryHash, pool, n)

	monitor.Finish(results)
	return results
}

// buildPool computes the candidate pool for a query: embed and rank, or
// fall back to lexical search when the embedder is unavailable or the
// corpus has no cached vectors yet.
func (r *Retriever) buildPool(ctx context.Context, query string, monitor RetrievalMonitor) []core.ScoredEntry {
	vector, err := r.embedder.EmbedText(ctx, query)
	if err != nil || len(vector) == 0 {
		if err != nil {
			r.logger.Warn("query embedding failed, using lexical search", "err", err)
			monitor.EmbedderFailed(err)
		}
		return r.lexicalPool(query, monitor)
	}
	monitor.AfterEmbedding(len(vector))

	pool := rank.TopK(vector, r.store.Entries(), r.cache, r.poolSize)
	monitor.AfterRanking(pool)

	if len(pool) == 0 {
		r.logger.Debug("no embedded entries to rank, using lexical search", "query", query)
		return r.lexicalPool(query, monitor)
	}
	return pool
}

// lexicalPool builds a best-effort pool from the inverted index, scored
// by corpus quality instead of similarity.
func (r *Retriever) lexicalPool(query string, monitor RetrievalMonitor) []core.ScoredEntry {
	entries := r.store.SearchHybrid(query, corpus.Filters{}, r.poolSize)

	pool := make([]core.ScoredEntry, 0, len(entries))
	for _, entry := range entries {
		pool = append(pool, core.ScoredEntry{
			Entry: entry,
			Score: float32(entry.QualityScore),
		})
	}
	monitor.LexicalFallback(pool)
	return pool
}

// SessionCount reports live session records, for stats.
func (r *Retriever) SessionCount() int {
	return r.sessions.len()
}
