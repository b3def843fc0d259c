// Copyright 2025 ConceptForge
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package exemplar

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/conceptforge/exemplar/ai"
	"github.com/conceptforge/exemplar/ai/openai"
	"github.com/conceptforge/exemplar/core"
	"github.com/conceptforge/exemplar/corpus"
	"github.com/conceptforge/exemplar/embedding"
	"github.com/conceptforge/exemplar/retrieval"
	"github.com/conceptforge/exemplar/storage"
)

// Engine owns the corpus store, the embedding cache, and the retriever.
// Construct one per corpus and share it across request handlers; all
// serving-path methods are safe for concurrent use.
type Engine struct {
	store     *corpus.Store
	cache     *embedding.Cache
	retriever *retrieval.Retriever
	logger    *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig      *ai.Config
	embedder      ai.Embedder
	vectors       storage.VectorStore
	cachePath     string
	retrieverOpts []retrieval.Option
	cacheOpts     []embedding.Option
	logger        *slog.Logger
}

// WithAIConfig sets the embedding service configuration used when no
// explicit embedder is provided.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithEmbedder injects an embedder, bypassing the OpenAI-compatible
// default. Tests use this with the mock.
func WithEmbedder(embedder ai.Embedder) EngineOption {
	return func(o *engineOptions) {
		o.embedder = embedder
	}
}

// WithVectorStore injects a vector store, bypassing the JSON file
// default.
func WithVectorStore(store storage.VectorStore) EngineOption {
	return func(o *engineOptions) {
		o.vectors = store
	}
}

// WithCachePath sets where the JSON file store keeps the embedding
// snapshot. Default is embeddings.json next to the corpus file.
func WithCachePath(path string) EngineOption {
	return func(o *engineOptions) {
		o.cachePath = path
	}
}

// WithRetrieverOptions forwards options to the retriever.
func WithRetrieverOptions(opts ...retrieval.Option) EngineOption {
	return func(o *engineOptions) {
		o.retrieverOpts = append(o.retrieverOpts, opts...)
	}
}

// WithCacheOptions forwards options to the embedding cache.
func WithCacheOptions(opts ...embedding.Option) EngineOption {
	return func(o *engineOptions) {
		o.cacheOpts = append(o.cacheOpts, opts...)
	}
}

// WithEngineLogger sets a custom logger.
// Default is slog.Default().
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewEngine loads the corpus at corpusPath and wires the engine
// components. A missing or unparseable corpus file is the only fatal
// startup condition.
func NewEngine(corpusPath string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	store, err := corpus.Load(corpusPath, corpus.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}

	embedder := options.embedder
	if embedder == nil {
		embedder, err = openai.NewEmbedder(options.aiConfig)
		if err != nil {
			return nil, err
		}
	}

	vectors := options.vectors
	if vectors == nil {
		cachePath := options.cachePath
		if cachePath == "" {
			cachePath = filepath.Join(filepath.Dir(corpusPath), "embeddings.json")
		}
		vectors = storage.NewFileStore(cachePath, storage.WithFileStoreLogger(options.logger))
	}

	cacheOpts := append([]embedding.Option{embedding.WithLogger(options.logger)}, options.cacheOpts...)
	cache, err := embedding.NewCache(vectors, embedder, cacheOpts...)
	if err != nil {
		vectors.Close()
		return nil, err
	}

	retrieverOpts := append([]retrieval.Option{retrieval.WithLogger(options.logger)}, options.retrieverOpts...)
	retriever, err := retrieval.NewRetriever(store, cache, embedder, retrieverOpts...)
	if err != nil {
		cache.Close()
		return nil, err
	}

	return &Engine{
		store:     store,
		cache:     cache,
		retriever: retriever,
		logger:    options.logger,
	}, nil
}

// Retrieve returns up to n diverse reference examples for the query.
// Best effort: it degrades to lexical search rather than failing.
func (e *Engine) Retrieve(ctx context.Context, query string, n int) []core.ScoredEntry {
	return e.retriever.Retrieve(ctx, query, n)
}

// RetrieveWithMonitor is Retrieve with observation hooks.
func (e *Engine) RetrieveWithMonitor(ctx context.Context, query string, n int, monitor retrieval.RetrievalMonitor) []core.ScoredEntry {
	return e.retriever.RetrieveWithMonitor(ctx, query, n, monitor)
}

// Warm synchronously embeds every corpus entry missing a cached vector.
// Returns the number of vectors computed.
func (e *Engine) Warm(ctx context.Context) (int, error) {
	return e.cache.ComputeMissing(ctx, e.store.Entries())
}

// WarmAsync schedules warming in the background and returns
// immediately.
func (e *Engine) WarmAsync(ctx context.Context) error {
	return e.cache.WarmAsync(ctx, e.store.Entries())
}

// Suggestions completes a partial filter term against device names,
// tags, and indexed words.
func (e *Engine) Suggestions(partial string, limit int) []string {
	return e.store.Suggestions(partial, limit)
}

// Store exposes the corpus store for direct lexical queries.
func (e *Engine) Store() *corpus.Store {
	return e.store
}

// Stats describes the engine's data at a point in time.
type Stats struct {
	Corpus          corpus.IndexStats
	RejectedRecords int
	EmbeddedVectors int
	LiveSessions    int
}

// Stats reports corpus, index, cache, and session sizes.
func (e *Engine) Stats() Stats {
	return Stats{
		Corpus:          e.store.Stats(),
		RejectedRecords: len(e.store.Rejections()),
		EmbeddedVectors: e.cache.Len(),
		LiveSessions:    e.retriever.SessionCount(),
	}
}

// Close saves the embedding cache and releases resources.
func (e *Engine) Close() error {
	if err := e.cache.Close(); err != nil {
		e.logger.Error("error closing embedding cache", "err", err)
		return err
	}
	return nil
}
