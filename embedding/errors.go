package embedding

import "errors"

var (
	// ErrStoreRequired indicates that no vector store was provided.
	ErrStoreRequired = errors.New("vector store is required")

	// ErrEmbedderRequired indicates that no embedder was provided.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrCacheClosed indicates that the cache has been closed.
	ErrCacheClosed = errors.New("embedding cache is closed")
)
