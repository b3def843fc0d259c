package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conceptforge/exemplar/core"
)

func testRecords() map[core.ID]*core.EmbeddingRecord {
	return map[core.ID]*core.EmbeddingRecord{
		1: {EntryId: 1, Vector: []float32{0.1, 0.2, 0.3}, Text: "first"},
		2: {EntryId: 2, Vector: []float32{0.4, 0.5, 0.6}, Text: "second"},
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()

	t.Run("save then load round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "embeddings.json")
		store := NewFileStore(path)
		defer store.Close()

		require.NoError(t, store.Save(ctx, testRecords()))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 2)
		assert.Equal(t, "first", loaded[1].Text)
		assert.Equal(t, []float32{0.4, 0.5, 0.6}, loaded[2].Vector)
	})

	t.Run("missing file loads empty", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing.json")
		store := NewFileStore(path)
		defer store.Close()

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, loaded)
	})

	t.Run("corrupt file loads empty", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "corrupt.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
		store := NewFileStore(path)
		defer store.Close()

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, loaded)
	})

	t.Run("save replaces previous snapshot", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "embeddings.json")
		store := NewFileStore(path)
		defer store.Close()

		require.NoError(t, store.Save(ctx, testRecords()))
		require.NoError(t, store.Save(ctx, map[core.ID]*core.EmbeddingRecord{
			3: {EntryId: 3, Vector: []float32{1}, Text: "only"},
		}))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.Equal(t, "only", loaded[3].Text)
	})

	t.Run("save creates parent directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "embeddings.json")
		store := NewFileStore(path)
		defer store.Close()

		require.NoError(t, store.Save(ctx, testRecords()))
		_, err := os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("closed store rejects operations", func(t *testing.T) {
		store := NewFileStore(filepath.Join(t.TempDir(), "e.json"))
		require.NoError(t, store.Close())

		_, err := store.Load(ctx)
		assert.ErrorIs(t, err, ErrStorageClosed)
		assert.ErrorIs(t, store.Save(ctx, nil), ErrStorageClosed)
	})
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		store := NewMemoryStore()
		defer store.Close()

		require.NoError(t, store.Save(ctx, testRecords()))
		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, loaded, 2)
		assert.Equal(t, 1, store.SaveCount)
	})

	t.Run("load returns a copy", func(t *testing.T) {
		store := NewMemoryStore()
		defer store.Close()

		require.NoError(t, store.Save(ctx, testRecords()))
		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		delete(loaded, 1)

		again, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, again, 2)
	})
}
