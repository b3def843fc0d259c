package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conceptforge/exemplar/core"
)

func TestVectorStore(t *testing.T) {
	ctx := context.Background()

	records := map[core.ID]*core.EmbeddingRecord{
		1: {EntryId: 1, Vector: []float32{0.1, 0.2}, Text: "first"},
		2: {EntryId: 2, Vector: []float32{0.3, 0.4}, Text: "second"},
		3: {EntryId: 3, Vector: []float32{0.5, 0.6}, Text: "third"},
	}

	t.Run("save then load round trip", func(t *testing.T) {
		store, err := NewMemoryVectorStore()
		require.NoError(t, err)
		defer store.Close()

		require.NoError(t, store.Save(ctx, records))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 3)
		assert.Equal(t, "second", loaded[2].Text)
		assert.Equal(t, []float32{0.5, 0.6}, loaded[3].Vector)
	})

	t.Run("empty store loads empty", func(t *testing.T) {
		store, err := NewMemoryVectorStore()
		require.NoError(t, err)
		defer store.Close()

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, loaded)
	})

	t.Run("save removes stale records", func(t *testing.T) {
		store, err := NewMemoryVectorStore()
		require.NoError(t, err)
		defer store.Close()

		require.NoError(t, store.Save(ctx, records))
		require.NoError(t, store.Save(ctx, map[core.ID]*core.EmbeddingRecord{
			2: records[2],
		}))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.Equal(t, "second", loaded[2].Text)
	})

	t.Run("closed store rejects operations", func(t *testing.T) {
		store, err := NewMemoryVectorStore()
		require.NoError(t, err)
		require.NoError(t, store.Close())

		_, err = store.Load(ctx)
		assert.Error(t, err)
	})
}
