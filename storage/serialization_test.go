package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conceptforge/exemplar/core"
)

func TestEmbeddingRecordSerialization(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		record := &core.EmbeddingRecord{
			EntryId: core.IDFromContent("Think Small-Volkswagen"),
			Vector:  []float32{0.25, -0.5, 0.75, 1.0},
			Text:    "Campaign: Think Small. Brand: Volkswagen.",
		}

		data := MarshalEmbeddingRecord(record)
		decoded, err := UnmarshalEmbeddingRecord(data)
		require.NoError(t, err)
		assert.Equal(t, record.EntryId, decoded.EntryId)
		assert.Equal(t, record.Vector, decoded.Vector)
		assert.Equal(t, record.Text, decoded.Text)
	})

	t.Run("empty vector", func(t *testing.T) {
		record := &core.EmbeddingRecord{EntryId: 7, Text: "no vector yet"}

		decoded, err := UnmarshalEmbeddingRecord(MarshalEmbeddingRecord(record))
		require.NoError(t, err)
		assert.Equal(t, core.ID(7), decoded.EntryId)
		assert.Empty(t, decoded.Vector)
	})

	t.Run("truncated data fails", func(t *testing.T) {
		record := &core.EmbeddingRecord{
			EntryId: 42,
			Vector:  []float32{0.1, 0.2},
			Text:    "truncate me",
		}
		data := MarshalEmbeddingRecord(record)

		_, err := UnmarshalEmbeddingRecord(data[:len(data)/2])
		assert.Error(t, err)
	})
}
