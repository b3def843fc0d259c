package corpus

import (
	"strings"
	"testing"

	"github.com/conceptforge/exemplar/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexLookups(t *testing.T) {
	store := loadTestStore(t)
	vw := core.IDFromContent("Think Small-Volkswagen")
	metro := core.IDFromContent("Dumb Ways to Die-Metro Trains")

	t.Run("by category", func(t *testing.T) {
		ids := store.ByCategory("public safety")
		assert.Equal(t, []core.ID{metro}, ids)
	})

	t.Run("by category is case insensitive", func(t *testing.T) {
		assert.Equal(t, store.ByCategory("Public Safety"), store.ByCategory("public safety"))
	})

	t.Run("by device", func(t *testing.T) {
		ids := store.ByDevice("irony")
		assert.Equal(t, []core.ID{vw}, ids)
	})

	t.Run("secondary devices indexed", func(t *testing.T) {
		assert.NotEmpty(t, store.ByDevice("repetition"))
	})

	t.Run("by tag", func(t *testing.T) {
		ids := store.ByTag("automotive")
		assert.Equal(t, []core.ID{vw}, ids)
	})

	t.Run("by word", func(t *testing.T) {
		ids := store.ByWord("safety")
		assert.Equal(t, []core.ID{metro}, ids)
	})

	t.Run("unknown keys return empty", func(t *testing.T) {
		assert.Empty(t, store.ByCategory("nope"))
		assert.Empty(t, store.ByDevice("nope"))
		assert.Empty(t, store.ByTag("nope"))
		assert.Empty(t, store.ByWord("nope"))
	})
}

func TestExtractWords(t *testing.T) {
	t.Run("short words excluded", func(t *testing.T) {
		words := extractWords("go to a big event")
		assert.NotContains(t, words, "go")
		assert.NotContains(t, words, "to")
		assert.Contains(t, words, "big")
		assert.Contains(t, words, "event")
	})

	t.Run("lowercased and punctuation stripped", func(t *testing.T) {
		words := extractWords("Safety! Matters,")
		assert.Equal(t, []string{"safety", "matters"}, words)
	})

	t.Run("stop words removed", func(t *testing.T) {
		words := extractWords("the brand and the campaign")
		assert.Equal(t, []string{"brand", "campaign"}, words)
	})

	t.Run("deduplicated", func(t *testing.T) {
		words := extractWords("safety safety safety first")
		assert.Equal(t, []string{"safety", "first"}, words)
	})

	t.Run("bounded per entry", func(t *testing.T) {
		var b strings.Builder
		for i := 0; i < 200; i++ {
			b.WriteString("word")
			b.WriteString(strings.Repeat("x", i%10+1))
			b.WriteString(strings.Repeat("y", i/10))
			b.WriteString(" ")
		}
		words := extractWords(b.String())
		assert.LessOrEqual(t, len(words), maxIndexedWords)
	})
}

func TestStats(t *testing.T) {
	store := loadTestStore(t)
	stats := store.Stats()
	assert.Equal(t, 3, stats.Entries)
	assert.Equal(t, 3, stats.Categories) // irony, imperative, public safety
	assert.Equal(t, 6, stats.Devices)
	assert.Equal(t, 5, stats.Tags)
	assert.Positive(t, stats.Words)
}

func TestOrdered_InsertionOrder(t *testing.T) {
	corpus := `{"campaigns": [
		{"campaign": "A", "brand": "X", "year": 2000, "headline": "shared word", "rhetoricalDevices": ["pun"], "rationale": "r"},
		{"campaign": "B", "brand": "Y", "year": 2001, "headline": "shared word", "rhetoricalDevices": ["pun"], "rationale": "r"},
		{"campaign": "C", "brand": "Z", "year": 2002, "headline": "shared word", "rhetoricalDevices": ["pun"], "rationale": "r"}
	]}`
	store, err := LoadReader(strings.NewReader(corpus))
	require.NoError(t, err)

	ids := store.ByWord("shared")
	require.Len(t, ids, 3)
	assert.Equal(t, "A", store.Get(ids[0]).Campaign)
	assert.Equal(t, "B", store.Get(ids[1]).Campaign)
	assert.Equal(t, "C", store.Get(ids[2]).Campaign)
}
