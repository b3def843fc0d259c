package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		id1 := IDFromContent("Think Small-Volkswagen")
		id2 := IDFromContent("Think Small-Volkswagen")
		assert.Equal(t, id1, id2)
	})

	t.Run("distinct content produces distinct ids", func(t *testing.T) {
		id1 := IDFromContent("Think Small-Volkswagen")
		id2 := IDFromContent("Just Do It-Nike")
		assert.NotEqual(t, id1, id2)
	})

	t.Run("empty content is valid", func(t *testing.T) {
		id := IDFromContent("")
		assert.NotZero(t, id)
	})
}

func TestHashQuery(t *testing.T) {
	t.Run("case insensitive", func(t *testing.T) {
		assert.Equal(t, HashQuery("Road Safety"), HashQuery("road safety"))
	})

	t.Run("whitespace collapsed", func(t *testing.T) {
		assert.Equal(t, HashQuery("  road   safety "), HashQuery("road safety"))
	})

	t.Run("different queries hash differently", func(t *testing.T) {
		assert.NotEqual(t, HashQuery("road safety"), HashQuery("brand awareness"))
	})
}

func TestEmbeddingText(t *testing.T) {
	entry := &CorpusEntry{
		Campaign:          "Think Small",
		Brand:             "Volkswagen",
		Year:              1959,
		Headline:          "Think small.",
		RhetoricalDevices: []string{"understatement", "irony"},
		Rationale:         "Subverted car advertising by embracing smallness.",
	}

	t.Run("required fields", func(t *testing.T) {
		text := entry.EmbeddingText()
		assert.Equal(t,
			"Campaign: Think Small. Brand: Volkswagen. Headline: Think small. "+
				"Rhetorical Devices: understatement, irony. "+
				"Rationale: Subverted car advertising by embracing smallness..",
			text)
	})

	t.Run("optional award and impact appended", func(t *testing.T) {
		withExtras := *entry
		withExtras.Award = "Cannes Grand Prix"
		withExtras.ImpactMetric = "Sales up 37%"
		text := withExtras.EmbeddingText()
		assert.Contains(t, text, " Award: Cannes Grand Prix.")
		assert.Contains(t, text, " Impact: Sales up 37%.")
	})

	t.Run("stable for identical entries", func(t *testing.T) {
		clone := *entry
		assert.Equal(t, entry.EmbeddingText(), clone.EmbeddingText())
	})
}
