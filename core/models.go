package core

import (
	"encoding/binary"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing so that identical
// content always maps to the same identifier.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// HashQuery produces a stable digest of normalized query text.
// Normalization lowercases the query and collapses runs of whitespace,
// so briefs that differ only in casing or spacing share a cache record.
func HashQuery(query string) ID {
	normalized := strings.Join(strings.Fields(strings.ToLower(query)), " ")
	return IDFromContent(normalized)
}

// CorpusEntry is one reference campaign usable as few-shot grounding
// for generation. Entries are immutable after load.
type CorpusEntry struct {
	Id                ID
	Campaign          string
	Brand             string
	Year              int
	Headline          string
	RhetoricalDevices []string // Ordered; validated non-empty at load
	Rationale         string
	Outcome           string
	WhenToUse         string
	WhenNotToUse      string
	Award             string // Optional
	ImpactMetric      string // Optional
	Category          string // Defaults to the primary rhetorical device
	Tags              []string
	QualityScore      float64
}

// EmbeddingText returns the composite text an entry is embedded under.
// A cached vector is only valid for this exact text; if the composite
// changes, the vector must be recomputed.
func (e *CorpusEntry) EmbeddingText() string {
	var b strings.Builder
	b.WriteString("Campaign: ")
	b.WriteString(e.Campaign)
	b.WriteString(". Brand: ")
	b.WriteString(e.Brand)
	b.WriteString(". Headline: ")
	b.WriteString(e.Headline)
	b.WriteString(". Rhetorical Devices: ")
	b.WriteString(strings.Join(e.RhetoricalDevices, ", "))
	b.WriteString(". Rationale: ")
	b.WriteString(e.Rationale)
	b.WriteString(".")
	if e.Award != "" {
		b.WriteString(" Award: ")
		b.WriteString(e.Award)
		b.WriteString(".")
	}
	if e.ImpactMetric != "" {
		b.WriteString(" Impact: ")
		b.WriteString(e.ImpactMetric)
		b.WriteString(".")
	}
	return b.String()
}

// EmbeddingRecord associates an entry with its embedding vector and the
// exact text the vector was generated from.
type EmbeddingRecord struct {
	EntryId ID
	Vector  []float32
	Text    string
}

// ScoredEntry pairs a corpus entry with a relevance score.
type ScoredEntry struct {
	Entry *CorpusEntry
	Score float32
}
