package corpus

import (
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/conceptforge/exemplar/core"
)

// fuzzyThreshold is the minimum normalized edit-distance similarity for
// a query word to match an indexed word.
const fuzzyThreshold = 0.7

// Filters narrows an exact search. Empty filters match everything.
type Filters struct {
	Categories []string
	Devices    []string
	MinQuality float64
}

// SearchExact finds entries by index intersection: the first non-empty
// filter (category, then device, then query words) seeds the candidate
// set and each subsequent filter intersects it. With no filters at all,
// every entry is a candidate. Results are ranked by quality score
// descending, ties broken by corpus insertion order.
func (s *Store) SearchExact(query string, filters Filters, limit int) []*core.CorpusEntry {
	var candidates idSet
	seeded := false

	if len(filters.Categories) > 0 {
		matches := make(idSet)
		for _, category := range filters.Categories {
			for id := range s.index.category[normalizeKey(category)] {
				matches.add(id)
			}
		}
		candidates = matches
		seeded = true
	}

	if len(filters.Devices) > 0 {
		matches := make(idSet)
		for _, device := range filters.Devices {
			for id := range s.index.device[normalizeKey(device)] {
				matches.add(id)
			}
		}
		if seeded {
			candidates = candidates.intersect(matches)
		} else {
			candidates = matches
			seeded = true
		}
	}

	if words := extractWords(query); len(words) > 0 {
		matches := make(idSet)
		for _, word := range words {
			for id := range s.index.word[word] {
				matches.add(id)
			}
		}
		if seeded {
			candidates = candidates.intersect(matches)
		} else {
			candidates = matches
			seeded = true
		}
	}

	// No filter applied means all entries are candidates.
	if !seeded {
		candidates = make(idSet, len(s.entries))
		for _, entry := range s.entries {
			candidates.add(entry.Id)
		}
	}

	results := make([]*core.CorpusEntry, 0, len(candidates))
	for id := range candidates {
		entry := s.byID[id]
		if entry.QualityScore >= filters.MinQuality {
			results = append(results, entry)
		}
	}

	slices.SortFunc(results, func(a, b *core.CorpusEntry) int {
		if a.QualityScore != b.QualityScore {
			if a.QualityScore > b.QualityScore {
				return -1
			}
			return 1
		}
		return s.position(a.Id) - s.position(b.Id)
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// SearchFuzzy tolerates typos by comparing each query word against every
// indexed word with Levenshtein edit distance. A word pair matches when
// its normalized similarity exceeds the threshold; each matching word
// adds its similarity to the relevance score of the entries containing
// it. Results are ranked by accumulated score descending, ties broken by
// corpus insertion order.
func (s *Store) SearchFuzzy(query string, limit int) []core.ScoredEntry {
	scores := make(map[core.ID]float32)

	for _, word := range extractWords(query) {
		for indexed, ids := range s.index.word {
			similarity := wordSimilarity(word, indexed)
			if similarity <= fuzzyThreshold {
				continue
			}
			for id := range ids {
				scores[id] += similarity
			}
		}
	}

	results := make([]core.ScoredEntry, 0, len(scores))
	for id, score := range scores {
		results = append(results, core.ScoredEntry{Entry: s.byID[id], Score: score})
	}

	slices.SortFunc(results, func(a, b core.ScoredEntry) int {
		if a.Score != b.Score {
			if a.Score > b.Score {
				return -1
			}
			return 1
		}
		return s.position(a.Entry.Id) - s.position(b.Entry.Id)
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// SearchHybrid interleaves exact matches first (more precise), then fills
// remaining slots with fuzzy matches, deduplicating by entry id.
func (s *Store) SearchHybrid(query string, filters Filters, limit int) []*core.CorpusEntry {
	seen := make(map[core.ID]bool)
	combined := make([]*core.CorpusEntry, 0, limit)

	for _, entry := range s.SearchExact(query, filters, limit) {
		if !seen[entry.Id] && len(combined) < limit {
			combined = append(combined, entry)
			seen[entry.Id] = true
		}
	}

	for _, scored := range s.SearchFuzzy(query, limit) {
		if !seen[scored.Entry.Id] && len(combined) < limit {
			combined = append(combined, scored.Entry)
			seen[scored.Entry.Id] = true
		}
	}

	return combined
}

// Suggestions returns up to limit completions for a partial input, drawn
// from device names, tags, and indexed words.
func (s *Store) Suggestions(partial string, limit int) []string {
	partial = normalizeKey(partial)
	if partial == "" {
		return nil
	}

	suggestions := make(map[string]bool)
	for device := range s.index.device {
		if strings.Contains(device, partial) {
			suggestions[device] = true
		}
	}
	for tag := range s.index.tag {
		if strings.Contains(tag, partial) {
			suggestions[tag] = true
		}
	}
	for word := range s.index.word {
		if strings.HasPrefix(word, partial) {
			suggestions[word] = true
		}
	}

	results := make([]string, 0, len(suggestions))
	for suggestion := range suggestions {
		results = append(results, suggestion)
	}
	slices.Sort(results)

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// wordSimilarity computes normalized edit-distance similarity in [0, 1].
func wordSimilarity(a, b string) float32 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 0
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 1 - float32(distance)/float32(longest)
}
