package rank

import (
	"math"

	"github.com/conceptforge/exemplar/core"
)

// Params controls the diversity penalties applied during selection.
// All penalties are multiplicative factors in (0, 1].
type Params struct {
	// SameBrandPenalty applies when the candidate shares a brand with an
	// already-selected entry.
	SameBrandPenalty float64

	// NearYearPenalty applies when the candidate's year is within
	// NearYearWindow of a selected entry's year.
	NearYearPenalty float64
	NearYearWindow  int

	// MidYearPenalty applies when the year gap is at least NearYearWindow
	// but within MidYearWindow.
	MidYearPenalty float64
	MidYearWindow  int

	// DeviceOverlapPenalty applies once per rhetorical device the
	// candidate shares with a selected entry.
	DeviceOverlapPenalty float64

	// Floor is the minimum diversity score. The penalties compound, so
	// without a floor a pathological pool could zero out every candidate.
	Floor float64

	// SimilarityWeight and DiversityWeight blend the two scores into the
	// combined score used for greedy selection.
	SimilarityWeight float64
	DiversityWeight  float64
}

// DefaultParams returns the standard penalty weights.
func DefaultParams() Params {
	return Params{
		SameBrandPenalty:     0.7,
		NearYearPenalty:      0.8,
		NearYearWindow:       5,
		MidYearPenalty:       0.9,
		MidYearWindow:        10,
		DeviceOverlapPenalty: 0.9,
		Floor:                0.1,
		SimilarityWeight:     0.6,
		DiversityWeight:      0.4,
	}
}

// DiversityScore measures how different a candidate is from the entries
// already selected. Starts at 1.0, multiplies in a penalty for each
// selected entry the candidate resembles, and never drops below Floor.
func (p Params) DiversityScore(candidate *core.CorpusEntry, selected []*core.CorpusEntry) float64 {
	score := 1.0

	for _, prior := range selected {
		if candidate.Brand == prior.Brand {
			score *= p.SameBrandPenalty
		}

		yearGap := candidate.Year - prior.Year
		if yearGap < 0 {
			yearGap = -yearGap
		}
		if yearGap < p.NearYearWindow {
			score *= p.NearYearPenalty
		} else if yearGap < p.MidYearWindow {
			score *= p.MidYearPenalty
		}

		overlap := deviceOverlap(candidate.RhetoricalDevices, prior.RhetoricalDevices)
		if overlap > 0 {
			score *= math.Pow(p.DeviceOverlapPenalty, float64(overlap))
		}
	}

	if score < p.Floor {
		score = p.Floor
	}
	return score
}

// Combined blends raw similarity with the diversity score.
func (p Params) Combined(similarity float32, diversity float64) float64 {
	return p.SimilarityWeight*float64(similarity) + p.DiversityWeight*diversity
}

// SelectDiverse greedily picks up to n entries from the pool, at each
// step choosing the candidate with the highest combined score against
// the entries picked so far. Ties keep the earlier (higher-similarity)
// candidate. The pool is not modified.
func SelectDiverse(pool []core.ScoredEntry, n int, params Params) []core.ScoredEntry {
	if n <= 0 || len(pool) == 0 {
		return nil
	}
	if n > len(pool) {
		n = len(pool)
	}

	remaining := make([]core.ScoredEntry, len(pool))
	copy(remaining, pool)

	selected := make([]core.ScoredEntry, 0, n)
	selectedEntries := make([]*core.CorpusEntry, 0, n)

	for len(selected) < n && len(remaining) > 0 {
		bestIdx := 0
		bestScore := math.Inf(-1)
		for i, candidate := range remaining {
			combined := params.Combined(
				candidate.Score,
				params.DiversityScore(candidate.Entry, selectedEntries),
			)
			if combined > bestScore {
				bestScore = combined
				bestIdx = i
			}
		}

		selected = append(selected, remaining[bestIdx])
		selectedEntries = append(selectedEntries, remaining[bestIdx].Entry)
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return selected
}

func deviceOverlap(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, device := range a {
		set[device] = struct{}{}
	}
	count := 0
	for _, device := range b {
		if _, ok := set[device]; ok {
			count++
		}
	}
	return count
}
