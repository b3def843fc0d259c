package rank

import (
	"sort"

	"github.com/conceptforge/exemplar/core"
)

// DefaultPoolSize is how many candidates ranking keeps for selection.
const DefaultPoolSize = 10

// VectorSource resolves an entry ID to its embedding vector.
// The embedding cache implements this.
type VectorSource interface {
	Vector(id core.ID) ([]float32, bool)
}

// TopK scores every embedded entry against the query vector and returns
// the k highest-scoring ones in descending score order. Entries with no
// cached vector are skipped, not treated as errors. Ties keep the order
// entries appear in the input slice.
func TopK(query []float32, entries []*core.CorpusEntry, vectors VectorSource, k int) []core.ScoredEntry {
	if k <= 0 || len(query) == 0 {
		return nil
	}

	scored := make([]core.ScoredEntry, 0, len(entries))
	for _, entry := range entries {
		vector, ok := vectors.Vector(entry.Id)
		if !ok {
			continue
		}
		scored = append(scored, core.ScoredEntry{
			Entry: entry,
			Score: CosineSimilarity(query, vector),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored
}
