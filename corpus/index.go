package corpus

import (
	"slices"

	"github.com/conceptforge/exemplar/core"
)

// idSet is a set of entry ids.
type idSet map[core.ID]struct{}

func (s idSet) add(id core.ID) {
	s[id] = struct{}{}
}

// intersect keeps only the ids also present in other.
func (s idSet) intersect(other idSet) idSet {
	result := make(idSet)
	for id := range s {
		if _, ok := other[id]; ok {
			result.add(id)
		}
	}
	return result
}

// invertedIndex maps discrete attribute values to the set of entry ids
// having that value. Derived data: rebuildable deterministically from
// the corpus, never mutated after build.
type invertedIndex struct {
	category map[string]idSet
	device   map[string]idSet
	tag      map[string]idSet
	word     map[string]idSet
}

// buildIndex builds all four indices in one pass over the corpus.
func buildIndex(entries []*core.CorpusEntry) *invertedIndex {
	idx := &invertedIndex{
		category: make(map[string]idSet),
		device:   make(map[string]idSet),
		tag:      make(map[string]idSet),
		word:     make(map[string]idSet),
	}

	for _, entry := range entries {
		addToIndex(idx.category, normalizeKey(entry.Category), entry.Id)
		for _, device := range entry.RhetoricalDevices {
			addToIndex(idx.device, normalizeKey(device), entry.Id)
		}
		for _, tag := range entry.Tags {
			addToIndex(idx.tag, normalizeKey(tag), entry.Id)
		}
		for _, word := range extractWords(entry.EmbeddingText()) {
			addToIndex(idx.word, word, entry.Id)
		}
	}

	return idx
}

func addToIndex(index map[string]idSet, key string, id core.ID) {
	if key == "" {
		return
	}
	set, ok := index[key]
	if !ok {
		set = make(idSet)
		index[key] = set
	}
	set.add(id)
}

// ByCategory returns the ids of entries with the given category,
// in corpus insertion order.
func (s *Store) ByCategory(category string) []core.ID {
	return s.ordered(s.index.category[normalizeKey(category)])
}

// ByDevice returns the ids of entries using the given rhetorical device,
// in corpus insertion order.
func (s *Store) ByDevice(device string) []core.ID {
	return s.ordered(s.index.device[normalizeKey(device)])
}

// ByTag returns the ids of entries carrying the given tag,
// in corpus insertion order.
func (s *Store) ByTag(tag string) []core.ID {
	return s.ordered(s.index.tag[normalizeKey(tag)])
}

// ByWord returns the ids of entries whose text contains the given
// normalized word, in corpus insertion order.
func (s *Store) ByWord(word string) []core.ID {
	return s.ordered(s.index.word[normalizeKey(word)])
}

// ordered converts a set to a slice sorted by insertion order.
func (s *Store) ordered(set idSet) []core.ID {
	ids := make([]core.ID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b core.ID) int {
		return s.position(a) - s.position(b)
	})
	return ids
}

// IndexStats reports index cardinalities.
type IndexStats struct {
	Entries    int
	Categories int
	Devices    int
	Tags       int
	Words      int
}

// Stats returns the sizes of the corpus and its indices.
func (s *Store) Stats() IndexStats {
	return IndexStats{
		Entries:    len(s.entries),
		Categories: len(s.index.category),
		Devices:    len(s.index.device),
		Tags:       len(s.index.tag),
		Words:      len(s.index.word),
	}
}
