package retrieval

import (
	"sync"
	"time"

	"github.com/conceptforge/exemplar/core"
	"github.com/conceptforge/exemplar/rank"
)

const (
	// defaultTTL is how long a session record survives without access.
	defaultTTL = 24 * time.Hour

	// defaultRotationServes is how many times a query rotates through
	// pool slices before switching to diversity selection for good.
	defaultRotationServes = 5

	// defaultRotationStride is how far the slice window advances per
	// serve. With the default pool of 10 and stride 2, five serves walk
	// disjoint pairs across the whole pool.
	defaultRotationStride = 2
)

// sessionRecord is the per-query state. The pool is write-once; only
// timesServed and lastAccess mutate after creation.
type sessionRecord struct {
	pool        []core.ScoredEntry
	timesServed int
	lastAccess  time.Time
}

// sessionCache maps query hashes to their candidate pools. Expired
// records are dropped on lookup, so an idle query starts over.
type sessionCache struct {
	mu      sync.Mutex
	records map[core.ID]*sessionRecord

	ttl            time.Duration
	rotationServes int
	rotationStride int
	params         rank.Params

	// now is replaceable in tests to exercise TTL eviction.
	now func() time.Time
}

func newSessionCache(ttl time.Duration, rotationServes, rotationStride int, params rank.Params) *sessionCache {
	return &sessionCache{
		records:        make(map[core.ID]*sessionRecord),
		ttl:            ttl,
		rotationServes: rotationServes,
		rotationStride: rotationStride,
		params:         params,
		now:            time.Now,
	}
}

// serve returns up to n results for a cached query, or ok=false when
// the query has no live record. Each serve advances the record's state:
// slice rotation for the first rotationServes calls, greedy diversity
// selection permanently after that.
func (s *sessionCache) serve(id core.ID, n int) (results []core.ScoredEntry, served int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.records[id]
	if !exists {
		return nil, 0, false
	}
	if s.now().Sub(record.lastAccess) > s.ttl {
		delete(s.records, id)
		return nil, 0, false
	}

	results = s.pick(record, n)
	record.timesServed++
	record.lastAccess = s.now()
	return results, record.timesServed, true
}

// store creates the record for a query and serves the first results
// from it in the same critical section, so a freshly computed pool is
// never observed half-built. Last write wins if two requests raced the
// computation.
func (s *sessionCache) store(id core.ID, pool []core.ScoredEntry, n int) []core.ScoredEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := &sessionRecord{
		pool:       pool,
		lastAccess: s.now(),
	}
	s.records[id] = record

	results := s.pick(record, n)
	record.timesServed++
	record.lastAccess = s.now()
	return results
}

// pick reads results from the pool without mutating the record.
func (s *sessionCache) pick(record *sessionRecord, n int) []core.ScoredEntry {
	if n <= 0 || len(record.pool) == 0 {
		return nil
	}

	if record.timesServed < s.rotationServes {
		start := record.timesServed * s.rotationStride
		if start >= len(record.pool) {
			start = 0
		}
		end := start + n
		if end > len(record.pool) {
			end = len(record.pool)
		}
		out := make([]core.ScoredEntry, end-start)
		copy(out, record.pool[start:end])
		return out
	}

	return rank.SelectDiverse(record.pool, n, s.params)
}

// len reports the number of live records, sweeping out expired ones.
func (s *sessionCache) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now()
	for id, record := range s.records {
		if cutoff.Sub(record.lastAccess) > s.ttl {
			delete(s.records, id)
		}
	}
	return len(s.records)
}
