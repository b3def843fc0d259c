package retrieval

import "github.com/conceptforge/exemplar/core"

// RetrievalMonitor provides hooks to observe the retrieval process.
// Implement this interface to track intermediate steps during a retrieval.
type RetrievalMonitor interface {
	Start(query string)
	SessionHit(queryHash core.ID, timesServed int)
	SessionMiss(queryHash core.ID)
	AfterEmbedding(dimensions int)
	EmbedderFailed(err error)
	AfterRanking(pool []core.ScoredEntry)
	LexicalFallback(pool []core.ScoredEntry)
	Finish(results []core.ScoredEntry)
}

// noopMonitor is a no-op implementation of RetrievalMonitor
type noopMonitor struct{}

var _ RetrievalMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                       {}
func (n *noopMonitor) SessionHit(_ core.ID, _ int)          {}
func (n *noopMonitor) SessionMiss(_ core.ID)                {}
func (n *noopMonitor) AfterEmbedding(_ int)                 {}
func (n *noopMonitor) EmbedderFailed(_ error)               {}
func (n *noopMonitor) AfterRanking(_ []core.ScoredEntry)    {}
func (n *noopMonitor) LexicalFallback(_ []core.ScoredEntry) {}
func (n *noopMonitor) Finish(_ []core.ScoredEntry)          {}
