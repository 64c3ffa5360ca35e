package search

import (
	"github.com/notelens/notelens/ai"
	"github.com/notelens/notelens/core"
)

// SearchMonitor provides hooks to observe the search pipeline.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterIntentParse(intent ai.QueryIntent)
	AfterTemporalResolve(rng ai.TemporalRange, err error)
	AfterSimilaritySearch(matches []*core.ScoredResult)
	Finish(results []*core.ScoredResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                 {}
func (n *noopMonitor) AfterIntentParse(_ ai.QueryIntent)              {}
func (n *noopMonitor) AfterTemporalResolve(_ ai.TemporalRange, _ error) {}
func (n *noopMonitor) AfterSimilaritySearch(_ []*core.ScoredResult)   {}
func (n *noopMonitor) Finish(_ []*core.ScoredResult)                  {}
