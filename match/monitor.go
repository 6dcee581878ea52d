package match

import "github.com/poiesic/matchwell/core"

// Monitor provides hooks to observe the matching pipeline.
// Implementations are called from the request goroutine and must not modify
// the values they receive.
type Monitor interface {
	Start(seekerID core.ID, query string)
	AfterInterpretation(filters *core.SearchFilters, usedFallback bool)
	AfterRetrieval(strict, relaxed int)
	AfterScoring(candidates []*core.ScoredCandidate)
	AfterRerank(adjusted int)
	Finish(results []*core.ScoredCandidate)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = noopMonitor{}

func (noopMonitor) Start(_ core.ID, _ string)                         {}
func (noopMonitor) AfterInterpretation(_ *core.SearchFilters, _ bool) {}
func (noopMonitor) AfterRetrieval(_, _ int)                           {}
func (noopMonitor) AfterScoring(_ []*core.ScoredCandidate)            {}
func (noopMonitor) AfterRerank(_ int)                                 {}
func (noopMonitor) Finish(_ []*core.ScoredCandidate)                  {}
