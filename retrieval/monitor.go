package retrieval

import "github.com/poiesic/counselit/core"

// RetrievalMonitor provides hooks to observe the retrieval process.
// Implement this interface to track intermediate steps and results.
type RetrievalMonitor interface {
	Start(query string)
	AfterSimilaritySearch(results []*core.SearchResult)
	AfterBudgetFilter(kept []*core.SearchResult, dropped int)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of RetrievalMonitor
type noopMonitor struct{}

var _ RetrievalMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                  {}
func (n *noopMonitor) AfterSimilaritySearch(_ []*core.SearchResult)    {}
func (n *noopMonitor) AfterBudgetFilter(_ []*core.SearchResult, _ int) {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)                   {}
