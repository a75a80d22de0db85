package search

// Heuristic estimates the remaining cost from node to target.
// It must never overestimate for results to stay optimal.
type Heuristic[N any] func(node, target N) float64

// Zero is the heuristic used by default. It turns A* into uniform-cost search.
func Zero[N any](N, N) float64 { return 0 }

// Options configures [SearchWithOptions].
type Options[N any] struct {
	// Heuristic estimates the remaining cost; nil means [Zero].
	Heuristic Heuristic[N]

	// Stats, when non-nil, is overwritten with counters from the run.
	Stats *Stats
}

// Stats records what a single search did. It is useful for logging and tests;
// it has no effect on the result.
type Stats struct {
	Pushed   int `json:"pushed"`   // entries added to the frontier, including improvements
	Relaxed  int `json:"relaxed"`  // improvements to a node already on the frontier
	Reopened int `json:"reopened"` // closed nodes pushed again after a cheaper route was found
	Expanded int `json:"expanded"` // entries popped and expanded
	Stale    int `json:"stale"`    // superseded heap entries discarded at pop time
}
