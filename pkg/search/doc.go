// Package search finds minimum-cost routes through a [graph.Graph].
//
// # Algorithm
//
// [Search] is a best-first search in the A* family. By default the heuristic is
// zero, which makes it a uniform-cost (Dijkstra) search: the frontier is always
// expanded in order of accumulated path cost, and the first time the target is
// popped its path is optimal.
//
// The frontier is a binary heap with a side index from node to its current
// entry. When a cheaper route to a node already on the frontier is found, the
// improved entry is pushed and the index is repointed. The superseded entry
// stays in the heap and is discarded when it surfaces ("lazy decrease-key").
//
// # Ordering
//
// Entries are ordered by priority (cost plus heuristic), then by node, then
// lexicographically by path. Equal-cost routes therefore resolve the same way
// on every run, which makes results deterministic for a given graph.
//
// # Closed nodes
//
// Expanded nodes are recorded in a closed set, but they are not excluded from
// further relaxation: if a strictly cheaper route to a closed node turns up, the
// node is reopened with a fresh frontier entry. With the zero heuristic and
// non-negative costs this never happens. It matters for heuristics that are
// admissible but not consistent.
//
// # Failure
//
// If no route exists, including when the source or target is not in the graph,
// Search returns false. "No path" is an ordinary outcome, not an error.
//
// # Concurrency
//
// All search state lives in a value owned by one call. Independent searches on
// the same graph may run concurrently as long as nobody mutates the graph.
//
// # Complexity
//
//   - Time:  O((V + E) log E) with the zero heuristic
//   - Space: O(E) heap entries in the worst case, each holding its path
package search
