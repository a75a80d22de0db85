package graph

import (
	"cmp"
	"maps"
	"slices"
)

// Edge is an undirected, weighted connection between two nodes.
// Cost must be non-negative.
type Edge[N comparable] struct {
	Source N
	Target N
	Cost   float64
}

// Graph maps each node to its neighbors and the cost of reaching them.
// For every edge (a, b, cost) both g[a][b] and g[b][a] equal cost.
//
// The zero value is a nil map; use [Build] or [New] before adding nodes.
type Graph[N comparable] map[N]map[N]float64

// New returns an empty graph.
func New[N comparable]() Graph[N] {
	return make(Graph[N])
}

// Build converts an edge list into an adjacency graph.
// Later records overwrite earlier ones for the same pair, in either direction.
// Costs are stored as given; negative costs are a caller error.
func Build[N comparable](edges []Edge[N]) Graph[N] {
	g := make(Graph[N])
	for _, e := range edges {
		g.AddEdge(e)
	}
	return g
}

// AddNode registers n with no neighbors. It is a no-op if n already exists.
func (g Graph[N]) AddNode(n N) {
	if _, ok := g[n]; !ok {
		g[n] = make(map[N]float64)
	}
}

// AddEdge stores e in both directions, overwriting any previous cost for the pair.
func (g Graph[N]) AddEdge(e Edge[N]) {
	g.AddNode(e.Source)
	g.AddNode(e.Target)
	g[e.Source][e.Target] = e.Cost
	g[e.Target][e.Source] = e.Cost
}

// Has reports whether n is a node of the graph.
func (g Graph[N]) Has(n N) bool {
	_, ok := g[n]
	return ok
}

// Neighbors returns the neighbor map of n, or nil if n is unknown.
// The returned map is shared with the graph and must not be modified.
func (g Graph[N]) Neighbors(n N) map[N]float64 {
	return g[n]
}

// Cost returns the cost of the edge between a and b.
func (g Graph[N]) Cost(a, b N) (float64, bool) {
	c, ok := g[a][b]
	return c, ok
}

// NodeCount returns the number of nodes, including isolated ones.
func (g Graph[N]) NodeCount() int { return len(g) }

// EdgeCount returns the number of undirected edges. A self-loop counts once.
func (g Graph[N]) EdgeCount() int {
	entries, loops := 0, 0
	for n, nbrs := range g {
		entries += len(nbrs)
		if _, ok := nbrs[n]; ok {
			loops++
		}
	}
	return (entries-loops)/2 + loops
}

// Edges returns every undirected edge once, with Source <= Target, sorted by
// (Source, Target).
func Edges[N cmp.Ordered](g Graph[N]) []Edge[N] {
	var out []Edge[N]
	for a, nbrs := range g {
		for b, c := range nbrs {
			if a <= b {
				out = append(out, Edge[N]{Source: a, Target: b, Cost: c})
			}
		}
	}
	slices.SortFunc(out, func(x, y Edge[N]) int {
		if c := cmp.Compare(x.Source, y.Source); c != 0 {
			return c
		}
		return cmp.Compare(x.Target, y.Target)
	})
	return out
}

// SortedNodes returns the nodes of g in ascending order.
func SortedNodes[N cmp.Ordered](g Graph[N]) []N {
	return slices.Sorted(maps.Keys(g))
}
