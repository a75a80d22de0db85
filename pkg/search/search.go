package search

import (
	"cmp"
	"maps"
	"slices"

	"github.com/matzehuels/starpath/pkg/graph"
)

// Path is a route from a source to a target, both inclusive.
type Path[N any] struct {
	Nodes []N     // visited nodes in order; never empty for a found path
	Cost  float64 // sum of edge costs along Nodes
}

// Hops returns the number of edges traversed.
func (p Path[N]) Hops() int {
	if len(p.Nodes) == 0 {
		return 0
	}
	return len(p.Nodes) - 1
}

// Search returns the cheapest path from source to target using uniform-cost
// search (A* with a zero heuristic). It returns false if target is unreachable
// or if either node is missing from g.
//
// Edge costs must be non-negative; otherwise the result is unspecified.
// Search(g, x, x) returns the single-node path [x] with cost 0.
func Search[N cmp.Ordered](g graph.Graph[N], source, target N) (Path[N], bool) {
	return SearchWithOptions(g, source, target, Options[N]{})
}

// SearchWithOptions is [Search] with a custom heuristic and optional stats.
func SearchWithOptions[N cmp.Ordered](g graph.Graph[N], source, target N, opts Options[N]) (Path[N], bool) {
	h := opts.Heuristic
	if h == nil {
		h = Zero[N]
	}

	r := &runner[N]{
		g:      g,
		target: target,
		h:      h,
		closed: make(map[N]float64),
	}
	r.frontier = newFrontier[N](&r.stats)

	p, ok := r.run(source)
	if opts.Stats != nil {
		*opts.Stats = r.stats
	}
	return p, ok
}

// runner holds the mutable state of one search. It is never shared.
type runner[N cmp.Ordered] struct {
	g        graph.Graph[N]
	target   N
	h        Heuristic[N]
	frontier *frontier[N]
	closed   map[N]float64 // expanded nodes and the cheapest cost they were expanded at
	stats    Stats
}

func (r *runner[N]) run(source N) (Path[N], bool) {
	r.frontier.push(source, 0, r.h(source, r.target), []N{source})

	for r.frontier.len() > 0 {
		e, ok := r.frontier.pop()
		if !ok {
			break
		}
		if e.node == r.target {
			return Path[N]{Nodes: e.path, Cost: e.cost}, true
		}
		// A live entry for a closed node is always cheaper than its last expansion.
		r.closed[e.node] = e.cost
		r.stats.Expanded++
		r.expand(e)
	}
	return Path[N]{}, false
}

// expand relaxes every neighbor of e. Neighbors are visited in ascending order
// so that counters and pushes are reproducible across runs.
func (r *runner[N]) expand(e *entry[N]) {
	nbrs := r.g.Neighbors(e.node)
	for _, m := range slices.Sorted(maps.Keys(nbrs)) {
		tentative := e.cost + nbrs[m]

		if cur, open := r.frontier.lookup(m); open && tentative >= cur.cost {
			continue
		}
		// A closed node is reopened only by a strictly cheaper route.
		if c, closed := r.closed[m]; closed {
			if tentative >= c {
				continue
			}
			if _, open := r.frontier.lookup(m); !open {
				r.stats.Reopened++
			}
		}

		path := make([]N, len(e.path)+1)
		copy(path, e.path)
		path[len(e.path)] = m
		r.frontier.relax(m, tentative, tentative+r.h(m, r.target), path)
	}
}
