package search

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/starpath/pkg/graph"
)

// diamond is the A-B-D / A-C-D map: the cheap route goes through B.
func diamond() graph.Graph[string] {
	return graph.Build([]graph.Edge[string]{
		{Source: "A", Target: "B", Cost: 1},
		{Source: "B", Target: "D", Cost: 1},
		{Source: "A", Target: "C", Cost: 1},
		{Source: "C", Target: "D", Cost: 5},
	})
}

func TestSearchDiamond(t *testing.T) {
	p, ok := Search(diamond(), "A", "D")
	require.True(t, ok)
	require.Equal(t, []string{"A", "B", "D"}, p.Nodes)
	require.Equal(t, 2.0, p.Cost)
	require.Equal(t, 2, p.Hops())
}

func TestSearchSameNode(t *testing.T) {
	p, ok := Search(diamond(), "C", "C")
	require.True(t, ok)
	require.Equal(t, []string{"C"}, p.Nodes)
	require.Zero(t, p.Cost)
	require.Zero(t, p.Hops())
}

func TestSearchSameNodeAbsent(t *testing.T) {
	// The source is seeded even if the graph does not know it.
	p, ok := Search(graph.New[string](), "X", "X")
	require.True(t, ok)
	require.Equal(t, []string{"X"}, p.Nodes)
}

func TestSearchIsolated(t *testing.T) {
	g := graph.New[string]()
	g.AddNode("A")
	g.AddNode("B")

	_, ok := Search(g, "A", "B")
	require.False(t, ok)
}

func TestSearchDisconnectedComponents(t *testing.T) {
	g := graph.Build([]graph.Edge[int]{
		{Source: 0, Target: 1, Cost: 1},
		{Source: 1, Target: 2, Cost: 1},
		{Source: 2, Target: 0, Cost: 1},
		{Source: 5, Target: 6, Cost: 1},
	})

	var st Stats
	_, ok := SearchWithOptions(g, 0, 6, Options[int]{Stats: &st})
	require.False(t, ok)
	require.Equal(t, 3, st.Expanded, "every node of the source component is expanded once")
	require.Zero(t, st.Reopened)
}

func TestSearchMissingEndpoints(t *testing.T) {
	g := diamond()

	_, ok := Search(g, "Z", "D")
	require.False(t, ok, "unknown source")

	_, ok = Search(g, "A", "Z")
	require.False(t, ok, "unknown target")
}

func TestSearchZeroCostEdges(t *testing.T) {
	g := graph.Build([]graph.Edge[string]{
		{Source: "A", Target: "B", Cost: 0},
		{Source: "B", Target: "C", Cost: 0},
		{Source: "C", Target: "A", Cost: 0},
		{Source: "X", Target: "Y", Cost: 0},
	})

	p, ok := Search(g, "A", "C")
	require.True(t, ok)
	require.Equal(t, []string{"A", "C"}, p.Nodes)
	require.Zero(t, p.Cost)

	_, ok = Search(g, "A", "X")
	require.False(t, ok, "zero-cost cycles must not keep the search alive")
}

func TestSearchSelfLoop(t *testing.T) {
	g := graph.Build([]graph.Edge[string]{
		{Source: "A", Target: "A", Cost: 1},
		{Source: "A", Target: "B", Cost: 2},
	})

	p, ok := Search(g, "A", "B")
	require.True(t, ok)
	require.Equal(t, []string{"A", "B"}, p.Nodes)
	require.Equal(t, 2.0, p.Cost)
}

func TestSearchRelaxation(t *testing.T) {
	// X is discovered first at cost 10 and improved to 2 through Y.
	g := graph.Build([]graph.Edge[string]{
		{Source: "S", Target: "X", Cost: 10},
		{Source: "S", Target: "Y", Cost: 1},
		{Source: "Y", Target: "X", Cost: 1},
		{Source: "X", Target: "T", Cost: 20},
	})

	var st Stats
	p, ok := SearchWithOptions(g, "S", "T", Options[string]{Stats: &st})
	require.True(t, ok)
	require.Equal(t, []string{"S", "Y", "X", "T"}, p.Nodes)
	require.Equal(t, 22.0, p.Cost)
	require.Equal(t, 1, st.Relaxed)
	require.Equal(t, 1, st.Stale, "the superseded X entry surfaces before T")
	require.Zero(t, st.Reopened)
}

func TestSearchTieBreak(t *testing.T) {
	square := []graph.Edge[string]{
		{Source: "A", Target: "B", Cost: 1},
		{Source: "B", Target: "D", Cost: 1},
		{Source: "A", Target: "C", Cost: 1},
		{Source: "C", Target: "D", Cost: 1},
	}

	p, ok := Search(graph.Build(square), "A", "D")
	require.True(t, ok)
	require.Equal(t, []string{"A", "B", "D"}, p.Nodes, "lower node wins a cost tie")

	// Reversing the input order must not change the answer.
	reversed := make([]graph.Edge[string], len(square))
	for i, e := range square {
		reversed[len(square)-1-i] = graph.Edge[string]{Source: e.Target, Target: e.Source, Cost: e.Cost}
	}
	q, ok := Search(graph.Build(reversed), "A", "D")
	require.True(t, ok)
	require.Equal(t, p, q)
}

func TestSearchDeterministic(t *testing.T) {
	g := randomGraph(rand.New(rand.NewPCG(7, 11)), 40, 120, 3)
	for i := range 39 {
		g.AddEdge(graph.Edge[int]{Source: i, Target: i + 1, Cost: 100})
	}

	first, ok := Search(g, 0, 39)
	require.True(t, ok)
	for range 20 {
		again, ok := Search(g, 0, 39)
		require.True(t, ok)
		require.Equal(t, first, again)
	}
}

func TestSearchInconsistentHeuristicReopens(t *testing.T) {
	// h(A) = 5 is admissible (true distance is 11) but not consistent, so C is
	// first expanded through B and must be reopened once A is expanded.
	g := graph.Build([]graph.Edge[string]{
		{Source: "S", Target: "A", Cost: 1},
		{Source: "S", Target: "B", Cost: 1},
		{Source: "A", Target: "C", Cost: 1},
		{Source: "B", Target: "C", Cost: 2},
		{Source: "C", Target: "G", Cost: 10},
	})
	var h Heuristic[string] = func(node, _ string) float64 {
		if node == "A" {
			return 5
		}
		return 0
	}

	var st Stats
	p, ok := SearchWithOptions(g, "S", "G", Options[string]{Heuristic: h, Stats: &st})
	require.True(t, ok)
	require.Equal(t, []string{"S", "A", "C", "G"}, p.Nodes)
	require.Equal(t, 12.0, p.Cost)
	require.Equal(t, 1, st.Reopened)
	require.Equal(t, 1, st.Relaxed)
	require.Equal(t, 5, st.Expanded)
	require.Equal(t, 7, st.Pushed)
}

func TestSearchStatsNil(t *testing.T) {
	// Options without Stats must not panic.
	_, ok := SearchWithOptions(diamond(), "A", "D", Options[string]{})
	require.True(t, ok)
}

func TestSearchOptimalBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 1))
	for trial := range 200 {
		n := 2 + rng.IntN(6)
		g := randomGraph(rng, n, rng.IntN(n*2+1), 9)
		src, dst := rng.IntN(n), rng.IntN(n)

		want, reachable := bruteForce(g, src, dst)
		p, ok := Search(g, src, dst)

		require.Equal(t, reachable, ok, "trial %d: reachability %d->%d", trial, src, dst)
		if !ok {
			continue
		}
		require.InDelta(t, want, p.Cost, 1e-9, "trial %d: cost %d->%d", trial, src, dst)
		require.Equal(t, src, p.Nodes[0])
		require.Equal(t, dst, p.Nodes[len(p.Nodes)-1])
		require.InDelta(t, p.Cost, walkCost(t, g, p.Nodes), 1e-9, "trial %d: path cost mismatch", trial)
	}
}

// randomGraph builds a graph over nodes 0..n-1 with up to m random edges.
// Every node is registered, so some may be isolated.
func randomGraph(rng *rand.Rand, n, m, maxCost int) graph.Graph[int] {
	g := graph.New[int]()
	for i := range n {
		g.AddNode(i)
	}
	for range m {
		a, b := rng.IntN(n), rng.IntN(n)
		g.AddEdge(graph.Edge[int]{Source: a, Target: b, Cost: float64(rng.IntN(maxCost + 1))})
	}
	return g
}

// bruteForce enumerates every simple path from src to dst. With non-negative
// costs the cheapest walk is always a simple path.
func bruteForce(g graph.Graph[int], src, dst int) (float64, bool) {
	best := math.Inf(1)
	visited := map[int]bool{src: true}

	var walk func(n int, cost float64)
	walk = func(n int, cost float64) {
		if n == dst {
			best = math.Min(best, cost)
			return
		}
		for m, w := range g[n] {
			if visited[m] {
				continue
			}
			visited[m] = true
			walk(m, cost+w)
			visited[m] = false
		}
	}
	walk(src, 0)
	return best, !math.IsInf(best, 1)
}

func walkCost(t *testing.T, g graph.Graph[int], nodes []int) float64 {
	t.Helper()
	var total float64
	for i := 1; i < len(nodes); i++ {
		w, ok := g.Cost(nodes[i-1], nodes[i])
		require.True(t, ok, "no edge %d-%d", nodes[i-1], nodes[i])
		total += w
	}
	return total
}
