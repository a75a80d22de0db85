package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name      string
		edges     []Edge[int]
		wantNodes int
		wantEdges int
	}{
		{name: "Empty", edges: nil, wantNodes: 0, wantEdges: 0},
		{
			name:      "Single",
			edges:     []Edge[int]{{Source: 0, Target: 1, Cost: 2}},
			wantNodes: 2,
			wantEdges: 1,
		},
		{
			name: "Triangle",
			edges: []Edge[int]{
				{Source: 0, Target: 1, Cost: 1},
				{Source: 1, Target: 2, Cost: 2},
				{Source: 2, Target: 0, Cost: 3},
			},
			wantNodes: 3,
			wantEdges: 3,
		},
		{
			name: "DuplicatePair",
			edges: []Edge[int]{
				{Source: 0, Target: 1, Cost: 1},
				{Source: 1, Target: 0, Cost: 7},
			},
			wantNodes: 2,
			wantEdges: 1,
		},
		{
			name:      "SelfLoop",
			edges:     []Edge[int]{{Source: 3, Target: 3, Cost: 1}},
			wantNodes: 1,
			wantEdges: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Build(tt.edges)
			require.Equal(t, tt.wantNodes, g.NodeCount())
			require.Equal(t, tt.wantEdges, g.EdgeCount())
		})
	}
}

func TestBuildSymmetric(t *testing.T) {
	edges := []Edge[string]{
		{Source: "a", Target: "b", Cost: 1},
		{Source: "b", Target: "d", Cost: 1},
		{Source: "a", Target: "c", Cost: 1},
		{Source: "c", Target: "d", Cost: 5},
		{Source: "d", Target: "e", Cost: 0},
	}
	g := Build(edges)

	for _, e := range edges {
		ab, ok := g.Cost(e.Source, e.Target)
		require.True(t, ok, "%s-%s missing", e.Source, e.Target)
		ba, ok := g.Cost(e.Target, e.Source)
		require.True(t, ok, "%s-%s missing", e.Target, e.Source)
		require.Equal(t, e.Cost, ab)
		require.Equal(t, e.Cost, ba)
	}
}

func TestBuildLastWriteWins(t *testing.T) {
	g := Build([]Edge[string]{
		{Source: "a", Target: "b", Cost: 4},
		{Source: "b", Target: "a", Cost: 2},
		{Source: "a", Target: "b", Cost: 9},
	})

	require.Equal(t, 9.0, g["a"]["b"])
	require.Equal(t, 9.0, g["b"]["a"])
}

func TestAddNodeIsolated(t *testing.T) {
	g := Build([]Edge[string]{{Source: "a", Target: "b", Cost: 1}})
	g.AddNode("z")
	g.AddNode("a")

	require.True(t, g.Has("z"))
	require.Empty(t, g.Neighbors("z"))
	require.Len(t, g.Neighbors("a"), 1, "AddNode must not reset existing neighbors")
	require.Equal(t, 3, g.NodeCount())
}

func TestNeighborsUnknown(t *testing.T) {
	g := New[int]()
	require.False(t, g.Has(1))
	require.Nil(t, g.Neighbors(1))
	_, ok := g.Cost(1, 2)
	require.False(t, ok)
}

func TestEdgesSorted(t *testing.T) {
	g := Build([]Edge[int]{
		{Source: 2, Target: 1, Cost: 3},
		{Source: 0, Target: 2, Cost: 1},
		{Source: 1, Target: 0, Cost: 2},
	})

	require.Equal(t, []Edge[int]{
		{Source: 0, Target: 1, Cost: 2},
		{Source: 0, Target: 2, Cost: 1},
		{Source: 1, Target: 2, Cost: 3},
	}, Edges(g))
	require.Equal(t, []int{0, 1, 2}, SortedNodes(g))
}
