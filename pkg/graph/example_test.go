package graph_test

import (
	"fmt"

	"github.com/matzehuels/starpath/pkg/graph"
)

func ExampleBuild() {
	g := graph.Build([]graph.Edge[string]{
		{Source: "earth", Target: "mars", Cost: 1.5},
		{Source: "mars", Target: "jupiter", Cost: 4},
	})

	fmt.Println(g["mars"]["earth"])
	fmt.Println(g.NodeCount(), g.EdgeCount())
	// Output:
	// 1.5
	// 3 2
}

func ExampleGraph_AddNode() {
	g := graph.Build([]graph.Edge[string]{{Source: "earth", Target: "mars", Cost: 1}})
	g.AddNode("pluto")

	fmt.Println(graph.SortedNodes(g))
	fmt.Println(len(g.Neighbors("pluto")))
	// Output:
	// [earth mars pluto]
	// 0
}
