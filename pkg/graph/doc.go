// Package graph provides the weighted, undirected adjacency structure that the
// route search runs on.
//
// # Overview
//
// A [Graph] maps every node identifier to the costs of its neighbors. Edges are
// symmetric: building from an edge (a, b, cost) stores the cost under both
// g[a][b] and g[b][a], so a traversal in either direction costs the same.
//
// # Building
//
// Use [Build] to convert a flat edge list into a graph:
//
//	g := graph.Build([]graph.Edge[string]{
//	    {Source: "earth", Target: "mars", Cost: 1.5},
//	    {Source: "mars", Target: "jupiter", Cost: 4},
//	})
//
// When the same pair appears more than once, the last record wins. Nodes with
// no edges can be registered with [Graph.AddNode]; they get an empty neighbor
// map and are simply unreachable.
//
// # Preconditions
//
// Costs must be non-negative. The builder does not check this; negative costs
// invalidate the optimality of the search in package search. Input validation
// is the job of the document layer (see package io).
//
// # Concurrency
//
// A Graph is a plain map and is not safe for concurrent mutation. Once built it
// is read-only for the search, and any number of searches may read it at once.
package graph
