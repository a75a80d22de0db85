package io

import (
	"math"
	"slices"

	errs "github.com/matzehuels/starpath/pkg/errors"
	"github.com/matzehuels/starpath/pkg/graph"
)

// Document is a star map: labelled planets and the routes between them.
type Document struct {
	Nodes []Node `json:"nodes" toml:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" toml:"edges" bson:"edges"`
}

// Node is a planet. Its identifier is its index in [Document.Nodes].
type Node struct {
	Label string `json:"label" toml:"label" bson:"label"`
}

// Edge is an undirected route between two node indices.
type Edge struct {
	Source int     `json:"source" toml:"source" bson:"source"`
	Target int     `json:"target" toml:"target" bson:"target"`
	Cost   float64 `json:"cost" toml:"cost" bson:"cost"`
}

// Validate checks that every label is usable and unique and that every edge
// references existing nodes with a finite, non-negative cost.
func (d Document) Validate() error {
	seen := make(map[string]int, len(d.Nodes))
	for i, n := range d.Nodes {
		if err := errs.ValidateLabel(n.Label); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidGraph, err, "node %d", i)
		}
		if j, dup := seen[n.Label]; dup {
			return errs.New(errs.ErrCodeInvalidGraph, "nodes %d and %d share label %q", j, i, n.Label)
		}
		seen[n.Label] = i
	}

	for i, e := range d.Edges {
		if err := d.validateEdge(i, e); err != nil {
			return err
		}
	}
	return nil
}

func (d Document) validateEdge(i int, e Edge) error {
	fail := func(reason string) error {
		return &errs.EdgeError{Index: i, Source: e.Source, Target: e.Target, Cost: e.Cost, Reason: reason}
	}
	switch {
	case e.Source < 0 || e.Source >= len(d.Nodes):
		return fail("source out of range")
	case e.Target < 0 || e.Target >= len(d.Nodes):
		return fail("target out of range")
	case math.IsNaN(e.Cost) || math.IsInf(e.Cost, 0):
		return fail("cost is not finite")
	case e.Cost < 0:
		return fail("negative cost")
	}
	return nil
}

// Graph builds the adjacency graph keyed by node index. Every node is
// registered, including those without routes.
func (d Document) Graph() graph.Graph[int] {
	g := graph.New[int]()
	for i := range d.Nodes {
		g.AddNode(i)
	}
	for _, e := range d.Edges {
		g.AddEdge(graph.Edge[int]{Source: e.Source, Target: e.Target, Cost: e.Cost})
	}
	return g
}

// ID returns the index of the node labelled label.
func (d Document) ID(label string) (int, error) {
	i := slices.IndexFunc(d.Nodes, func(n Node) bool { return n.Label == label })
	if i < 0 {
		return 0, errs.New(errs.ErrCodeUnknownNode, "unknown planet %q", label)
	}
	return i, nil
}

// Label returns the label of node id, or "" if id is out of range.
func (d Document) Label(id int) string {
	if id < 0 || id >= len(d.Nodes) {
		return ""
	}
	return d.Nodes[id].Label
}

// Labels maps a sequence of node indices to their labels.
func (d Document) Labels(ids []int) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = d.Label(id)
	}
	return out
}

// FromGraph builds a document from labels and labelled edges. Nodes are
// numbered in order of first appearance, labels before edge endpoints, so
// labels may list planets that have no routes.
func FromGraph(labels []string, edges []graph.Edge[string]) Document {
	var d Document
	index := make(map[string]int)
	id := func(label string) int {
		if i, ok := index[label]; ok {
			return i
		}
		index[label] = len(d.Nodes)
		d.Nodes = append(d.Nodes, Node{Label: label})
		return index[label]
	}

	for _, label := range labels {
		id(label)
	}
	for _, e := range edges {
		d.Edges = append(d.Edges, Edge{Source: id(e.Source), Target: id(e.Target), Cost: e.Cost})
	}
	return d
}
