package graphdb

import (
	"context"
	"fmt"

	errs "github.com/matzehuels/starpath/pkg/errors"
	"github.com/matzehuels/starpath/pkg/graph"
	"github.com/matzehuels/starpath/pkg/io"
)

// Load reads every planet and route through q and returns a validated
// document. Planets are numbered in the order the nodes query returns them;
// planets that only appear in routes follow.
func Load(ctx context.Context, q Querier, opts Options) (io.Document, error) {
	nodeRows, err := q.ExecuteRead(ctx, opts.nodesQuery(), nil)
	if err != nil {
		return io.Document{}, errs.Wrap(errs.ErrCodeNetwork, err, "load planets")
	}
	edgeRows, err := q.ExecuteRead(ctx, opts.edgesQuery(), nil)
	if err != nil {
		return io.Document{}, errs.Wrap(errs.ErrCodeNetwork, err, "load routes")
	}

	labels := make([]string, 0, len(nodeRows))
	for i, row := range nodeRows {
		label, ok := row["label"].(string)
		if !ok {
			return io.Document{}, errs.New(errs.ErrCodeInvalidGraph, "planet row %d: label is %T, want string", i, row["label"])
		}
		labels = append(labels, label)
	}

	edges := make([]graph.Edge[string], 0, len(edgeRows))
	for i, row := range edgeRows {
		e, err := edgeFromRecord(row)
		if err != nil {
			return io.Document{}, errs.Wrap(errs.ErrCodeInvalidGraph, err, "route row %d", i)
		}
		edges = append(edges, e)
	}

	d := io.FromGraph(labels, edges)
	if err := d.Validate(); err != nil {
		return io.Document{}, err
	}
	return d, nil
}

func edgeFromRecord(row Record) (graph.Edge[string], error) {
	source, ok := row["source"].(string)
	if !ok {
		return graph.Edge[string]{}, fmt.Errorf("source is %T, want string", row["source"])
	}
	target, ok := row["target"].(string)
	if !ok {
		return graph.Edge[string]{}, fmt.Errorf("target is %T, want string", row["target"])
	}

	var cost float64
	switch v := row["cost"].(type) {
	case float64:
		cost = v
	case int64:
		cost = float64(v)
	default:
		return graph.Edge[string]{}, fmt.Errorf("cost is %T, want number", row["cost"])
	}
	return graph.Edge[string]{Source: source, Target: target, Cost: cost}, nil
}
