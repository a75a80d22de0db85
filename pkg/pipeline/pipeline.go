// Package pipeline answers navigation queries against a star map.
//
// This package implements the resolve → search → record flow shared by the
// CLI and the HTTP server, so both entry points cache, log, and store routes
// the same way.
//
// # Architecture
//
// A query runs in three stages:
//
//  1. Resolve: map the source and target labels to node ids
//  2. Search: find the cheapest route, consulting the route cache first
//  3. Record: append the answer to the route history
//
// A missing route is a normal outcome: [Result.Found] is false and no error
// is returned. Errors are reserved for unknown labels and for failures of
// the map source.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, store, logger)
//	defer runner.Close()
//
//	doc, err := io.ImportFile("solar.json")
//	if err != nil {
//	    return err
//	}
//	res, err := runner.Navigate(ctx, doc, pipeline.Options{Source: "Earth", Target: "Mars"})
//	if err != nil {
//	    return err
//	}
//	if res.Found {
//	    fmt.Println(strings.Join(res.Path, " -> "), res.Cost)
//	}
package pipeline

import (
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/starpath/pkg/cache"
	errs "github.com/matzehuels/starpath/pkg/errors"
	"github.com/matzehuels/starpath/pkg/io"
	"github.com/matzehuels/starpath/pkg/search"
)

// Options describes one navigation query.
type Options struct {
	Source string `json:"source"`
	Target string `json:"target"`

	// Refresh skips the cache lookup. The fresh result is still cached.
	Refresh bool `json:"refresh,omitempty"`

	// Logger overrides the runner's logger for this query.
	Logger *log.Logger `json:"-"`
}

// Validate checks both labels.
func (o Options) Validate() error {
	if err := errs.ValidateLabel(o.Source); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "source")
	}
	if err := errs.ValidateLabel(o.Target); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "target")
	}
	return nil
}

// Result is the answer to a navigation query.
type Result struct {
	ID       string        `json:"id"`
	MapHash  string        `json:"map_hash"`
	Source   string        `json:"source"`
	Target   string        `json:"target"`
	Found    bool          `json:"found"`
	Path     []string      `json:"path,omitempty"`
	NodeIDs  []int         `json:"node_ids,omitempty"`
	Cost     float64       `json:"cost"`
	Hops     int           `json:"hops"`
	Stats    search.Stats  `json:"stats"`
	Duration time.Duration `json:"duration_ns"`
	CacheHit bool          `json:"cache_hit"`
}

// HashDocument returns a content hash of d used to key cached routes.
func HashDocument(d io.Document) string {
	data, _ := json.Marshal(d)
	return cache.Hash(data)
}
