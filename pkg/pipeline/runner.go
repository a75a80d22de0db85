package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/starpath/pkg/cache"
	"github.com/matzehuels/starpath/pkg/io"
	"github.com/matzehuels/starpath/pkg/observability"
	"github.com/matzehuels/starpath/pkg/search"
	"github.com/matzehuels/starpath/pkg/store"
)

// Runner answers navigation queries with caching and history.
// Both CLI and API use it so they share the same caching logic.
//
// The Runner holds no per-query state. Multiple goroutines can safely use
// the same Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Store  store.Store
	Logger *log.Logger
}

// NewRunner creates a runner.
// A nil cache disables caching, a nil keyer means the default keyer,
// a nil store disables history, and a nil logger means log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, st store.Store, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if st == nil {
		st = store.NewNullStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Store:  st,
		Logger: logger,
	}
}

// Navigate finds the cheapest route between two labelled planets of doc.
// doc must already be validated. An unknown label yields an UNKNOWN_NODE
// error; an unreachable target yields a Result with Found false.
func (r *Runner) Navigate(ctx context.Context, doc io.Document, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)

	source, err := doc.ID(opts.Source)
	if err != nil {
		return nil, err
	}
	target, err := doc.ID(opts.Target)
	if err != nil {
		return nil, err
	}

	mapHash := HashDocument(doc)
	key := r.Keyer.RouteKey(mapHash, cache.RouteKeyOpts{Source: opts.Source, Target: opts.Target})
	observability.Search().OnSearchStart(ctx, opts.Source, opts.Target, len(doc.Nodes))

	res, hit := r.cachedRoute(ctx, key, opts)
	if !hit {
		res = r.search(doc, source, target)
		res.MapHash = mapHash
		res.Source, res.Target = opts.Source, opts.Target
		r.cacheRoute(ctx, key, res, logger)
	}
	res.ID = uuid.New().String()

	observability.Search().OnSearchComplete(ctx, observability.SearchEvent{
		Source:   res.Source,
		Target:   res.Target,
		Found:    res.Found,
		Cost:     res.Cost,
		Hops:     res.Hops,
		Expanded: res.Stats.Expanded,
		Pushed:   res.Stats.Pushed,
		Duration: res.Duration,
		CacheHit: res.CacheHit,
	}, nil)

	logger.Info("navigated",
		"source", res.Source,
		"target", res.Target,
		"found", res.Found,
		"cost", res.Cost,
		"hops", res.Hops,
		"cached", res.CacheHit)
	logger.Debug("search stats",
		"pushed", res.Stats.Pushed,
		"expanded", res.Stats.Expanded,
		"relaxed", res.Stats.Relaxed,
		"reopened", res.Stats.Reopened,
		"stale", res.Stats.Stale,
		"duration", res.Duration)

	r.record(ctx, res, logger)
	return res, nil
}

func (r *Runner) search(doc io.Document, source, target int) *Result {
	start := time.Now()
	var stats search.Stats
	p, found := search.SearchWithOptions(doc.Graph(), source, target, search.Options[int]{Stats: &stats})

	res := &Result{
		Found:    found,
		Stats:    stats,
		Duration: time.Since(start),
	}
	if found {
		res.NodeIDs = p.Nodes
		res.Path = doc.Labels(p.Nodes)
		res.Cost = p.Cost
		res.Hops = p.Hops()
	}
	return res
}

// cachedRoute returns the cached result for key unless opts.Refresh is set.
// Undecodable entries count as misses.
func (r *Runner) cachedRoute(ctx context.Context, key string, opts Options) (*Result, bool) {
	if opts.Refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "route")
		return nil, false
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		observability.Cache().OnCacheMiss(ctx, "route")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "route")
	res.CacheHit = true
	return &res, true
}

func (r *Runner) cacheRoute(ctx context.Context, key string, res *Result, logger *log.Logger) {
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLRoute); err != nil {
		logger.Warn("cache route", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "route", len(data))
}

// record saves res to the history store. History is best-effort: a failing
// store is logged and never fails the query.
func (r *Runner) record(ctx context.Context, res *Result, logger *log.Logger) {
	err := r.Store.Save(ctx, &store.Route{
		ID:        res.ID,
		MapHash:   res.MapHash,
		Source:    res.Source,
		Target:    res.Target,
		Found:     res.Found,
		Path:      res.Path,
		Cost:      res.Cost,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		logger.Warn("record route", "id", res.ID, "err", err)
	}
}

// LoadMapWithCacheInfo returns the star map identified by (uri, query),
// calling load on a cache miss and caching its result for cache.TTLMap.
// The boolean reports a cache hit.
func (r *Runner) LoadMapWithCacheInfo(ctx context.Context, uri, query string, refresh bool, load func(context.Context) (io.Document, error)) (io.Document, bool, error) {
	key := r.Keyer.MapKey(uri, query)

	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var doc io.Document
			if err := json.Unmarshal(data, &doc); err == nil && doc.Validate() == nil {
				observability.Cache().OnCacheHit(ctx, "map")
				return doc, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "map")
	}

	doc, err := load(ctx)
	if err != nil {
		return io.Document{}, false, err
	}

	if data, err := json.Marshal(doc); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLMap); err == nil {
			observability.Cache().OnCacheSet(ctx, "map", len(data))
		}
	}
	return doc, false, nil
}

// History returns up to limit recorded routes, newest first.
func (r *Runner) History(ctx context.Context, limit int) ([]store.Route, error) {
	return r.Store.Recent(ctx, limit)
}

// Close releases resources held by the runner (cache and store).
func (r *Runner) Close() error {
	var errList []error
	if r.Cache != nil {
		errList = append(errList, r.Cache.Close())
	}
	if r.Store != nil {
		errList = append(errList, r.Store.Close())
	}
	return errors.Join(errList...)
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
