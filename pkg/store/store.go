// Package store keeps a history of computed routes.
//
// Backends implement [Store]:
//   - [FileStore] for the CLI, one JSON file per route under the user data dir
//   - [MongoStore] for the HTTP server, a single "routes" collection
//   - [NullStore] when history is disabled
//
// # Usage
//
//	st, err := store.NewMongoStore(ctx, "mongodb://localhost:27017", "starpath")
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//
//	err = st.Save(ctx, &store.Route{ID: id, Source: "Earth", Target: "Mars", ...})
//	recent, err := st.Recent(ctx, 20)
package store

import (
	"context"
	"time"
)

// DefaultLimit is the number of routes returned by history listings when the
// caller does not ask for a specific amount.
const DefaultLimit = 20

// Route is one answered navigation query.
type Route struct {
	ID        string    `json:"id" bson:"_id"`
	MapHash   string    `json:"map_hash" bson:"map_hash"`
	Source    string    `json:"source" bson:"source"`
	Target    string    `json:"target" bson:"target"`
	Found     bool      `json:"found" bson:"found"`
	Path      []string  `json:"path,omitempty" bson:"path,omitempty"`
	Cost      float64   `json:"cost" bson:"cost"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Store is the interface for route history backends.
type Store interface {
	// Save records a route. Saving an existing ID replaces it.
	Save(ctx context.Context, r *Route) error

	// Get retrieves a route by ID.
	// Returns nil, nil if the route doesn't exist.
	Get(ctx context.Context, id string) (*Route, error)

	// Recent returns up to limit routes, newest first.
	// A limit of zero or less means DefaultLimit.
	Recent(ctx context.Context, limit int) ([]Route, error)

	// Close releases the backend's resources.
	Close() error
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}
