package cache

// Keyer derives cache keys.
type Keyer interface {
	// RouteKey identifies a route query against one version of a star map.
	RouteKey(mapHash string, opts RouteKeyOpts) string

	// MapKey identifies a star map loaded from a remote source.
	MapKey(uri, query string) string
}

// RouteKeyOpts are the query parameters that change a route result.
type RouteKeyOpts struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RouteKey returns "route:<hash>".
func (DefaultKeyer) RouteKey(mapHash string, opts RouteKeyOpts) string {
	return hashKey("route", mapHash, opts)
}

// MapKey returns "map:<hash>".
func (DefaultKeyer) MapKey(uri, query string) string {
	return hashKey("map", uri, query)
}
