package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one redis database without seeing each other's entries.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// RouteKey generates a prefixed route key.
func (k *ScopedKeyer) RouteKey(mapHash string, opts RouteKeyOpts) string {
	return k.prefix + k.inner.RouteKey(mapHash, opts)
}

// MapKey generates a prefixed map key.
func (k *ScopedKeyer) MapKey(uri, query string) string {
	return k.prefix + k.inner.MapKey(uri, query)
}
