package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// The server uses this to separate tenants sharing one Redis instance:
//
//	// Per-token keys
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "tenant:abc123:")
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

// DiagramKey generates a prefixed key for diagram caching.
func (k *ScopedKeyer) DiagramKey(input string, opts DiagramKeyOpts) string {
	return k.prefix + k.inner.DiagramKey(input, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(diagramHash, opts)
}
