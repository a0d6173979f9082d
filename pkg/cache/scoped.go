package cache

// ScopedKeyer wraps a Keyer with a prefix, so caches written by different
// builds or registries never share entries.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1.2.0:")
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

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(inputHash, configHash string) string {
	return k.prefix + k.inner.LayoutKey(inputHash, configHash)
}

// RenderKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) RenderKey(modelHash, format string) string {
	return k.prefix + k.inner.RenderKey(modelHash, format)
}
