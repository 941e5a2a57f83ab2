package cache

// ScopedKeyer wraps a Keyer with a prefix so server deployments can isolate
// cache namespaces per tenant or per API key.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every generated
// key. A nil inner falls back to the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// DiagramKey implements Keyer.
func (k *ScopedKeyer) DiagramKey(planHash string, opts DiagramKeyOpts) string {
	return k.prefix + k.inner.DiagramKey(planHash, opts)
}

// ArtifactKey implements Keyer.
func (k *ScopedKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(docHash, opts)
}
