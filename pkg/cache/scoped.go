package cache

// ScopedKeyer prefixes every key of an inner Keyer. The server uses it to
// keep its entries apart from CLI entries in a shared Redis.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the DefaultKeyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ExportKey(source []byte, registryHash string, opts ExportKeyOpts) string {
	return k.prefix + k.inner.ExportKey(source, registryHash, opts)
}

func (k *ScopedKeyer) CatalogKey(registryHash string, indent string) string {
	return k.prefix + k.inner.CatalogKey(registryHash, indent)
}
