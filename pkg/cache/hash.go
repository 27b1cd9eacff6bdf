package cache

import (
	"encoding/hex"
	"encoding/json"

	"lukechampine.com/blake3"
)

// Hash returns the hex BLAKE3-256 digest of data.
func Hash(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds "prefix:hash(parts...)".
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// ExportKeyOpts lists the export options that change the output document.
// It converts directly from export.Settings.
type ExportKeyOpts struct {
	Tags         bool     `json:"tags,omitempty"`
	Metadata     bool     `json:"metadata,omitempty"`
	GraphFilters []string `json:"graphs,omitempty"`
	KindFilters  []string `json:"kinds,omitempty"`
	Indent       string   `json:"indent,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ExportKey keys a blueprint document by its source and options.
	// registryHash identifies the registry the export resolved against.
	ExportKey(source []byte, registryHash string, opts ExportKeyOpts) string
	// CatalogKey keys a node catalog by its registry.
	CatalogKey(registryHash string, indent string) string
}

// DefaultKeyer is the unscoped Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the unscoped Keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) ExportKey(source []byte, registryHash string, opts ExportKeyOpts) string {
	return hashKey("export", Hash(source), registryHash, opts)
}

func (DefaultKeyer) CatalogKey(registryHash string, indent string) string {
	return hashKey("catalog", registryHash, indent)
}
