package export

import (
	"github.com/matzehuels/bpjson/pkg/errors"
	"github.com/matzehuels/bpjson/pkg/jsonobj"
	"github.com/matzehuels/bpjson/pkg/project"
	"github.com/matzehuels/bpjson/pkg/registry"
)

// KindEntry is the catalog entry of a node kind.
type KindEntry struct {
	NodeType     string             `json:"node_type"`
	DisplayName  string             `json:"display_name"`
	Category     string             `json:"category"`
	Tooltip      string             `json:"tooltip"`
	Keywords     string             `json:"keywords"`
	CategoryPath string             `json:"category_path"`
	Pins         []registry.PinSpec `json:"pins"`
}

// FunctionEntry is the catalog entry of a callable library function.
type FunctionEntry struct {
	NodeType     string           `json:"node_type"`
	FunctionName string           `json:"function_name"`
	ClassName    string           `json:"class_name"`
	DisplayName  string           `json:"display_name"`
	Category     string           `json:"category"`
	Tooltip      string           `json:"tooltip"`
	Keywords     string           `json:"keywords"`
	CategoryPath string           `json:"category_path"`
	Parameters   []registry.Param `json:"parameters"`
}

// CatalogEntries lists every node kind followed by every callable function
// of reg.
func CatalogEntries(reg *registry.Registry) []any {
	var out []any
	for _, k := range reg.NodeKinds() {
		out = append(out, KindEntry{
			NodeType:     k.Type,
			DisplayName:  orDefault(k.DisplayName, k.Type),
			Category:     k.Category,
			Tooltip:      k.Tooltip,
			Keywords:     k.Keywords,
			CategoryPath: orDefault(k.CategoryPath, k.Category),
			Pins:         nonNilSlice(k.Pins),
		})
	}
	for _, f := range reg.Callable() {
		out = append(out, FunctionEntry{
			NodeType:     project.KindCallFunction,
			FunctionName: f.Name,
			ClassName:    f.Class,
			DisplayName:  orDefault(f.DisplayName, f.Name),
			Category:     f.Category,
			Tooltip:      f.Tooltip,
			Keywords:     f.Keywords,
			CategoryPath: orDefault(f.CategoryPath, f.Category),
			Parameters:   nonNilSlice(f.Params),
		})
	}
	if out == nil {
		out = []any{}
	}
	return out
}

// Catalog writes the node palette of reg as a flat JSON array.
func (e *Exporter) Catalog(reg *registry.Registry) ([]byte, error) {
	if reg == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil registry")
	}
	data, err := jsonobj.Encode(CatalogEntries(reg), e.indent)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode catalog")
	}
	return data, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
