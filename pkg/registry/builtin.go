package registry

import (
	_ "embed"
	"sync"
)

//go:embed builtin.yaml
var builtinYAML []byte

var (
	builtin     *Registry
	builtinOnce sync.Once
)

// Default returns the built-in registry. It is parsed once on first use.
func Default() *Registry {
	builtinOnce.Do(func() {
		r, err := Parse(builtinYAML)
		if err != nil {
			panic("registry: invalid builtin.yaml: " + err.Error())
		}
		builtin = r
	})
	return builtin
}

// LoadWithDefaults loads path and merges it over the built-in registry. An
// empty path returns the built-in registry.
func LoadWithDefaults(path string) (*Registry, error) {
	if path == "" {
		return Default(), nil
	}
	r, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Default().Merge(r), nil
}
