// Package registry holds the type information the exporter resolves node
// references against: classes, structs, callable functions, member
// variables and the catalog of node kinds.
//
// A Registry is built once, from YAML, and never mutated afterwards. The
// built-in registry returned by [Default] covers the engine classes and
// library functions most blueprints reference; project registries loaded
// with [Load] are layered on top with [Registry.Merge].
package registry

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/bpjson/pkg/errors"
)

// Class is a class a node can reference.
type Class struct {
	Name   string `yaml:"name"`
	Path   string `yaml:"path,omitempty"`
	Parent string `yaml:"parent,omitempty"`
}

// Struct is a struct type used by make/break nodes and pin sub-types.
type Struct struct {
	Name string `yaml:"name"`
	Path string `yaml:"path,omitempty"`
}

// Param is one parameter of a callable function.
type Param struct {
	Name        string `yaml:"name" json:"name"`
	Type        string `yaml:"type" json:"type"`
	DisplayName string `yaml:"display_name,omitempty" json:"display_name"`
	Direction   string `yaml:"direction,omitempty" json:"direction"`
}

// Function is a function, event or delegate signature owned by a class.
type Function struct {
	Name  string `yaml:"name"`
	Class string `yaml:"class"`
	// Signature names the function object that defines the parameter list.
	// It defaults to Name.
	Signature    string  `yaml:"signature,omitempty"`
	Pure         bool    `yaml:"pure,omitempty"`
	Hidden       bool    `yaml:"hidden,omitempty"`
	DisplayName  string  `yaml:"display_name,omitempty"`
	Category     string  `yaml:"category,omitempty"`
	Tooltip      string  `yaml:"tooltip,omitempty"`
	Keywords     string  `yaml:"keywords,omitempty"`
	CategoryPath string  `yaml:"category_path,omitempty"`
	Params       []Param `yaml:"params,omitempty"`
}

// Variable is a member variable.
type Variable struct {
	Class string `yaml:"class"`
	Name  string `yaml:"name"`
	// Type is the property class, for example "FloatProperty".
	Type string `yaml:"type"`
}

// PinSpec is a pin declared by a node kind.
type PinSpec struct {
	Name        string `yaml:"name" json:"name"`
	Direction   string `yaml:"direction" json:"direction"`
	Type        string `yaml:"type" json:"type"`
	SubType     string `yaml:"sub_type,omitempty" json:"sub_type"`
	IsArray     bool   `yaml:"is_array,omitempty" json:"is_array"`
	IsReference bool   `yaml:"is_reference,omitempty" json:"is_reference"`
}

// NodeKind is a catalog entry for one node class.
type NodeKind struct {
	Type         string    `yaml:"type"`
	DisplayName  string    `yaml:"display_name"`
	Category     string    `yaml:"category,omitempty"`
	Tooltip      string    `yaml:"tooltip,omitempty"`
	Keywords     string    `yaml:"keywords,omitempty"`
	CategoryPath string    `yaml:"category_path,omitempty"`
	Pins         []PinSpec `yaml:"pins,omitempty"`
}

// Registry resolves references by name or object path. The zero value is
// an empty registry.
type Registry struct {
	classes   []Class
	structs   []Struct
	functions []Function
	variables []Variable
	kinds     []NodeKind

	classIndex  map[string]int
	structIndex map[string]int
	funcIndex   map[string]int
	funcByName  map[string]int
	varIndex    map[string]int
	varByName   map[string]int
	kindIndex   map[string]int
}

type document struct {
	Classes   []Class    `yaml:"classes"`
	Structs   []Struct   `yaml:"structs"`
	Functions []Function `yaml:"functions"`
	Variables []Variable `yaml:"variables"`
	NodeKinds []NodeKind `yaml:"node_kinds"`
}

// Parse builds a registry from a YAML document.
func Parse(data []byte) (*Registry, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParseFailure, err, "parse registry")
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return build(doc), nil
}

// Load reads a registry file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "read registry %s", path)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "registry %s", path)
	}
	return r, nil
}

func (d document) validate() error {
	for i, c := range d.Classes {
		if c.Name == "" {
			return errors.New(errors.ErrCodeInvalidInput, "classes[%d]: name is required", i)
		}
	}
	for i, s := range d.Structs {
		if s.Name == "" {
			return errors.New(errors.ErrCodeInvalidInput, "structs[%d]: name is required", i)
		}
	}
	for i, f := range d.Functions {
		if f.Name == "" {
			return errors.New(errors.ErrCodeInvalidInput, "functions[%d]: name is required", i)
		}
	}
	for i, v := range d.Variables {
		if v.Name == "" {
			return errors.New(errors.ErrCodeInvalidInput, "variables[%d]: name is required", i)
		}
	}
	for i, k := range d.NodeKinds {
		if k.Type == "" {
			return errors.New(errors.ErrCodeInvalidInput, "node_kinds[%d]: type is required", i)
		}
	}
	return nil
}

func build(d document) *Registry {
	r := &Registry{
		classIndex:  make(map[string]int),
		structIndex: make(map[string]int),
		funcIndex:   make(map[string]int),
		funcByName:  make(map[string]int),
		varIndex:    make(map[string]int),
		varByName:   make(map[string]int),
		kindIndex:   make(map[string]int),
	}
	for _, c := range d.Classes {
		if i, ok := r.classIndex[c.Name]; ok {
			r.classes[i] = c
		} else {
			r.classIndex[c.Name] = len(r.classes)
			r.classes = append(r.classes, c)
		}
		if c.Path != "" {
			r.classIndex[c.Path] = r.classIndex[c.Name]
		}
	}
	for _, s := range d.Structs {
		if i, ok := r.structIndex[s.Name]; ok {
			r.structs[i] = s
		} else {
			r.structIndex[s.Name] = len(r.structs)
			r.structs = append(r.structs, s)
		}
		if s.Path != "" {
			r.structIndex[s.Path] = r.structIndex[s.Name]
		}
	}
	for _, f := range d.Functions {
		if f.Signature == "" {
			f.Signature = f.Name
		}
		key := memberKey(f.Class, f.Name)
		if i, ok := r.funcIndex[key]; ok {
			r.functions[i] = f
			continue
		}
		r.funcIndex[key] = len(r.functions)
		if _, ok := r.funcByName[f.Name]; !ok {
			r.funcByName[f.Name] = len(r.functions)
		}
		r.functions = append(r.functions, f)
	}
	for _, v := range d.Variables {
		key := memberKey(v.Class, v.Name)
		if i, ok := r.varIndex[key]; ok {
			r.variables[i] = v
			continue
		}
		r.varIndex[key] = len(r.variables)
		if _, ok := r.varByName[v.Name]; !ok {
			r.varByName[v.Name] = len(r.variables)
		}
		r.variables = append(r.variables, v)
	}
	for _, k := range d.NodeKinds {
		if i, ok := r.kindIndex[k.Type]; ok {
			r.kinds[i] = k
			continue
		}
		r.kindIndex[k.Type] = len(r.kinds)
		r.kinds = append(r.kinds, k)
	}
	return r
}

func (r *Registry) document() document {
	if r == nil {
		return document{}
	}
	return document{
		Classes:   r.classes,
		Structs:   r.structs,
		Functions: r.functions,
		Variables: r.variables,
		NodeKinds: r.kinds,
	}
}

// Merge returns a registry holding the entries of r and o. Entries of o
// replace entries of r with the same name.
func (r *Registry) Merge(o *Registry) *Registry {
	a, b := r.document(), o.document()
	return build(document{
		Classes:   append(append([]Class(nil), a.Classes...), b.Classes...),
		Structs:   append(append([]Struct(nil), a.Structs...), b.Structs...),
		Functions: append(append([]Function(nil), a.Functions...), b.Functions...),
		Variables: append(append([]Variable(nil), a.Variables...), b.Variables...),
		NodeKinds: append(append([]NodeKind(nil), a.NodeKinds...), b.NodeKinds...),
	})
}

func memberKey(class, name string) string { return class + "::" + name }

// shortName strips an object path down to the object name:
// "/Script/Engine.Actor" becomes "Actor".
func shortName(ref string) string {
	if i := strings.LastIndexAny(ref, ".:"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

// Class resolves a class by name or object path. Blueprint generated class
// names ("BP_Player_C") resolve to the blueprint's class entry.
func (r *Registry) Class(ref string) (Class, bool) {
	if r == nil || ref == "" || ref == "None" {
		return Class{}, false
	}
	for _, key := range []string{ref, shortName(ref), strings.TrimSuffix(shortName(ref), "_C")} {
		if i, ok := r.classIndex[key]; ok {
			return r.classes[i], true
		}
	}
	return Class{}, false
}

// Struct resolves a struct by name or object path.
func (r *Registry) Struct(ref string) (Struct, bool) {
	if r == nil || ref == "" {
		return Struct{}, false
	}
	if i, ok := r.structIndex[ref]; ok {
		return r.structs[i], true
	}
	if i, ok := r.structIndex[shortName(ref)]; ok {
		return r.structs[i], true
	}
	return Struct{}, false
}

// Function resolves a function owned by class. With an empty class the
// first function registered under name is returned. A class that does not
// declare name is searched up its parent chain.
func (r *Registry) Function(class, name string) (Function, bool) {
	if r == nil || name == "" {
		return Function{}, false
	}
	if class == "" {
		i, ok := r.funcByName[name]
		if !ok {
			return Function{}, false
		}
		return r.functions[i], true
	}
	for _, c := range r.lineage(class) {
		if i, ok := r.funcIndex[memberKey(c, name)]; ok {
			return r.functions[i], true
		}
	}
	return Function{}, false
}

// Variable resolves a member variable the same way as Function.
func (r *Registry) Variable(class, name string) (Variable, bool) {
	if r == nil || name == "" {
		return Variable{}, false
	}
	if class == "" {
		i, ok := r.varByName[name]
		if !ok {
			return Variable{}, false
		}
		return r.variables[i], true
	}
	for _, c := range r.lineage(class) {
		if i, ok := r.varIndex[memberKey(c, name)]; ok {
			return r.variables[i], true
		}
	}
	return Variable{}, false
}

// lineage returns class followed by its registered ancestors.
func (r *Registry) lineage(class string) []string {
	c, ok := r.Class(class)
	if !ok {
		return []string{shortName(class)}
	}
	out := []string{c.Name}
	seen := map[string]bool{c.Name: true}
	for c.Parent != "" {
		next, ok := r.Class(c.Parent)
		if !ok || seen[next.Name] {
			break
		}
		seen[next.Name] = true
		out = append(out, next.Name)
		c = next
	}
	return out
}

// NodeKind returns the catalog entry for a node class.
func (r *Registry) NodeKind(kind string) (NodeKind, bool) {
	if r == nil {
		return NodeKind{}, false
	}
	i, ok := r.kindIndex[kind]
	if !ok {
		return NodeKind{}, false
	}
	return r.kinds[i], true
}

// NodeKinds returns every catalog entry in registration order.
func (r *Registry) NodeKinds() []NodeKind {
	if r == nil {
		return nil
	}
	return append([]NodeKind(nil), r.kinds...)
}

// Functions returns every function in registration order.
func (r *Registry) Functions() []Function {
	if r == nil {
		return nil
	}
	return append([]Function(nil), r.functions...)
}

// Callable returns the functions that appear in the node palette.
func (r *Registry) Callable() []Function {
	var out []Function
	for _, f := range r.Functions() {
		if !f.Hidden {
			out = append(out, f)
		}
	}
	return out
}

// Stats summarizes the registry size.
type Stats struct {
	Classes, Structs, Functions, Variables, NodeKinds int
}

// Stats returns the number of entries of each sort.
func (r *Registry) Stats() Stats {
	d := r.document()
	return Stats{
		Classes:   len(d.Classes),
		Structs:   len(d.Structs),
		Functions: len(d.Functions),
		Variables: len(d.Variables),
		NodeKinds: len(d.NodeKinds),
	}
}

// MarshalYAML writes the registry in the form Parse reads, so a merged
// registry can be saved and its content fingerprinted.
func (r *Registry) MarshalYAML() (any, error) {
	return r.document(), nil
}
