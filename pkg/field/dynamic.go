package field

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/bpjson/pkg/errors"
)

// Dynamic is an object whose fields are declared at runtime. Field order is
// declaration order and each field keeps the kind it was declared with, so
// a null object reference still enumerates as [KindObject].
type Dynamic struct {
	names  []string
	kinds  map[string]Kind
	values map[string]Value
	raw    map[string]*yaml.Node // unsupported fields loaded from YAML
}

// NewDynamic returns an object with no fields.
func NewDynamic() *Dynamic {
	return &Dynamic{kinds: make(map[string]Kind), values: make(map[string]Value)}
}

// Define declares a field with v's kind and value. Redefining a field
// replaces both but keeps its position.
func (d *Dynamic) Define(name string, v Value) *Dynamic {
	if _, ok := d.kinds[name]; !ok {
		d.names = append(d.names, name)
	}
	d.kinds[name] = v.Kind()
	d.values[name] = v
	return d
}

// DefineUnsupported declares a field the serializer cannot represent.
func (d *Dynamic) DefineUnsupported(name string) *Dynamic {
	return d.Define(name, Value{})
}

// Value returns the current value of a field.
func (d *Dynamic) Value(name string) (Value, bool) {
	v, ok := d.values[name]
	return v, ok
}

// DynamicAccessor is the [Accessor] for *Dynamic objects.
type DynamicAccessor struct{}

var _ Accessor = DynamicAccessor{}

// Fields lists declared fields in order.
func (DynamicAccessor) Fields(obj any) []Field {
	d, ok := obj.(*Dynamic)
	if !ok || d == nil {
		return nil
	}
	out := make([]Field, len(d.names))
	for i, n := range d.names {
		out[i] = Field{Name: n, Kind: d.kinds[n]}
	}
	return out
}

// Get reads a field.
func (DynamicAccessor) Get(obj any, name string) (Value, error) {
	d, ok := obj.(*Dynamic)
	if !ok || d == nil {
		return Value{}, errors.New(errors.ErrCodeInvalidInput, "not a dynamic object: %T", obj)
	}
	v, ok := d.values[name]
	if !ok {
		return Value{}, notFound(name)
	}
	return v, nil
}

// Set writes a field. The value must match the declared kind.
func (DynamicAccessor) Set(obj any, name string, v Value) error {
	d, ok := obj.(*Dynamic)
	if !ok || d == nil {
		return errors.New(errors.ErrCodeInvalidInput, "not a dynamic object: %T", obj)
	}
	k, ok := d.kinds[name]
	if !ok {
		return notFound(name)
	}
	if k == KindUnsupported || v.Kind() != k {
		return mismatch(name, k, v.Kind())
	}
	if k == KindObject && !v.IsNull() {
		if _, ok := v.Ref().(*Dynamic); !ok {
			return errors.New(errors.ErrCodeKindMismatch, "field %q: reference must be *Dynamic, got %T", name, v.Ref())
		}
	}
	d.values[name] = v
	return nil
}

// ParseDynamicYAML builds a Dynamic object from a YAML mapping. Scalars map
// to their natural kinds, nested mappings become referenced objects, null
// becomes a null reference and sequences are declared unsupported.
func ParseDynamicYAML(data []byte) (*Dynamic, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParseFailure, err, "parse object YAML")
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return NewDynamic(), nil
	}
	return dynamicFromNode(doc.Content[0])
}

func dynamicFromNode(n *yaml.Node) (*Dynamic, error) {
	if n.Kind != yaml.MappingNode {
		return nil, errors.New(errors.ErrCodeParseFailure, "line %d: expected a mapping", n.Line)
	}
	d := NewDynamic()
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i].Value, n.Content[i+1]
		switch val.Kind {
		case yaml.MappingNode:
			child, err := dynamicFromNode(val)
			if err != nil {
				return nil, err
			}
			d.Define(key, Object(child))
		case yaml.ScalarNode:
			v, err := scalarValue(val)
			if err != nil {
				return nil, err
			}
			d.Define(key, v)
		default:
			d.DefineUnsupported(key)
			if d.raw == nil {
				d.raw = make(map[string]*yaml.Node)
			}
			d.raw[key] = val
		}
	}
	return d, nil
}

func scalarValue(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Object(nil), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, errors.Wrap(errors.ErrCodeParseFailure, err, "line %d", n.Line)
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return Value{}, errors.Wrap(errors.ErrCodeParseFailure, err, "line %d", n.Line)
		}
		return Int(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, errors.Wrap(errors.ErrCodeParseFailure, err, "line %d", n.Line)
		}
		return Float(f), nil
	}
	return String(n.Value), nil
}

// MarshalYAML writes the object back as an ordered mapping.
func (d *Dynamic) MarshalYAML() (any, error) {
	return d.yamlNode()
}

func (d *Dynamic) yamlNode() (*yaml.Node, error) {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range d.names {
		v := d.values[name]
		var val *yaml.Node
		switch v.Kind() {
		case KindString:
			val = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Str()}
		case KindInt:
			val = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v.Int(), 10)}
		case KindFloat:
			val = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(v.Float(), 'g', -1, 64)}
		case KindBool:
			val = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.Bool())}
		case KindObject:
			child, ok := v.Ref().(*Dynamic)
			if !ok || child == nil {
				val = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
				break
			}
			var err error
			if val, err = child.yamlNode(); err != nil {
				return nil, err
			}
		default:
			if val = d.raw[name]; val == nil {
				val = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
			}
		}
		m.Content = append(m.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			val,
		)
	}
	return m, nil
}

// String implements fmt.Stringer for log output.
func (d *Dynamic) String() string {
	return fmt.Sprintf("Dynamic(%d fields)", len(d.names))
}
