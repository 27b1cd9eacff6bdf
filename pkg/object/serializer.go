package object

import (
	"io"
	"math"
	"reflect"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bpjson/pkg/errors"
	"github.com/matzehuels/bpjson/pkg/field"
	"github.com/matzehuels/bpjson/pkg/jsonobj"
)

// DefaultMaxDepth bounds how many object references are followed below the
// root object.
const DefaultMaxDepth = 8

// Serializer converts objects exposed through an Accessor to JSON and back.
// A Serializer holds no per-call state and is safe for concurrent use as
// long as the objects it is given are not shared between goroutines.
type Serializer struct {
	Accessor field.Accessor
	Logger   *log.Logger

	// MaxDepth is the deepest nesting level that is still serialized. The
	// root object is level 0.
	MaxDepth int

	// Indent pretty-prints top-level documents. Embedded documents are
	// always compact.
	Indent string
}

// Option configures a Serializer.
type Option func(*Serializer)

// WithLogger sets the logger used for skipped fields.
func WithLogger(l *log.Logger) Option {
	return func(s *Serializer) { s.Logger = l }
}

// WithMaxDepth overrides DefaultMaxDepth. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(s *Serializer) {
		if n > 0 {
			s.MaxDepth = n
		}
	}
}

// WithIndent pretty-prints top-level documents with the given indent.
func WithIndent(indent string) Option {
	return func(s *Serializer) { s.Indent = indent }
}

// New returns a Serializer over acc. A nil acc defaults to field.Reflect.
func New(acc field.Accessor, opts ...Option) *Serializer {
	if acc == nil {
		acc = field.Reflect{}
	}
	s := &Serializer{Accessor: acc, MaxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(s)
	}
	if s.Logger == nil {
		s.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return s
}

// Serialize writes every supported field of obj as a JSON object.
func (s *Serializer) Serialize(obj any) (string, error) {
	snap, err := s.Snapshot(obj)
	if err != nil {
		return "", err
	}
	return s.encode(snap, s.Indent)
}

// Snapshot builds the ordered JSON object Serialize would write.
func (s *Serializer) Snapshot(obj any) (*jsonobj.Object, error) {
	if field.IsNil(obj) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil object")
	}
	w := walk{s: s, path: make(map[any]bool)}
	return w.snapshot(obj, 0), nil
}

// FieldJSON writes a single field of obj as a one-entry JSON object keyed by
// the field name. A null object reference yields an empty object.
func (s *Serializer) FieldJSON(obj any, name string) (string, error) {
	if field.IsNil(obj) || name == "" {
		return "", errors.New(errors.ErrCodeInvalidInput, "nil object or empty field name")
	}
	f, ok := field.Lookup(s.Accessor, obj, name)
	if !ok {
		return "", errors.New(errors.ErrCodeFieldNotFound, "no field %q", name)
	}
	if f.Kind == field.KindUnsupported {
		return "", errors.New(errors.ErrCodeKindMismatch, "field %q has an unsupported kind", name)
	}
	w := walk{s: s, path: map[any]bool{}}
	if key, ok := handleKey(obj); ok {
		w.path[key] = true
	}
	out := jsonobj.New()
	w.writeField(out, obj, f, 0)
	return s.encode(out, s.Indent)
}

func (s *Serializer) encode(o *jsonobj.Object, indent string) (string, error) {
	data, err := jsonobj.Encode(o, indent)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode object")
	}
	return string(data), nil
}

// walk carries the reference chain of one Serialize call.
type walk struct {
	s    *Serializer
	path map[any]bool
}

func (w *walk) snapshot(obj any, depth int) *jsonobj.Object {
	key, tracked := handleKey(obj)
	if tracked {
		w.path[key] = true
		defer delete(w.path, key)
	}
	out := jsonobj.New()
	for _, f := range w.s.Accessor.Fields(obj) {
		w.writeField(out, obj, f, depth)
	}
	return out
}

func (w *walk) writeField(out *jsonobj.Object, obj any, f field.Field, depth int) {
	if f.Kind == field.KindUnsupported {
		return
	}
	v, err := w.s.Accessor.Get(obj, f.Name)
	if err != nil {
		w.s.Logger.Debug("skipping unreadable field", "field", f.Name, "error", err)
		return
	}
	switch v.Kind() {
	case field.KindString:
		out.Set(f.Name, v.Str())
	case field.KindInt:
		out.Set(f.Name, v.Int())
	case field.KindFloat:
		if math.IsNaN(v.Float()) || math.IsInf(v.Float(), 0) {
			w.s.Logger.Debug("skipping non-finite float", "field", f.Name)
			return
		}
		out.Set(f.Name, v.Float())
	case field.KindBool:
		out.Set(f.Name, v.Bool())
	case field.KindObject:
		if v.IsNull() {
			return
		}
		if key, ok := handleKey(v.Ref()); ok && w.path[key] {
			w.s.Logger.Warn("omitting cyclic reference", "field", f.Name)
			return
		}
		if depth+1 > w.s.MaxDepth {
			w.s.Logger.Warn("omitting reference beyond max depth", "field", f.Name, "max_depth", w.s.MaxDepth)
			return
		}
		nested, err := w.s.encode(w.snapshot(v.Ref(), depth+1), "")
		if err != nil {
			w.s.Logger.Debug("skipping nested object", "field", f.Name, "error", err)
			return
		}
		out.Set(f.Name, nested)
	}
}

// handleKey returns a map key identifying obj when its dynamic type is
// comparable.
func handleKey(obj any) (any, bool) {
	if obj == nil {
		return nil, false
	}
	if !reflect.TypeOf(obj).Comparable() {
		return nil, false
	}
	return obj, true
}
