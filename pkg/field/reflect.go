package field

import (
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/matzehuels/bpjson/pkg/errors"
)

// Reflect is an [Accessor] over Go structs. Objects are pointers to
// structs; Get and Fields also accept struct values. Only exported fields
// are visible.
type Reflect struct{}

var _ Accessor = Reflect{}

type structField struct {
	name  string
	index int
	kind  Kind
}

var fieldCache sync.Map // reflect.Type -> []structField

func structFields(t reflect.Type) []structField {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]structField)
	}
	var out []structField
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() || sf.Anonymous {
			continue
		}
		name := sf.Name
		if tag, ok := sf.Tag.Lookup("bp"); ok {
			tag, _, _ = strings.Cut(tag, ",")
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		out = append(out, structField{name: name, index: i, kind: kindOf(sf.Type)})
	}
	fieldCache.Store(t, out)
	return out
}

func kindOf(t reflect.Type) Kind {
	switch t.Kind() {
	case reflect.String:
		return KindString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindInt
	case reflect.Float32, reflect.Float64:
		return KindFloat
	case reflect.Bool:
		return KindBool
	case reflect.Pointer:
		if t.Elem().Kind() == reflect.Struct {
			return KindObject
		}
	}
	return KindUnsupported
}

// structValue dereferences obj down to its struct value.
func structValue(obj any) (reflect.Value, bool) {
	if isNil(obj) {
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(obj)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	return rv, true
}

// Fields lists the exported fields of obj in declaration order.
func (Reflect) Fields(obj any) []Field {
	rv, ok := structValue(obj)
	if !ok {
		return nil
	}
	sfs := structFields(rv.Type())
	out := make([]Field, len(sfs))
	for i, sf := range sfs {
		out[i] = Field{Name: sf.name, Kind: sf.kind}
	}
	return out
}

func (Reflect) find(obj any, name string) (reflect.Value, structField, error) {
	rv, ok := structValue(obj)
	if !ok {
		return reflect.Value{}, structField{}, errors.New(errors.ErrCodeInvalidInput, "not a struct: %T", obj)
	}
	for _, sf := range structFields(rv.Type()) {
		if sf.name == name {
			return rv.Field(sf.index), sf, nil
		}
	}
	return reflect.Value{}, structField{}, notFound(name)
}

// Get reads the named field.
func (r Reflect) Get(obj any, name string) (Value, error) {
	fv, sf, err := r.find(obj, name)
	if err != nil {
		return Value{}, err
	}
	switch sf.kind {
	case KindString:
		return String(fv.String()), nil
	case KindInt:
		if fv.CanInt() {
			return Int(fv.Int()), nil
		}
		u := fv.Uint()
		if u > math.MaxInt64 {
			return Value{}, errors.New(errors.ErrCodeKindMismatch, "field %q: %d overflows int64", name, u)
		}
		return Int(int64(u)), nil
	case KindFloat:
		return Float(fv.Float()), nil
	case KindBool:
		return Bool(fv.Bool()), nil
	case KindObject:
		if fv.IsNil() {
			return Object(nil), nil
		}
		return Object(fv.Interface()), nil
	}
	return Value{}, mismatch(name, KindUnsupported, KindUnsupported)
}

// Set writes v into the named field. obj must be a non-nil pointer to a
// struct.
func (r Reflect) Set(obj any, name string, v Value) error {
	if isNil(obj) || reflect.ValueOf(obj).Kind() != reflect.Pointer {
		return errors.New(errors.ErrCodeInvalidInput, "Set needs a pointer to a struct, got %T", obj)
	}
	fv, sf, err := r.find(obj, name)
	if err != nil {
		return err
	}
	if sf.kind == KindUnsupported || v.Kind() != sf.kind {
		return mismatch(name, sf.kind, v.Kind())
	}
	switch sf.kind {
	case KindString:
		fv.SetString(v.Str())
	case KindInt:
		if fv.CanInt() {
			if fv.OverflowInt(v.Int()) {
				return errors.New(errors.ErrCodeKindMismatch, "field %q: %d overflows %s", name, v.Int(), fv.Type())
			}
			fv.SetInt(v.Int())
			return nil
		}
		if v.Int() < 0 || fv.OverflowUint(uint64(v.Int())) {
			return errors.New(errors.ErrCodeKindMismatch, "field %q: %d out of range for %s", name, v.Int(), fv.Type())
		}
		fv.SetUint(uint64(v.Int()))
	case KindFloat:
		fv.SetFloat(v.Float())
	case KindBool:
		fv.SetBool(v.Bool())
	case KindObject:
		if v.IsNull() {
			fv.Set(reflect.Zero(fv.Type()))
			return nil
		}
		ref := reflect.ValueOf(v.Ref())
		if !ref.Type().AssignableTo(fv.Type()) {
			return errors.New(errors.ErrCodeKindMismatch, "field %q: cannot assign %s to %s", name, ref.Type(), fv.Type())
		}
		fv.Set(ref)
	}
	return nil
}
