package field

import (
	"reflect"

	"github.com/matzehuels/bpjson/pkg/errors"
)

// Accessor enumerates, reads and writes the named fields of an object.
//
// Fields returns fields in a stable enumeration order; unsupported fields
// may be listed with [KindUnsupported]. Get fails with
// errors.ErrCodeFieldNotFound for unknown names. Set fails with
// errors.ErrCodeFieldNotFound or errors.ErrCodeKindMismatch.
type Accessor interface {
	Fields(obj any) []Field
	Get(obj any, name string) (Value, error)
	Set(obj any, name string, v Value) error
}

// Lookup returns the field named name from acc's enumeration of obj.
func Lookup(acc Accessor, obj any, name string) (Field, bool) {
	for _, f := range acc.Fields(obj) {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func notFound(name string) error {
	return errors.New(errors.ErrCodeFieldNotFound, "no field %q", name)
}

func mismatch(name string, want, got Kind) error {
	return errors.New(errors.ErrCodeKindMismatch, "field %q is %s, got %s", name, want, got)
}

func isNil(obj any) bool {
	if obj == nil {
		return true
	}
	rv := reflect.ValueOf(obj)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// IsNil reports whether an object handle is nil, including typed nil
// pointers stored in an interface.
func IsNil(obj any) bool { return isNil(obj) }
