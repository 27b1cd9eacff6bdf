package field

import (
	"fmt"
	"strconv"
)

// Kind identifies which variant of a [Value] is populated.
type Kind uint8

const (
	KindUnsupported Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindObject
)

var kindNames = [...]string{
	KindUnsupported: "unsupported",
	KindString:      "string",
	KindInt:         "int",
	KindFloat:       "float",
	KindBool:        "bool",
	KindObject:      "object",
}

// String returns the lower-case kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Field describes one enumerable field of an object.
type Field struct {
	Name string
	Kind Kind
}

// Value is a tagged union over the supported field kinds. Exactly one
// variant is populated; construct values with the String, Int, Float, Bool
// and Object functions.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
	obj  any
}

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a floating point value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Object returns an object reference. A nil handle is a null reference.
func Object(obj any) Value { return Value{kind: KindObject, obj: obj} }

// Kind returns the populated variant.
func (v Value) Kind() Kind { return v.kind }

// Str returns the string variant.
func (v Value) Str() string { return v.s }

// Int returns the integer variant.
func (v Value) Int() int64 { return v.i }

// Float returns the floating point variant.
func (v Value) Float() float64 { return v.f }

// Bool returns the boolean variant.
func (v Value) Bool() bool { return v.b }

// Ref returns the referenced object handle, or nil.
func (v Value) Ref() any { return v.obj }

// IsNull reports whether v is an object reference with no target.
func (v Value) IsNull() bool {
	return v.kind == KindObject && isNil(v.obj)
}

// GoString renders the value for debugging and test failure messages.
func (v Value) GoString() string {
	switch v.kind {
	case KindString:
		return strconv.Quote(v.s)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindObject:
		if v.IsNull() {
			return "object(nil)"
		}
		return fmt.Sprintf("object(%p)", v.obj)
	}
	return "unsupported"
}
