// Package field abstracts named, typed field access over arbitrary objects.
//
// The object serializer never touches a host type system directly. It asks an
// [Accessor] to enumerate an object's fields, read them as a [Value] and
// write them back. Only five kinds are supported:
//
//	KindString   string
//	KindInt      integer (int64)
//	KindFloat    floating point (float64)
//	KindBool     bool
//	KindObject   reference to another object (not owned)
//
// Any other field is reported as [KindUnsupported]; exporters skip it and
// importers ignore it.
//
// # Adapters
//
// Two adapters ship with the package:
//
//   - [Reflect] walks exported Go struct fields through package reflect.
//     A `bp:"Name"` tag renames a field, `bp:"-"` hides it.
//   - [Dynamic] is an ordered bag of values, used for objects described in
//     YAML or JSON files rather than Go types.
//
// A host with its own reflection system implements [Accessor] once.
package field
