// Package object converts reflected objects to and from JSON.
//
// A [Serializer] walks an object's fields through a [field.Accessor] and
// writes one JSON property per supported field, in enumeration order.
// Object references are serialized recursively and embedded as a JSON
// string holding the nested document:
//
//	{"Name":"Ada","Weapon":"{\"Name\":\"Sword\",\"Damage\":12.5}"}
//
// The importer expects the same double encoding, so [Serializer.Deserialize]
// can populate an object from the output of [Serializer.Serialize].
// Deserialize is a partial update: fields missing from the document are left
// untouched, values that cannot be coerced to the field's kind are skipped,
// and nested objects are only populated when the target already holds a
// non-null reference.
//
// Unlike a naive recursive walk, the serializer tracks the chain of
// references it is currently inside. A reference back into that chain, or
// one nested deeper than [Serializer.MaxDepth], is omitted from the output.
package object
