// Package jsonobj provides an insertion-ordered JSON object.
//
// The exporter's documents have a fixed key order (NodeName before NodeType,
// InputPins before OutputPins, field enumeration order for reflected
// objects). encoding/json sorts map keys, so documents are assembled from
// [Object] values, backed by an ordered map, and written with [Encode].
package jsonobj

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Object is a JSON object that remembers the order keys were first set.
// The zero value is ready to use.
type Object struct {
	pairs *orderedmap.OrderedMap[string, any]
}

// New returns an empty object.
func New() *Object {
	return &Object{pairs: orderedmap.New[string, any]()}
}

// Set stores v under key. Re-setting an existing key replaces the value
// but keeps its original position.
func (o *Object) Set(key string, v any) *Object {
	if o.pairs == nil {
		o.pairs = orderedmap.New[string, any]()
	}
	o.pairs.Set(key, v)
	return o
}

// SetIfAbsent stores v only when key is not present yet. It reports
// whether the value was stored.
func (o *Object) SetIfAbsent(key string, v any) bool {
	if o.Has(key) {
		return false
	}
	o.Set(key, v)
	return true
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil || o.pairs == nil {
		return nil, false
	}
	return o.pairs.Get(key)
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Delete removes key. Missing keys are ignored.
func (o *Object) Delete(key string) {
	if o == nil || o.pairs == nil {
		return
	}
	o.pairs.Delete(key)
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil || o.pairs == nil {
		return nil
	}
	out := make([]string, 0, o.pairs.Len())
	for p := o.pairs.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Key)
	}
	return out
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil || o.pairs == nil {
		return 0
	}
	return o.pairs.Len()
}

// String returns the value under key when it is a JSON string.
func (o *Object) String(key string) (string, bool) {
	v, ok := o.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// MarshalJSON writes the object with keys in insertion order. Values are
// encoded without HTML escaping, unlike the ordered map's own marshaller.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	if o.pairs != nil {
		for p := o.pairs.Oldest(); p != nil; p = p.Next() {
			if buf.Len() > 1 {
				buf.WriteByte(',')
			}
			kb, err := encodeCompact(p.Key)
			if err != nil {
				return nil, err
			}
			buf.Write(kb)
			buf.WriteByte(':')

			vb, err := encodeCompact(p.Value)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", p.Key, err)
			}
			buf.Write(vb)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Encode marshals v without HTML escaping. A non-empty indent pretty-prints
// the document. The result has no trailing newline.
func Encode(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, v, indent); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Write encodes v to w the same way as [Encode], followed by a newline.
func Write(w io.Writer, v any, indent string) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func encodeCompact(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
