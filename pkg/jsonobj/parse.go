package jsonobj

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Parse decodes a JSON object, preserving key order. Nested objects become
// *Object, arrays become []any and numbers are kept as json.Number so
// integers survive without float rounding. Duplicate keys keep the last
// value at the first position.
func Parse(data []byte) (*Object, error) {
	if !json.Valid(data) {
		return nil, errors.New("decode: invalid JSON document")
	}
	v, err := parseValue(data)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	obj, ok := v.(*Object)
	if !ok {
		return nil, fmt.Errorf("decode: expected object, got %T", v)
	}
	return obj, nil
}

func parseValue(raw []byte) (any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, errors.New("empty value")
	}
	switch raw[0] {
	case '{':
		pairs := orderedmap.New[string, json.RawMessage]()
		if err := pairs.UnmarshalJSON(raw); err != nil {
			return nil, err
		}
		obj := New()
		for p := pairs.Oldest(); p != nil; p = p.Next() {
			v, err := parseValue(p.Value)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", p.Key, err)
			}
			obj.Set(p.Key, v)
		}
		return obj, nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		arr := make([]any, 0, len(items))
		for _, item := range items {
			v, err := parseValue(item)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
