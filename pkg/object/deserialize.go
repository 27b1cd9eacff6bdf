package object

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/matzehuels/bpjson/pkg/errors"
	"github.com/matzehuels/bpjson/pkg/field"
	"github.com/matzehuels/bpjson/pkg/jsonobj"
)

// Deserialize writes the properties of the JSON object in text into the
// same-named fields of obj. It fails only when obj is nil, text is empty or
// text is not a JSON object; in that case nothing is written.
func (s *Serializer) Deserialize(text string, obj any) error {
	if field.IsNil(obj) || text == "" {
		return errors.New(errors.ErrCodeInvalidInput, "nil object or empty document")
	}
	doc, err := jsonobj.Parse([]byte(text))
	if err != nil {
		return errors.Wrap(errors.ErrCodeParseFailure, err, "parse object document")
	}
	w := walk{s: s, path: make(map[any]bool)}
	w.apply(doc, obj, 0)
	return nil
}

// SetFieldFromJSON reads the one-entry JSON object in text and writes its
// value into the field called name. The document's key must equal name.
// Unlike [Serializer.Deserialize], a value that cannot be written is an
// error: an object field with no target, a malformed embedded document or
// a value of the wrong kind.
func (s *Serializer) SetFieldFromJSON(obj any, name, text string) error {
	if field.IsNil(obj) || name == "" || text == "" {
		return errors.New(errors.ErrCodeInvalidInput, "nil object, empty field name or empty document")
	}
	doc, err := jsonobj.Parse([]byte(text))
	if err != nil {
		return errors.Wrap(errors.ErrCodeParseFailure, err, "parse field document")
	}
	raw, ok := doc.Get(name)
	if !ok {
		return errors.New(errors.ErrCodeFieldNotFound, "document has no key %q", name)
	}
	f, ok := field.Lookup(s.Accessor, obj, name)
	if !ok {
		return errors.New(errors.ErrCodeFieldNotFound, "no field %q", name)
	}
	w := walk{s: s, path: make(map[any]bool)}
	if key, ok := handleKey(obj); ok {
		w.path[key] = true
	}
	return w.applyField(obj, f, raw, 0)
}

func (w *walk) apply(doc *jsonobj.Object, obj any, depth int) {
	key, tracked := handleKey(obj)
	if tracked {
		w.path[key] = true
		defer delete(w.path, key)
	}
	for _, f := range w.s.Accessor.Fields(obj) {
		raw, ok := doc.Get(f.Name)
		if !ok {
			continue
		}
		if err := w.applyField(obj, f, raw, depth); err != nil {
			w.s.Logger.Debug("skipping field", "field", f.Name, "error", err)
		}
	}
}

// applyField writes raw into the field f of obj. An error means nothing
// was written for f; nested documents apply their own fields best-effort.
func (w *walk) applyField(obj any, f field.Field, raw any, depth int) error {
	switch f.Kind {
	case field.KindUnsupported:
		return errors.New(errors.ErrCodeKindMismatch, "field %q has an unsupported type", f.Name)
	case field.KindObject:
		cur, err := w.s.Accessor.Get(obj, f.Name)
		if err != nil {
			return err
		}
		if cur.IsNull() {
			return errors.New(errors.ErrCodeInvalidInput, "field %q has no target object", f.Name)
		}
		text, ok := raw.(string)
		if !ok {
			return errors.New(errors.ErrCodeKindMismatch, "field %q: value is not an embedded document", f.Name)
		}
		if text == "" {
			return errors.New(errors.ErrCodeInvalidInput, "field %q: empty embedded document", f.Name)
		}
		if key, ok := handleKey(cur.Ref()); ok && w.path[key] {
			w.s.Logger.Warn("skipping cyclic reference", "field", f.Name)
			return errors.New(errors.ErrCodeInvalidInput, "field %q: cyclic reference", f.Name)
		}
		if depth+1 > w.s.MaxDepth {
			w.s.Logger.Warn("skipping reference beyond max depth", "field", f.Name, "max_depth", w.s.MaxDepth)
			return errors.New(errors.ErrCodeInvalidInput, "field %q: deeper than %d levels", f.Name, w.s.MaxDepth)
		}
		nested, err := jsonobj.Parse([]byte(text))
		if err != nil {
			return errors.Wrap(errors.ErrCodeParseFailure, err, "field %q: embedded document", f.Name)
		}
		w.apply(nested, cur.Ref(), depth+1)
		return nil
	}
	v, ok := coerce(f.Kind, raw)
	if !ok {
		return errors.New(errors.ErrCodeKindMismatch, "field %q: value does not fit %s", f.Name, f.Kind)
	}
	return w.s.Accessor.Set(obj, f.Name, v)
}

// coerce converts a parsed JSON value to a field value of kind k.
func coerce(k field.Kind, raw any) (field.Value, bool) {
	switch k {
	case field.KindString:
		switch x := raw.(type) {
		case string:
			return field.String(x), true
		case json.Number:
			return field.String(x.String()), true
		case bool:
			return field.String(strconv.FormatBool(x)), true
		}
	case field.KindInt:
		switch x := raw.(type) {
		case json.Number:
			return intFromText(x.String())
		case string:
			return intFromText(x)
		}
	case field.KindFloat:
		var text string
		switch x := raw.(type) {
		case json.Number:
			text = x.String()
		case string:
			text = x
		default:
			return field.Value{}, false
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return field.Value{}, false
		}
		return field.Float(f), true
	case field.KindBool:
		switch x := raw.(type) {
		case bool:
			return field.Bool(x), true
		case string:
			switch x {
			case "true":
				return field.Bool(true), true
			case "false":
				return field.Bool(false), true
			}
		}
	}
	return field.Value{}, false
}

// intFromText parses an integer, truncating fractional values.
func intFromText(text string) (field.Value, bool) {
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return field.Int(i), true
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return field.Value{}, false
	}
	f = math.Trunc(f)
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return field.Value{}, false
	}
	return field.Int(int64(f)), true
}
