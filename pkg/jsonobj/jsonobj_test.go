package jsonobj

import (
	"encoding/json"
	"testing"
)

func TestObjectOrder(t *testing.T) {
	o := New().
		Set("NodeName", "Branch").
		Set("NodeType", "K2Node_IfThenElse").
		Set("NodeX", 128)

	got, err := Encode(o, "")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := `{"NodeName":"Branch","NodeType":"K2Node_IfThenElse","NodeX":128}`
	if string(got) != want {
		t.Errorf("Encode = %s, want %s", got, want)
	}
}

func TestObjectSetKeepsPosition(t *testing.T) {
	o := New().Set("a", 1).Set("b", 2).Set("a", 3)

	if keys := o.Keys(); len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("Keys = %v, want [a b]", keys)
	}
	if v, _ := o.Get("a"); v != 3 {
		t.Errorf("a = %v, want 3", v)
	}
}

func TestObjectSetIfAbsent(t *testing.T) {
	o := New()
	if !o.SetIfAbsent("ThenPin", "Then") {
		t.Fatal("first SetIfAbsent should store")
	}
	if o.SetIfAbsent("ThenPin", "Then2") {
		t.Fatal("second SetIfAbsent should not store")
	}
	if s, _ := o.String("ThenPin"); s != "Then" {
		t.Errorf("ThenPin = %q, want Then", s)
	}
}

func TestObjectDelete(t *testing.T) {
	o := New().Set("a", 1).Set("b", 2).Set("c", 3)
	o.Delete("b")
	o.Delete("missing")

	got, _ := Encode(o, "")
	if string(got) != `{"a":1,"c":3}` {
		t.Errorf("Encode = %s", got)
	}
	if o.Len() != 2 {
		t.Errorf("Len = %d, want 2", o.Len())
	}
}

func TestEncodeNoHTMLEscape(t *testing.T) {
	got, err := Encode(New().Set("NodeComment", "a < b && c"), "")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"NodeComment":"a < b && c"}` {
		t.Errorf("Encode = %s", got)
	}
}

func TestEncodeNested(t *testing.T) {
	inner := New().Set("PinName", "Then")
	o := New().Set("Pins", []*Object{inner}).Set("Empty", []*Object{})

	got, err := Encode(o, "")
	if err != nil {
		t.Fatal(err)
	}
	want := `{"Pins":[{"PinName":"Then"}],"Empty":[]}`
	if string(got) != want {
		t.Errorf("Encode = %s, want %s", got, want)
	}
}

func TestEncodeIndent(t *testing.T) {
	got, err := Encode(New().Set("a", 1), "  ")
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"a\": 1\n}"
	if string(got) != want {
		t.Errorf("Encode = %q, want %q", got, want)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKeys []string
		wantErr  bool
	}{
		{"ordered", `{"z":1,"a":"x","m":true}`, []string{"z", "a", "m"}, false},
		{"nested", `{"outer":{"inner":[1,2,{"k":null}]}}`, []string{"outer"}, false},
		{"empty", `{}`, nil, false},
		{"array root", `[1,2]`, nil, true},
		{"invalid", `{invalid json}`, nil, true},
		{"trailing", `{"a":1} {"b":2}`, nil, true},
		{"blank", ``, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := Parse([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			keys := obj.Keys()
			if len(keys) != len(tt.wantKeys) {
				t.Fatalf("Keys = %v, want %v", keys, tt.wantKeys)
			}
			for i := range keys {
				if keys[i] != tt.wantKeys[i] {
					t.Errorf("Keys[%d] = %q, want %q", i, keys[i], tt.wantKeys[i])
				}
			}
		})
	}
}

func TestParseNumbers(t *testing.T) {
	obj, err := Parse([]byte(`{"Score":9007199254740993,"Speed":1.5}`))
	if err != nil {
		t.Fatal(err)
	}
	v, _ := obj.Get("Score")
	n, ok := v.(json.Number)
	if !ok {
		t.Fatalf("Score type = %T, want json.Number", v)
	}
	if n.String() != "9007199254740993" {
		t.Errorf("Score = %s", n)
	}
	inner, _ := Parse([]byte(`{"o":{"k":"v"}}`))
	o, _ := inner.Get("o")
	if _, ok := o.(*Object); !ok {
		t.Errorf("nested type = %T, want *Object", o)
	}
}

func TestParseRoundTrip(t *testing.T) {
	src := `{"b":1,"a":{"y":[true,false],"x":"s"},"c":null}`
	obj, err := Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	out, err := Encode(obj, "")
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != src {
		t.Errorf("round trip = %s, want %s", out, src)
	}
}

func TestParseDuplicateAndEscapedKeys(t *testing.T) {
	obj, err := Parse([]byte(`{"a":1,"b\"q":2,"a":3}`))
	if err != nil {
		t.Fatal(err)
	}
	keys := obj.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != `b"q` {
		t.Fatalf("Keys = %q", keys)
	}
	if v, _ := obj.Get("a"); v != json.Number("3") {
		t.Errorf("a = %v, want 3", v)
	}
}

func TestZeroValueObject(t *testing.T) {
	var o Object
	if o.Len() != 0 || o.Has("x") {
		t.Fatal("zero value should be empty")
	}
	o.Delete("x")
	o.Set("x", "1").Set("y", 2)
	o.Delete("x")
	o.Set("x", 3)
	got, err := Encode(&o, "")
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"y":2,"x":3}`; string(got) != want {
		t.Errorf("Encode = %s, want %s", got, want)
	}
}
