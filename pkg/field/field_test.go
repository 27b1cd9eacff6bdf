package field

import (
	"math"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/bpjson/pkg/errors"
)

type weapon struct {
	Name   string
	Damage float64
}

type character struct {
	Name     string
	Score    int
	Level    uint8
	Speed    float32
	Alive    bool
	Weapon   *weapon
	Tags     []string
	Renamed  string `bp:"DisplayName"`
	Hidden   string `bp:"-"`
	internal int
}

func TestReflectFields(t *testing.T) {
	got := Reflect{}.Fields(&character{})
	want := []Field{
		{"Name", KindString},
		{"Score", KindInt},
		{"Level", KindInt},
		{"Speed", KindFloat},
		{"Alive", KindBool},
		{"Weapon", KindObject},
		{"Tags", KindUnsupported},
		{"DisplayName", KindString},
	}
	if len(got) != len(want) {
		t.Fatalf("Fields = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Fields[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestReflectFieldsNonStruct(t *testing.T) {
	if got := (Reflect{}).Fields(nil); got != nil {
		t.Errorf("Fields(nil) = %v, want nil", got)
	}
	var c *character
	if got := (Reflect{}).Fields(c); got != nil {
		t.Errorf("Fields(typed nil) = %v, want nil", got)
	}
	if got := (Reflect{}).Fields(42); got != nil {
		t.Errorf("Fields(42) = %v, want nil", got)
	}
}

func TestReflectGet(t *testing.T) {
	w := &weapon{Name: "Sword"}
	c := &character{Name: "Ada", Score: 42, Level: 3, Speed: 1.5, Alive: true, Weapon: w, Renamed: "A"}
	r := Reflect{}

	tests := []struct {
		field string
		check func(Value) bool
	}{
		{"Name", func(v Value) bool { return v.Kind() == KindString && v.Str() == "Ada" }},
		{"Score", func(v Value) bool { return v.Kind() == KindInt && v.Int() == 42 }},
		{"Level", func(v Value) bool { return v.Kind() == KindInt && v.Int() == 3 }},
		{"Speed", func(v Value) bool { return v.Kind() == KindFloat && v.Float() == 1.5 }},
		{"Alive", func(v Value) bool { return v.Kind() == KindBool && v.Bool() }},
		{"Weapon", func(v Value) bool { return v.Kind() == KindObject && v.Ref() == any(w) }},
		{"DisplayName", func(v Value) bool { return v.Str() == "A" }},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			v, err := r.Get(c, tt.field)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if !tt.check(v) {
				t.Errorf("Get(%s) = %#v", tt.field, v)
			}
		})
	}

	if _, err := r.Get(c, "Hidden"); !errors.Is(err, errors.ErrCodeFieldNotFound) {
		t.Errorf("Get(Hidden) err = %v, want FIELD_NOT_FOUND", err)
	}
}

func TestReflectGetNullObject(t *testing.T) {
	v, err := Reflect{}.Get(&character{}, "Weapon")
	if err != nil {
		t.Fatal(err)
	}
	if !v.IsNull() {
		t.Errorf("Weapon = %#v, want null reference", v)
	}
}

func TestReflectGetUnsignedOverflow(t *testing.T) {
	type counter struct{ N uint64 }
	if _, err := (Reflect{}).Get(&counter{N: math.MaxUint64}, "N"); !errors.Is(err, errors.ErrCodeKindMismatch) {
		t.Errorf("Get(MaxUint64) err = %v, want KIND_MISMATCH", err)
	}
	v, err := Reflect{}.Get(&counter{N: math.MaxInt64}, "N")
	if err != nil {
		t.Fatal(err)
	}
	if v.Int() != math.MaxInt64 {
		t.Errorf("Get(MaxInt64) = %d", v.Int())
	}
}

func TestReflectSet(t *testing.T) {
	c := &character{}
	r := Reflect{}

	if err := r.Set(c, "Score", Int(7)); err != nil {
		t.Fatalf("Set Score: %v", err)
	}
	if err := r.Set(c, "Speed", Float(2.5)); err != nil {
		t.Fatalf("Set Speed: %v", err)
	}
	if err := r.Set(c, "DisplayName", String("B")); err != nil {
		t.Fatalf("Set DisplayName: %v", err)
	}
	w := &weapon{Name: "Axe"}
	if err := r.Set(c, "Weapon", Object(w)); err != nil {
		t.Fatalf("Set Weapon: %v", err)
	}
	if c.Score != 7 || c.Speed != 2.5 || c.Renamed != "B" || c.Weapon != w {
		t.Errorf("after Set: %+v", c)
	}
}

func TestReflectSetErrors(t *testing.T) {
	r := Reflect{}
	tests := []struct {
		name  string
		obj   any
		field string
		value Value
		code  errors.Code
	}{
		{"kind mismatch", &character{}, "Score", String("x"), errors.ErrCodeKindMismatch},
		{"unsupported", &character{}, "Tags", String("x"), errors.ErrCodeKindMismatch},
		{"unknown", &character{}, "Mana", Int(1), errors.ErrCodeFieldNotFound},
		{"overflow", &character{}, "Level", Int(300), errors.ErrCodeKindMismatch},
		{"negative uint", &character{}, "Level", Int(-1), errors.ErrCodeKindMismatch},
		{"wrong ref type", &character{}, "Weapon", Object(&character{}), errors.ErrCodeKindMismatch},
		{"struct value", character{}, "Score", Int(1), errors.ErrCodeInvalidInput},
		{"nil", nil, "Score", Int(1), errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Set(tt.obj, tt.field, tt.value)
			if !errors.Is(err, tt.code) {
				t.Errorf("Set err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	f, ok := Lookup(Reflect{}, &character{}, "Alive")
	if !ok || f.Kind != KindBool {
		t.Errorf("Lookup(Alive) = %v, %v", f, ok)
	}
	if _, ok := Lookup(Reflect{}, &character{}, "Nope"); ok {
		t.Error("Lookup(Nope) should fail")
	}
}

func TestDynamic(t *testing.T) {
	d := NewDynamic().
		Define("Name", String("Ada")).
		Define("Score", Int(1)).
		Define("Target", Object(nil))
	acc := DynamicAccessor{}

	fields := acc.Fields(d)
	if len(fields) != 3 || fields[2].Kind != KindObject {
		t.Fatalf("Fields = %v", fields)
	}
	if err := acc.Set(d, "Score", Int(42)); err != nil {
		t.Fatal(err)
	}
	if v, _ := acc.Get(d, "Score"); v.Int() != 42 {
		t.Errorf("Score = %d, want 42", v.Int())
	}
	if err := acc.Set(d, "Score", String("42")); !errors.Is(err, errors.ErrCodeKindMismatch) {
		t.Errorf("Set string into int: %v", err)
	}
	if err := acc.Set(d, "Target", Object(&weapon{})); !errors.Is(err, errors.ErrCodeKindMismatch) {
		t.Errorf("Set foreign ref: %v", err)
	}
	if err := acc.Set(d, "Target", Object(NewDynamic())); err != nil {
		t.Errorf("Set dynamic ref: %v", err)
	}
	if _, err := acc.Get(d, "Missing"); !errors.Is(err, errors.ErrCodeFieldNotFound) {
		t.Errorf("Get(Missing): %v", err)
	}
}

func TestParseDynamicYAML(t *testing.T) {
	src := `
Name: Ada
Score: 42
Speed: 1.5
Alive: true
Weapon:
  Name: Sword
  Damage: 12.5
Spare: null
Tags: [a, b]
`
	d, err := ParseDynamicYAML([]byte(src))
	if err != nil {
		t.Fatalf("ParseDynamicYAML: %v", err)
	}
	want := []Field{
		{"Name", KindString},
		{"Score", KindInt},
		{"Speed", KindFloat},
		{"Alive", KindBool},
		{"Weapon", KindObject},
		{"Spare", KindObject},
		{"Tags", KindUnsupported},
	}
	got := DynamicAccessor{}.Fields(d)
	if len(got) != len(want) {
		t.Fatalf("Fields = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Fields[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	w, _ := d.Value("Weapon")
	inner, ok := w.Ref().(*Dynamic)
	if !ok {
		t.Fatalf("Weapon ref = %T", w.Ref())
	}
	if v, _ := inner.Value("Damage"); v.Float() != 12.5 {
		t.Errorf("Weapon.Damage = %v", v.Float())
	}
}

func TestParseDynamicYAMLErrors(t *testing.T) {
	if _, err := ParseDynamicYAML([]byte("- a\n- b\n")); !errors.Is(err, errors.ErrCodeParseFailure) {
		t.Errorf("sequence root: %v", err)
	}
	if _, err := ParseDynamicYAML([]byte("a: [")); !errors.Is(err, errors.ErrCodeParseFailure) {
		t.Errorf("broken yaml: %v", err)
	}
	d, err := ParseDynamicYAML(nil)
	if err != nil || len(DynamicAccessor{}.Fields(d)) != 0 {
		t.Errorf("empty input = %v, %v", d, err)
	}
}

func TestDynamicYAMLRoundTrip(t *testing.T) {
	src := "Name: Ada\nScore: 42\nWeapon:\n    Name: Sword\nSpare: null\nTags:\n    - a\n"
	d, err := ParseDynamicYAML([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	out, err := yaml.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, want := range []string{"Name: Ada", "Score: 42", "Weapon:", "Sword", "Spare: null", "- a"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(string(out), "Name: Ada") > strings.Index(string(out), "Score") {
		t.Errorf("field order not preserved:\n%s", out)
	}
}
