package blueprint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/bpjson/pkg/errors"
	bpio "github.com/matzehuels/bpjson/pkg/io"
	"github.com/matzehuels/bpjson/pkg/model"
)

func TestLoad(t *testing.T) {
	bp, err := Load(filepath.Join("testdata", "door.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if bp.Name() != "BP_Door" || bp.ParentClass() != "Actor" {
		t.Errorf("blueprint = %q parent %q", bp.Name(), bp.ParentClass())
	}
	if len(bp.Interfaces()) != 1 || len(bp.Components()) != 2 {
		t.Errorf("interfaces = %v, components = %v", bp.Interfaces(), bp.Components())
	}
	if got := len(bp.Graphs(model.EventGraph)); got != 1 {
		t.Errorf("event graphs = %d, want 1", got)
	}
	if got := len(bp.Graphs(model.FunctionGraph)); got != 1 {
		t.Errorf("function graphs = %d, want 1", got)
	}
	if got := bp.Graphs(model.MacroGraph); got != nil {
		t.Errorf("macro graphs = %v, want none", got)
	}

	g, ok := bp.Graph("EventGraph")
	if !ok {
		t.Fatal("EventGraph missing")
	}
	branch, ok := g.Node("Branch")
	if !ok {
		t.Fatal("Branch missing")
	}
	if branch.GUID() != "0A1B2C3D00000000000000000000BEEF" {
		t.Errorf("GUID = %q", branch.GUID())
	}
	if branch.Comment() != "Only open unlocked doors" {
		t.Errorf("Comment = %q", branch.Comment())
	}
	locked, _ := g.Node("Is Locked")
	if locked.Enabled() {
		t.Error("Is Locked should be disabled")
	}
	begin, _ := g.Node("Event BeginPlay")
	if x, y := begin.Position(); x != -200 || y != 0 {
		t.Errorf("Position = %d,%d", x, y)
	}
	if v, ok := begin.Detail(model.DetailMemberName); !ok || v != "ReceiveBeginPlay" {
		t.Errorf("Detail = %q, %v", v, ok)
	}
}

func TestLinksAreSymmetric(t *testing.T) {
	bp, err := Load(filepath.Join("testdata", "door.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	g, _ := bp.Graph("EventGraph")
	branch, _ := g.Node("Branch")

	exec, _ := branch.Pin("execute")
	links := exec.Links()
	if len(links) != 1 || links[0].Name() != "then" || links[0].Owner().Title() != "Event BeginPlay" {
		t.Errorf("execute links = %v", links)
	}
	cond, _ := branch.Pin("Condition")
	if links := cond.Links(); len(links) != 1 || links[0].Owner().Title() != "Is Locked" {
		t.Errorf("Condition links = %v", links)
	}
	if els, _ := branch.Pin("else"); len(els.Links()) != 0 {
		t.Errorf("else links = %v", els.Links())
	}
}

func TestDerivedGUIDs(t *testing.T) {
	a := DeriveGUID("BP", "EventGraph", "Print", 0)
	b := DeriveGUID("BP", "EventGraph", "Print", 0)
	c := DeriveGUID("BP", "EventGraph", "Print", 1)
	if a != b {
		t.Errorf("GUIDs are not stable: %s vs %s", a, b)
	}
	if a == c {
		t.Error("different nodes share a GUID")
	}
	if len(a) != 32 {
		t.Errorf("GUID %q should have 32 hex digits", a)
	}
	for _, r := range a {
		if !(r >= '0' && r <= '9' || r >= 'A' && r <= 'F') {
			t.Fatalf("GUID %q is not upper-case hex", a)
		}
	}
}

func TestParseJSON(t *testing.T) {
	doc := `{"name": "BP_J", "graphs": [{"name": "Main", "nodes": [
		{"title": "Knot", "kind": "K2Node_Knot", "pins": [
			{"name": "InputPin", "type": "wildcard", "direction": "Input"},
			{"name": "OutputPin", "type": "wildcard", "direction": "Output"}]}]}]}`
	bp, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if bp.ParentClass() != "None" {
		t.Errorf("ParentClass = %q, want None", bp.ParentClass())
	}
	g, _ := bp.Graph("Main")
	if g.Kind() != model.EventGraph {
		t.Errorf("default kind = %s", g.Kind())
	}
	if len(g.Nodes()) != 1 || len(g.Nodes()[0].Pins()) != 2 {
		t.Errorf("nodes = %v", g.Nodes())
	}
}

func TestBuildErrors(t *testing.T) {
	pin := func(name, dir string, links ...LinkSpec) PinSpec {
		return PinSpec{Name: name, Type: "exec", Direction: dir, Links: links}
	}
	tests := []struct {
		name string
		spec Spec
		code errors.Code
	}{
		{"no name", Spec{}, errors.ErrCodeInvalidInput},
		{"bad kind", Spec{Name: "B", Graphs: []GraphSpec{{Name: "G", Kind: "Ubergraph"}}}, errors.ErrCodeInvalidInput},
		{"duplicate graph", Spec{Name: "B", Graphs: []GraphSpec{{Name: "G"}, {Name: "G"}}}, errors.ErrCodeInvalidInput},
		{"node without kind", Spec{Name: "B", Graphs: []GraphSpec{{Name: "G", Nodes: []NodeSpec{{Title: "N"}}}}}, errors.ErrCodeInvalidInput},
		{"bad direction", Spec{Name: "B", Graphs: []GraphSpec{{Name: "G", Nodes: []NodeSpec{
			{Title: "N", Kind: "K", Pins: []PinSpec{pin("p", "sideways")}},
		}}}}, errors.ErrCodeInvalidInput},
		{"duplicate pin", Spec{Name: "B", Graphs: []GraphSpec{{Name: "G", Nodes: []NodeSpec{
			{Title: "N", Kind: "K", Pins: []PinSpec{pin("p", "in"), pin("p", "out")}},
		}}}}, errors.ErrCodeInvalidInput},
		{"unknown link node", Spec{Name: "B", Graphs: []GraphSpec{{Name: "G", Nodes: []NodeSpec{
			{Title: "N", Kind: "K", Pins: []PinSpec{pin("p", "out", LinkSpec{Node: "M", Pin: "q"})}},
		}}}}, errors.ErrCodeUnresolvedReference},
		{"unknown link pin", Spec{Name: "B", Graphs: []GraphSpec{{Name: "G", Nodes: []NodeSpec{
			{Title: "N", Kind: "K", Pins: []PinSpec{pin("p", "out", LinkSpec{Node: "N", Pin: "q"})}},
		}}}}, errors.ErrCodeUnresolvedReference},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Build(tt.spec); !errors.Is(err, tt.code) {
				t.Errorf("Build err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "none.yaml")); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing file err = %v", err)
	}
	if _, err := Parse([]byte("name: [")); !errors.Is(err, errors.ErrCodeParseFailure) {
		t.Errorf("bad yaml err = %v", err)
	}
}

func TestBuildNode(t *testing.T) {
	n, err := BuildNode(NodeSpec{Title: "Branch", Kind: "K2Node_IfThenElse", Pins: []PinSpec{
		{Name: "Condition", Type: "bool", Direction: "Input"},
	}})
	if err != nil {
		t.Fatal(err)
	}
	if n.GUID() == "" || !n.Enabled() || len(n.Pins()) != 1 {
		t.Errorf("node = %+v", n)
	}
	if n.Pins()[0].Owner() != model.Node(n) {
		t.Error("pin owner mismatch")
	}
	_, err = BuildNode(NodeSpec{Title: "X", Kind: "K", Pins: []PinSpec{
		{Name: "p", Direction: "in", Links: []LinkSpec{{Node: "Y", Pin: "q"}}},
	}})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("BuildNode with links err = %v", err)
	}
}

func TestLoadCompressed(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("testdata", "door.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "door.yaml.zst")
	if err := bpio.WriteFile(path, src); err != nil {
		t.Fatal(err)
	}
	bp, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if bp.Name() != "BP_Door" {
		t.Errorf("Name = %q", bp.Name())
	}
}
