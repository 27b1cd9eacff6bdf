package blueprint

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/bpjson/pkg/errors"
	bpio "github.com/matzehuels/bpjson/pkg/io"
	"github.com/matzehuels/bpjson/pkg/model"
)

// guidNamespace seeds derived node GUIDs.
var guidNamespace = uuid.MustParse("6f1c7e0a-3b9d-5d2e-9a41-0c8e5b7f2d13")

// Load reads a blueprint document from path. JSON documents are read by the
// same YAML decoder, and ".zst" files are decompressed first.
func Load(path string) (*Blueprint, error) {
	data, err := bpio.ReadFile(path)
	if err != nil {
		return nil, err
	}
	bp, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "blueprint %s", filepath.Base(path))
	}
	return bp, nil
}

// Parse decodes a YAML or JSON blueprint document and builds it.
func Parse(data []byte) (*Blueprint, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParseFailure, err, "parse blueprint")
	}
	return Build(spec)
}

// Build validates spec, derives missing GUIDs and resolves links.
func Build(spec Spec) (*Blueprint, error) {
	if spec.Name == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "blueprint name is required")
	}
	bp := &Blueprint{
		name:        spec.Name,
		parentClass: spec.ParentClass,
		interfaces:  spec.Interfaces,
		components:  spec.Components,
		graphs:      make(map[model.GraphKind][]model.Graph),
	}
	seen := make(map[string]bool)
	for _, gs := range spec.Graphs {
		if gs.Name == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "graph name is required")
		}
		if seen[gs.Name] {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate graph %q", gs.Name)
		}
		seen[gs.Name] = true

		g, err := buildGraph(spec.Name, gs)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "graph %q", gs.Name)
		}
		bp.graphs[g.kind] = append(bp.graphs[g.kind], g)
		bp.all = append(bp.all, g)
	}
	return bp, nil
}

func buildGraph(owner string, gs GraphSpec) (*Graph, error) {
	kind := model.EventGraph
	if gs.Kind != "" {
		kind = model.GraphKind(gs.Kind)
		if !kind.Valid() {
			return nil, errors.New(errors.ErrCodeInvalidInput, "unknown graph kind %q", gs.Kind)
		}
	}
	g := &Graph{name: gs.Name, kind: kind}
	guids := make(map[string]bool)
	for i, ns := range gs.Nodes {
		n, err := buildNode(ns)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "node %d", i)
		}
		if n.guid == "" {
			n.guid = DeriveGUID(owner, gs.Name, ns.Title, i)
		}
		if guids[n.guid] {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate node guid %s", n.guid)
		}
		guids[n.guid] = true
		g.nodes = append(g.nodes, n)
	}
	for i, ns := range gs.Nodes {
		for _, ps := range ns.Pins {
			from, _ := g.nodes[i].Pin(ps.Name)
			for _, ls := range ps.Links {
				to, err := g.resolve(ls)
				if err != nil {
					return nil, errors.Wrap(errors.GetCode(err), err, "node %q pin %q", ns.Title, ps.Name)
				}
				connect(from, to)
			}
		}
	}
	return g, nil
}

func (g *Graph) resolve(ls LinkSpec) (*Pin, error) {
	n, ok := g.Node(ls.Node)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnresolvedReference, "link to unknown node %q", ls.Node)
	}
	p, ok := n.Pin(ls.Pin)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnresolvedReference, "link to unknown pin %q on %q", ls.Pin, ls.Node)
	}
	return p, nil
}

// connect links a and b in both directions, once.
func connect(a, b *Pin) {
	for _, l := range a.links {
		if l == b {
			return
		}
	}
	a.links = append(a.links, b)
	if a != b {
		b.links = append(b.links, a)
	}
}

// BuildNode builds a single node outside any graph. Links are not allowed
// because there is nothing to resolve them against.
func BuildNode(ns NodeSpec) (*Node, error) {
	for _, ps := range ns.Pins {
		if len(ps.Links) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "pin %q: links need a graph", ps.Name)
		}
	}
	n, err := buildNode(ns)
	if err != nil {
		return nil, err
	}
	if n.guid == "" {
		n.guid = DeriveGUID("", "", ns.Title, 0)
	}
	return n, nil
}

func buildNode(ns NodeSpec) (*Node, error) {
	if ns.Kind == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "node %q has no kind", ns.Title)
	}
	n := &Node{
		title:        ns.Title,
		kind:         ns.Kind,
		guid:         normalizeGUID(ns.GUID),
		x:            ns.X,
		y:            ns.Y,
		comment:      ns.Comment,
		enabled:      ns.Enabled == nil || *ns.Enabled,
		advancedPins: ns.AdvancedPins,
		details:      ns.Details,
	}
	for _, ps := range ns.Pins {
		if ps.Name == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "node %q has a pin without a name", ns.Title)
		}
		if _, dup := n.Pin(ps.Name); dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "node %q has two pins named %q", ns.Title, ps.Name)
		}
		dir, ok := model.ParseDirection(ps.Direction)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "pin %q: direction %q is neither Input nor Output", ps.Name, ps.Direction)
		}
		n.pins = append(n.pins, &Pin{
			owner:       n,
			name:        ps.Name,
			typ:         ps.Type,
			subType:     ps.SubType,
			def:         ps.Default,
			dir:         dir,
			isArray:     ps.IsArray,
			isReference: ps.IsReference,
		})
	}
	return n, nil
}

// DeriveGUID returns a stable GUID for a node without one, formatted the
// way the engine prints GUIDs: 32 upper-case hex digits.
func DeriveGUID(blueprint, graph, title string, index int) string {
	name := strings.Join([]string{blueprint, graph, title, strconv.Itoa(index)}, "/")
	u := uuid.NewSHA1(guidNamespace, []byte(name))
	return normalizeGUID(u.String())
}
