// Package blueprint is an in-memory blueprint model loaded from YAML or
// JSON. It implements the read-only interfaces of package model.
//
// A document lists graphs, their nodes, and each node's pins:
//
//	name: BP_Door
//	parent_class: Actor
//	graphs:
//	  - name: EventGraph
//	    kind: EventGraph
//	    nodes:
//	      - title: Event BeginPlay
//	        kind: K2Node_Event
//	        details: {MemberParent: Actor, MemberName: ReceiveBeginPlay}
//	        pins:
//	          - name: then
//	            type: exec
//	            direction: Output
//	            links: [{node: Open, pin: execute}]
//
// Links name the far node by GUID or title and are resolved within the
// graph when the document is built.
package blueprint

import (
	"strings"

	"github.com/matzehuels/bpjson/pkg/model"
)

// Blueprint is a loaded blueprint.
type Blueprint struct {
	name        string
	parentClass string
	interfaces  []string
	components  []string
	graphs      map[model.GraphKind][]model.Graph
	all         []*Graph
}

var _ model.Container = (*Blueprint)(nil)

func (b *Blueprint) Name() string { return b.name }

// ParentClass returns the parent class, or "None" when the document has
// none.
func (b *Blueprint) ParentClass() string {
	if b.parentClass == "" {
		return "None"
	}
	return b.parentClass
}

func (b *Blueprint) Interfaces() []string { return b.interfaces }
func (b *Blueprint) Components() []string { return b.components }

func (b *Blueprint) Graphs(kind model.GraphKind) []model.Graph { return b.graphs[kind] }

// AllGraphs returns every graph in document order.
func (b *Blueprint) AllGraphs() []*Graph { return b.all }

// Graph returns the graph called name.
func (b *Blueprint) Graph(name string) (*Graph, bool) {
	for _, g := range b.all {
		if g.name == name {
			return g, true
		}
	}
	return nil, false
}

// Graph is one graph of a blueprint.
type Graph struct {
	name  string
	kind  model.GraphKind
	nodes []*Node
}

var _ model.Graph = (*Graph)(nil)

func (g *Graph) Name() string          { return g.name }
func (g *Graph) Kind() model.GraphKind { return g.kind }

func (g *Graph) Nodes() []model.Node {
	out := make([]model.Node, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = n
	}
	return out
}

// Node returns the node whose GUID or title is ref. GUIDs take precedence
// and match with or without dashes, in any case.
func (g *Graph) Node(ref string) (*Node, bool) {
	guid := normalizeGUID(ref)
	for _, n := range g.nodes {
		if n.guid == guid {
			return n, true
		}
	}
	for _, n := range g.nodes {
		if n.title == ref {
			return n, true
		}
	}
	return nil, false
}

// Node is one node of a graph.
type Node struct {
	title        string
	kind         string
	guid         string
	x, y         int
	comment      string
	enabled      bool
	advancedPins bool
	details      map[string]string
	pins         []*Pin
}

var _ model.Node = (*Node)(nil)

func (n *Node) Title() string        { return n.title }
func (n *Node) Kind() string         { return n.kind }
func (n *Node) GUID() string         { return n.guid }
func (n *Node) Position() (int, int) { return n.x, n.y }
func (n *Node) Comment() string      { return n.comment }
func (n *Node) Enabled() bool        { return n.enabled }
func (n *Node) AdvancedPins() bool   { return n.advancedPins }

func (n *Node) Pins() []model.Pin {
	out := make([]model.Pin, len(n.pins))
	for i, p := range n.pins {
		out[i] = p
	}
	return out
}

func (n *Node) Detail(key string) (string, bool) {
	v, ok := n.details[key]
	return v, ok
}

// Pin returns the pin called name.
func (n *Node) Pin(name string) (*Pin, bool) {
	for _, p := range n.pins {
		if p.name == name {
			return p, true
		}
	}
	return nil, false
}

// Pin is one pin of a node.
type Pin struct {
	owner       *Node
	name        string
	typ         string
	subType     string
	def         string
	dir         model.Direction
	isArray     bool
	isReference bool
	links       []*Pin
}

var _ model.Pin = (*Pin)(nil)

func (p *Pin) Name() string               { return p.name }
func (p *Pin) Type() string               { return p.typ }
func (p *Pin) SubType() string            { return p.subType }
func (p *Pin) Default() string            { return p.def }
func (p *Pin) Direction() model.Direction { return p.dir }
func (p *Pin) IsArray() bool              { return p.isArray }
func (p *Pin) IsReference() bool          { return p.isReference }
func (p *Pin) Owner() model.Node          { return p.owner }

func (p *Pin) Links() []model.Pin {
	out := make([]model.Pin, len(p.links))
	for i, l := range p.links {
		out[i] = l
	}
	return out
}

func normalizeGUID(s string) string {
	return strings.ToUpper(strings.ReplaceAll(s, "-", ""))
}
