// Package model defines the read-only view of a blueprint that the exporter
// consumes.
//
// A [Container] owns up to four groups of graphs; a [Graph] owns its nodes;
// a [Node] owns its pins. Links are exposed from each pin's side through
// [Pin.Links] and carry no ownership. None of the interfaces offer mutation:
// the exporter never edits the source graph.
package model

import "strings"

// Direction is the side of a node a pin sits on.
type Direction uint8

const (
	Input Direction = iota
	Output
)

// String returns "Input" or "Output".
func (d Direction) String() string {
	if d == Output {
		return "Output"
	}
	return "Input"
}

// ParseDirection maps "Input"/"in" and "Output"/"out" (any case) to a
// Direction.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(s) {
	case "input", "in":
		return Input, true
	case "output", "out":
		return Output, true
	}
	return Input, false
}

// GraphKind is the group a graph belongs to.
type GraphKind string

const (
	EventGraph    GraphKind = "EventGraph"
	FunctionGraph GraphKind = "FunctionGraph"
	MacroGraph    GraphKind = "MacroGraph"
	DelegateGraph GraphKind = "DelegateGraph"
)

// GraphKinds lists the graph groups in document order.
var GraphKinds = []GraphKind{EventGraph, FunctionGraph, MacroGraph, DelegateGraph}

// Valid reports whether k is one of the four graph kinds.
func (k GraphKind) Valid() bool {
	switch k {
	case EventGraph, FunctionGraph, MacroGraph, DelegateGraph:
		return true
	}
	return false
}

// Group returns the top-level document key for graphs of kind k, for
// example "EventGraphs".
func (k GraphKind) Group() string { return string(k) + "s" }

// Pin is a named, typed connection point on a node.
type Pin interface {
	Name() string
	// Type is the pin category, for example "exec", "bool" or "object".
	Type() string
	// SubType is the path of the pin's sub-category object (a struct or
	// class), or "".
	SubType() string
	// Default is the path of the pin's default object, or "".
	Default() string
	Direction() Direction
	IsArray() bool
	IsReference() bool
	// Owner returns the node the pin belongs to.
	Owner() Node
	// Links returns the pins this pin is connected to.
	Links() []Pin
}

// Node is one operation in a graph.
type Node interface {
	Title() string
	// Kind is the node class name, for example "K2Node_CallFunction".
	Kind() string
	GUID() string
	Position() (x, y int)
	Comment() string
	Enabled() bool
	AdvancedPins() bool
	Pins() []Pin
	// Detail returns a kind-specific source value, such as the referenced
	// function or variable. ok is false when the node carries no such value.
	Detail(key string) (value string, ok bool)
}

// Graph is an ordered list of nodes.
type Graph interface {
	Name() string
	Kind() GraphKind
	Nodes() []Node
}

// Container is a blueprint: graphs plus class-level metadata.
type Container interface {
	Name() string
	// ParentClass is the parent class name, or "None".
	ParentClass() string
	Interfaces() []string
	Components() []string
	// Graphs returns the graphs of one kind in declaration order.
	Graphs(kind GraphKind) []Graph
}

// Detail keys understood by the node projector.
const (
	DetailMemberParent = "MemberParent" // owning class of the referenced member
	DetailMemberName   = "MemberName"   // referenced function, variable or event
	DetailCustomName   = "CustomName"   // custom event name
	DetailTargetType   = "TargetType"   // cast target class
	DetailPureCast     = "PureCast"     // "true" for pure casts
	DetailTimelineName = "TimelineName"
	DetailMacroGraph   = "MacroGraph"
)

// PinByName returns the pin of n called name.
func PinByName(n Node, name string) (Pin, bool) {
	for _, p := range n.Pins() {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}
