// Package semantic derives descriptive tags from exported nodes, pins,
// graphs and blueprints.
//
// Tags are computed from the serialized form (type strings and attribute
// maps), never stored, and used to search and filter exported documents.
package semantic

import (
	"encoding/json"
	"fmt"
	"math/bits"
)

// Tag is one semantic label.
type Tag uint8

const (
	// Graph kinds.
	EventGraph Tag = iota
	FunctionGraph
	MacroGraph
	DelegateGraph

	// Node categories.
	EventNode
	FunctionNode
	VariableNode
	FlowControlNode
	DataOperationNode
	TimelineNode
	SpawnNode
	CastNode
	MacroNode
	CustomEventNode

	// Pin roles.
	InputPin
	OutputPin
	ExecutionPin
	DataPin
	DelegatePin

	// Node properties.
	PureFunction
	LatentFunction
	HasComment
	HasAdvancedPins
	IsEnabled
	IsDisabled

	// Connections.
	ExecutionFlow
	DataFlow
	DelegateBinding

	// Graph contents.
	HasVariables
	HasFunctions
	HasMacros
	HasDelegates
	HasTimelines

	// Blueprint properties.
	HasParentClass
	HasInterfaces
	HasComponents
	HasConstructionScript
	HasUserDefinedStructs
	HasUserDefinedEnums

	numTags
)

var tagNames = [numTags]string{
	EventGraph:            "EventGraph",
	FunctionGraph:         "FunctionGraph",
	MacroGraph:            "MacroGraph",
	DelegateGraph:         "DelegateGraph",
	EventNode:             "EventNode",
	FunctionNode:          "FunctionNode",
	VariableNode:          "VariableNode",
	FlowControlNode:       "FlowControlNode",
	DataOperationNode:     "DataOperationNode",
	TimelineNode:          "TimelineNode",
	SpawnNode:             "SpawnNode",
	CastNode:              "CastNode",
	MacroNode:             "MacroNode",
	CustomEventNode:       "CustomEventNode",
	InputPin:              "InputPin",
	OutputPin:             "OutputPin",
	ExecutionPin:          "ExecutionPin",
	DataPin:               "DataPin",
	DelegatePin:           "DelegatePin",
	PureFunction:          "PureFunction",
	LatentFunction:        "LatentFunction",
	HasComment:            "HasComment",
	HasAdvancedPins:       "HasAdvancedPins",
	IsEnabled:             "IsEnabled",
	IsDisabled:            "IsDisabled",
	ExecutionFlow:         "ExecutionFlow",
	DataFlow:              "DataFlow",
	DelegateBinding:       "DelegateBinding",
	HasVariables:          "HasVariables",
	HasFunctions:          "HasFunctions",
	HasMacros:             "HasMacros",
	HasDelegates:          "HasDelegates",
	HasTimelines:          "HasTimelines",
	HasParentClass:        "HasParentClass",
	HasInterfaces:         "HasInterfaces",
	HasComponents:         "HasComponents",
	HasConstructionScript: "HasConstructionScript",
	HasUserDefinedStructs: "HasUserDefinedStructs",
	HasUserDefinedEnums:   "HasUserDefinedEnums",
}

// String returns the tag name, for example "FlowControlNode".
func (t Tag) String() string {
	if t < numTags {
		return tagNames[t]
	}
	return fmt.Sprintf("Tag(%d)", t)
}

// MarshalText writes the tag name.
func (t Tag) MarshalText() ([]byte, error) {
	if t >= numTags {
		return nil, fmt.Errorf("semantic: unknown tag %d", t)
	}
	return []byte(tagNames[t]), nil
}

// UnmarshalText parses a tag name.
func (t *Tag) UnmarshalText(b []byte) error {
	tag, ok := ParseTag(string(b))
	if !ok {
		return fmt.Errorf("semantic: unknown tag %q", b)
	}
	*t = tag
	return nil
}

// ParseTag looks up a tag by name.
func ParseTag(name string) (Tag, bool) {
	for i, n := range tagNames {
		if n == name {
			return Tag(i), true
		}
	}
	return 0, false
}

// All returns every tag in declaration order.
func All() []Tag {
	out := make([]Tag, numTags)
	for i := range out {
		out[i] = Tag(i)
	}
	return out
}

// Set is an unordered set of tags.
type Set uint64

// NewSet returns a set holding tags.
func NewSet(tags ...Tag) Set {
	var s Set
	for _, t := range tags {
		s = s.With(t)
	}
	return s
}

// With returns s plus t.
func (s Set) With(t Tag) Set { return s | 1<<t }

// Has reports whether t is in s.
func (s Set) Has(t Tag) bool { return s&(1<<t) != 0 }

// Union returns the tags in s or o.
func (s Set) Union(o Set) Set { return s | o }

// Len returns the number of tags.
func (s Set) Len() int { return bits.OnesCount64(uint64(s)) }

// Tags lists the tags in declaration order.
func (s Set) Tags() []Tag {
	out := make([]Tag, 0, s.Len())
	for t := Tag(0); t < numTags; t++ {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

// Names lists the tag names in declaration order.
func (s Set) Names() []string {
	tags := s.Tags()
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.String()
	}
	return out
}

// MarshalJSON writes the set as an array of names.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Names())
}

// UnmarshalJSON reads an array of names.
func (s *Set) UnmarshalJSON(b []byte) error {
	var tags []Tag
	if err := json.Unmarshal(b, &tags); err != nil {
		return err
	}
	*s = NewSet(tags...)
	return nil
}
