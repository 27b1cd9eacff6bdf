package semantic

import "strings"

// Props is the attribute map of a serialized node, pin or blueprint.
type Props map[string]string

type category struct {
	substrings []string
	tag        Tag
}

// nodeCategories is checked in order; the first match is the only
// category a node gets.
var nodeCategories = []category{
	{[]string{"Event"}, EventNode},
	{[]string{"Function"}, FunctionNode},
	{[]string{"Variable"}, VariableNode},
	{[]string{"IfThenElse", "Switch", "Sequence"}, FlowControlNode},
	{[]string{"MakeArray", "MakeStruct", "BreakStruct"}, DataOperationNode},
	{[]string{"Timeline"}, TimelineNode},
	{[]string{"Spawn"}, SpawnNode},
	{[]string{"Cast"}, CastNode},
	{[]string{"Macro"}, MacroNode},
	{[]string{"CustomEvent"}, CustomEventNode},
}

// graphContents is checked per node type in order; each node type adds at
// most one tag.
var graphContents = []category{
	{[]string{"Variable"}, HasVariables},
	{[]string{"Function"}, HasFunctions},
	{[]string{"Macro"}, HasMacros},
	{[]string{"Delegate"}, HasDelegates},
	{[]string{"Timeline"}, HasTimelines},
}

func firstMatch(s string, cats []category) (Tag, bool) {
	for _, c := range cats {
		for _, sub := range c.substrings {
			if strings.Contains(s, sub) {
				return c.tag, true
			}
		}
	}
	return 0, false
}

// NodeTags tags a node from its kind tag and serialized attributes
// (IsPureFunc, NodeComment, AdvancedPinDisplay, EnabledState).
func NodeTags(nodeType string, props Props) Set {
	var s Set
	if t, ok := firstMatch(nodeType, nodeCategories); ok {
		s = s.With(t)
	}
	if props["IsPureFunc"] == "true" {
		s = s.With(PureFunction)
	}
	if props["NodeComment"] != "" {
		s = s.With(HasComment)
	}
	if props["AdvancedPinDisplay"] == "true" {
		s = s.With(HasAdvancedPins)
	}
	if enabled, ok := props["EnabledState"]; ok {
		if enabled == "true" {
			s = s.With(IsEnabled)
		} else {
			s = s.With(IsDisabled)
		}
	}
	return s
}

// PinTags tags a pin from its type tag and Direction attribute.
func PinTags(pinType string, props Props) Set {
	var s Set
	switch props["Direction"] {
	case "Input":
		s = s.With(InputPin)
	case "Output":
		s = s.With(OutputPin)
	}
	switch {
	case strings.Contains(pinType, "exec"):
		s = s.With(ExecutionPin)
	case strings.Contains(pinType, "delegate"):
		s = s.With(DelegatePin)
	default:
		s = s.With(DataPin)
	}
	return s
}

// GraphTags tags a graph from its kind and the kind tags of its nodes.
func GraphTags(graphType string, nodeTypes []string) Set {
	var s Set
	switch graphType {
	case "EventGraph":
		s = s.With(EventGraph)
	case "FunctionGraph":
		s = s.With(FunctionGraph)
	case "MacroGraph":
		s = s.With(MacroGraph)
	case "DelegateGraph":
		s = s.With(DelegateGraph)
	}
	for _, nt := range nodeTypes {
		if t, ok := firstMatch(nt, graphContents); ok {
			s = s.With(t)
		}
	}
	return s
}

// BlueprintTags tags a blueprint from its ParentClass, Interfaces and
// Components attributes and the kinds of the graphs it contains.
func BlueprintTags(props Props, graphTypes []string) Set {
	var s Set
	if parent, ok := props["ParentClass"]; ok && parent != "None" {
		s = s.With(HasParentClass)
	}
	if props["Interfaces"] != "" {
		s = s.With(HasInterfaces)
	}
	if props["Components"] != "" {
		s = s.With(HasComponents)
	}
	for _, gt := range graphTypes {
		switch gt {
		case "EventGraph":
			s = s.With(HasConstructionScript)
		case "FunctionGraph":
			s = s.With(HasFunctions)
		case "MacroGraph":
			s = s.With(HasMacros)
		case "DelegateGraph":
			s = s.With(HasDelegates)
		}
	}
	return s
}

// ConnectionTags classifies a link by the type tags of its two pins.
func ConnectionTags(fromType, toType string) Set {
	switch {
	case strings.Contains(fromType, "exec") || strings.Contains(toType, "exec"):
		return NewSet(ExecutionFlow)
	case strings.Contains(fromType, "delegate") || strings.Contains(toType, "delegate"):
		return NewSet(DelegateBinding)
	}
	return NewSet(DataFlow)
}
