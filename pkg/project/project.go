// Package project extracts kind-specific attributes from graph nodes.
//
// Each recognized node kind has one rule: a pure function of the node and
// the type registry that writes string attributes into an ordered map. The
// rule table is fixed at package initialization; a kind without a rule
// projects to an empty map. References the registry cannot resolve leave
// their attribute out rather than writing a placeholder.
package project

import (
	"sort"
	"strconv"
	"strings"

	"github.com/matzehuels/bpjson/pkg/jsonobj"
	"github.com/matzehuels/bpjson/pkg/model"
	"github.com/matzehuels/bpjson/pkg/registry"
)

// Rule writes the attributes of one node kind into out.
type Rule func(n model.Node, reg *registry.Registry, out *jsonobj.Object)

// Node kind tags with a projection rule.
const (
	KindCallFunction        = "K2Node_CallFunction"
	KindBinaryOperator      = "K2Node_CommutativeAssociativeBinaryOperator"
	KindVariableGet         = "K2Node_VariableGet"
	KindVariableSet         = "K2Node_VariableSet"
	KindEvent               = "K2Node_Event"
	KindCustomEvent         = "K2Node_CustomEvent"
	KindIfThenElse          = "K2Node_IfThenElse"
	KindSwitchInteger       = "K2Node_SwitchInteger"
	KindSwitchString        = "K2Node_SwitchString"
	KindSwitchName          = "K2Node_SwitchName"
	KindSwitchEnum          = "K2Node_SwitchEnum"
	KindSelect              = "K2Node_Select"
	KindDynamicCast         = "K2Node_DynamicCast"
	KindClassDynamicCast    = "K2Node_ClassDynamicCast"
	KindSpawnActorFromClass = "K2Node_SpawnActorFromClass"
	KindSpawnActor          = "K2Node_SpawnActor"
	KindTimeline            = "K2Node_Timeline"
	KindMacroInstance       = "K2Node_MacroInstance"
	KindMakeArray           = "K2Node_MakeArray"
	KindMakeStruct          = "K2Node_MakeStruct"
	KindBreakStruct         = "K2Node_BreakStruct"
	KindCallParentFunction  = "K2Node_CallParentFunction"
	KindKnot                = "K2Node_Knot"
	KindExecutionSequence   = "K2Node_ExecutionSequence"
)

var rules = map[string]Rule{
	KindCallFunction:        callFunction,
	KindBinaryOperator:      callFunction,
	KindVariableGet:         variable,
	KindVariableSet:         variable,
	KindEvent:               event,
	KindCustomEvent:         customEvent,
	KindIfThenElse:          branch,
	KindSwitchInteger:       switchCases,
	KindSwitchString:        switchCases,
	KindSwitchName:          switchCases,
	KindSwitchEnum:          switchCases,
	KindSelect:              selectNode,
	KindDynamicCast:         cast,
	KindClassDynamicCast:    cast,
	KindSpawnActorFromClass: spawn,
	KindSpawnActor:          spawn,
	KindTimeline:            timeline,
	KindMacroInstance:       macroInstance,
	KindMakeArray:           makeArray,
	KindMakeStruct:          makeStruct,
	KindBreakStruct:         breakStruct,
	KindCallParentFunction:  callParent,
	KindKnot:                knot,
	KindExecutionSequence:   sequence,
}

// Projector applies the rule table against one registry.
type Projector struct {
	reg *registry.Registry
}

// New returns a projector resolving references through reg. A nil reg
// resolves nothing, so every optional attribute is omitted.
func New(reg *registry.Registry) *Projector {
	return &Projector{reg: reg}
}

// Project returns the attributes of n. Unknown kinds and nil nodes yield an
// empty map.
func (p *Projector) Project(n model.Node) *jsonobj.Object {
	out := jsonobj.New()
	if n == nil {
		return out
	}
	if rule, ok := rules[n.Kind()]; ok {
		rule(n, p.reg, out)
	}
	return out
}

// Recognizes reports whether kind has a projection rule.
func Recognizes(kind string) bool {
	_, ok := rules[kind]
	return ok
}

// Kinds returns the recognized kind tags in sorted order.
func Kinds() []string {
	out := make([]string, 0, len(rules))
	for k := range rules {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func detail(n model.Node, key string) string {
	v, _ := n.Detail(key)
	return v
}

func callFunction(n model.Node, reg *registry.Registry, out *jsonobj.Object) {
	parent, name := detail(n, model.DetailMemberParent), detail(n, model.DetailMemberName)
	if c, ok := reg.Class(parent); ok {
		out.Set("FunctionClass", c.Name)
	}
	out.Set("FunctionName", name)
	if f, ok := reg.Function(parent, name); ok {
		out.Set("FunctionSignature", f.Signature)
		out.Set("IsPureFunc", strconv.FormatBool(f.Pure))
	}
}

func variable(n model.Node, reg *registry.Registry, out *jsonobj.Object) {
	parent, name := detail(n, model.DetailMemberParent), detail(n, model.DetailMemberName)
	if c, ok := reg.Class(parent); ok {
		out.Set("VariableClass", c.Name)
	}
	out.Set("VariableName", name)
	if v, ok := reg.Variable(parent, name); ok {
		out.Set("VariableType", v.Type)
	}
}

func event(n model.Node, reg *registry.Registry, out *jsonobj.Object) {
	parent, name := detail(n, model.DetailMemberParent), detail(n, model.DetailMemberName)
	if c, ok := reg.Class(parent); ok {
		out.Set("EventClass", c.Name)
	}
	out.Set("EventName", name)
	if f, ok := reg.Function(parent, name); ok {
		out.Set("EventSignature", f.Signature)
	}
}

func customEvent(n model.Node, reg *registry.Registry, out *jsonobj.Object) {
	name := detail(n, model.DetailCustomName)
	if name == "" {
		name = n.Title()
	}
	out.Set("CustomEventName", name)
	if f, ok := reg.Function(detail(n, model.DetailMemberParent), name); ok {
		out.Set("CustomEventSignature", f.Signature)
	}
}

// branch records the first pin matching each role. The checks form one
// chain per pin, so a pin fills at most one role.
func branch(n model.Node, _ *registry.Registry, out *jsonobj.Object) {
	for _, p := range n.Pins() {
		name := p.Name()
		switch {
		case p.Direction() == model.Input && strings.Contains(name, "Condition"):
			out.SetIfAbsent("ConditionPin", name)
		case p.Direction() == model.Output && strings.Contains(name, "Then"):
			out.SetIfAbsent("ThenPin", name)
		case p.Direction() == model.Output && strings.Contains(name, "Else"):
			out.SetIfAbsent("ElsePin", name)
		}
	}
}

func switchCases(n model.Node, _ *registry.Registry, out *jsonobj.Object) {
	count := 0
	for _, p := range n.Pins() {
		if p.Direction() != model.Output || strings.Contains(p.Name(), "Default") {
			continue
		}
		out.Set("CasePin_"+strconv.Itoa(count), p.Name())
		count++
	}
	out.Set("NumCases", strconv.Itoa(count))
}

func selectNode(n model.Node, _ *registry.Registry, out *jsonobj.Object) {
	options := 0
	for _, p := range n.Pins() {
		name := p.Name()
		switch {
		case p.Direction() == model.Input && strings.Contains(name, "Index"):
			out.SetIfAbsent("IndexPin", name)
		case p.Direction() == model.Output && strings.Contains(name, "Selection"):
			out.SetIfAbsent("SelectionPin", name)
		case p.Direction() == model.Input && strings.HasPrefix(name, "Option"):
			options++
		}
	}
	out.Set("NumOptions", strconv.Itoa(options))
}

func cast(n model.Node, reg *registry.Registry, out *jsonobj.Object) {
	if c, ok := reg.Class(detail(n, model.DetailTargetType)); ok {
		out.Set("CastTargetType", c.Name)
	}
	out.Set("IsPureCast", strconv.FormatBool(detail(n, model.DetailPureCast) == "true"))
}

func spawn(n model.Node, reg *registry.Registry, out *jsonobj.Object) {
	p, ok := model.PinByName(n, "Class")
	if !ok || p.Default() == "" {
		return
	}
	if c, ok := reg.Class(p.Default()); ok {
		out.Set("SpawnClass", c.Name)
	}
}

func timeline(n model.Node, _ *registry.Registry, out *jsonobj.Object) {
	name := detail(n, model.DetailTimelineName)
	if name == "" {
		name = n.Title()
	}
	out.Set("TimelineName", name)
}

func macroInstance(n model.Node, _ *registry.Registry, out *jsonobj.Object) {
	name := detail(n, model.DetailMacroGraph)
	if name == "" {
		name = n.Title()
	}
	out.Set("MacroGraph", name)
}

func makeArray(n model.Node, _ *registry.Registry, out *jsonobj.Object) {
	for _, p := range n.Pins() {
		if p.Direction() == model.Output {
			out.Set("ArrayElementType", p.Type())
			return
		}
	}
}

func makeStruct(n model.Node, reg *registry.Registry, out *jsonobj.Object) {
	structType(n, reg, model.Output, "MakeStructType", out)
}

func breakStruct(n model.Node, reg *registry.Registry, out *jsonobj.Object) {
	structType(n, reg, model.Input, "BreakStructType", out)
}

// structType resolves the sub-type of the first pin on side dir that has
// one.
func structType(n model.Node, reg *registry.Registry, dir model.Direction, key string, out *jsonobj.Object) {
	for _, p := range n.Pins() {
		if p.Direction() != dir || p.SubType() == "" {
			continue
		}
		if s, ok := reg.Struct(p.SubType()); ok {
			out.Set(key, s.Name)
		}
		return
	}
}

func callParent(n model.Node, reg *registry.Registry, out *jsonobj.Object) {
	f, ok := reg.Function(detail(n, model.DetailMemberParent), detail(n, model.DetailMemberName))
	if !ok {
		return
	}
	out.Set("ParentFunctionName", f.Name)
	out.Set("ParentFunctionClass", f.Class)
}

func knot(_ model.Node, _ *registry.Registry, out *jsonobj.Object) {
	out.Set("IsReroute", "true")
}

func sequence(n model.Node, _ *registry.Registry, out *jsonobj.Object) {
	count := 0
	for _, p := range n.Pins() {
		if p.Direction() != model.Output {
			continue
		}
		out.Set("SequencePin_"+strconv.Itoa(count), p.Name())
		count++
	}
	out.Set("NumSequencePins", strconv.Itoa(count))
}
