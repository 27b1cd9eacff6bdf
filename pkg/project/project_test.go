package project

import (
	"reflect"
	"testing"

	"github.com/matzehuels/bpjson/pkg/blueprint"
	"github.com/matzehuels/bpjson/pkg/jsonobj"
	"github.com/matzehuels/bpjson/pkg/model"
	"github.com/matzehuels/bpjson/pkg/registry"
)

func in(name, typ string) blueprint.PinSpec {
	return blueprint.PinSpec{Name: name, Type: typ, Direction: "Input"}
}

func out(name, typ string) blueprint.PinSpec {
	return blueprint.PinSpec{Name: name, Type: typ, Direction: "Output"}
}

func node(t *testing.T, kind string, details map[string]string, pins ...blueprint.PinSpec) model.Node {
	t.Helper()
	n, err := blueprint.BuildNode(blueprint.NodeSpec{Title: kind, Kind: kind, Details: details, Pins: pins})
	if err != nil {
		t.Fatalf("BuildNode: %v", err)
	}
	return n
}

// pairs flattens attributes to key=value strings in order.
func pairs(o *jsonobj.Object) []string {
	var got []string
	for _, k := range o.Keys() {
		v, _ := o.String(k)
		got = append(got, k+"="+v)
	}
	return got
}

func TestProject(t *testing.T) {
	p := New(registry.Default())
	tests := []struct {
		name string
		node func(t *testing.T) model.Node
		want []string
	}{
		{
			name: "call function",
			node: func(t *testing.T) model.Node {
				return node(t, KindCallFunction, map[string]string{
					model.DetailMemberParent: "/Script/Engine.KismetSystemLibrary",
					model.DetailMemberName:   "PrintString",
				})
			},
			want: []string{"FunctionClass=KismetSystemLibrary", "FunctionName=PrintString", "FunctionSignature=PrintString", "IsPureFunc=false"},
		},
		{
			name: "binary operator",
			node: func(t *testing.T) model.Node {
				return node(t, KindBinaryOperator, map[string]string{
					model.DetailMemberParent: "KismetMathLibrary",
					model.DetailMemberName:   "Add_IntInt",
				})
			},
			want: []string{"FunctionClass=KismetMathLibrary", "FunctionName=Add_IntInt", "FunctionSignature=Add_IntInt", "IsPureFunc=true"},
		},
		{
			name: "unresolved function keeps only the name",
			node: func(t *testing.T) model.Node {
				return node(t, KindCallFunction, map[string]string{
					model.DetailMemberParent: "/Script/Game.Missing",
					model.DetailMemberName:   "DoThing",
				})
			},
			want: []string{"FunctionName=DoThing"},
		},
		{
			name: "variable get",
			node: func(t *testing.T) model.Node {
				return node(t, KindVariableGet, map[string]string{
					model.DetailMemberParent: "Pawn",
					model.DetailMemberName:   "RootComponent",
				})
			},
			want: []string{"VariableClass=Pawn", "VariableName=RootComponent", "VariableType=ObjectProperty"},
		},
		{
			name: "variable set unresolved",
			node: func(t *testing.T) model.Node {
				return node(t, KindVariableSet, map[string]string{model.DetailMemberName: "Health"})
			},
			want: []string{"VariableName=Health"},
		},
		{
			name: "event",
			node: func(t *testing.T) model.Node {
				return node(t, KindEvent, map[string]string{
					model.DetailMemberParent: "Actor",
					model.DetailMemberName:   "ReceiveTick",
				})
			},
			want: []string{"EventClass=Actor", "EventName=ReceiveTick", "EventSignature=ReceiveTick"},
		},
		{
			name: "custom event",
			node: func(t *testing.T) model.Node {
				return node(t, KindCustomEvent, map[string]string{model.DetailCustomName: "OnOpened"})
			},
			want: []string{"CustomEventName=OnOpened"},
		},
		{
			name: "branch",
			node: func(t *testing.T) model.Node {
				return node(t, KindIfThenElse, nil,
					in("execute", "exec"), in("Condition", "bool"), out("Then", "exec"), out("Else", "exec"))
			},
			want: []string{"ConditionPin=Condition", "ThenPin=Then", "ElsePin=Else"},
		},
		{
			name: "branch substring match",
			node: func(t *testing.T) model.Node {
				return node(t, KindIfThenElse, nil,
					in("ConditionValue", "bool"), out("OtherThen", "exec"), out("Else", "exec"), out("ElseAgain", "exec"))
			},
			want: []string{"ConditionPin=ConditionValue", "ThenPin=OtherThen", "ElsePin=Else"},
		},
		{
			name: "branch is case-sensitive",
			node: func(t *testing.T) model.Node {
				return node(t, KindIfThenElse, nil, in("condition", "bool"), out("then", "exec"), out("else", "exec"))
			},
			want: nil,
		},
		{
			name: "branch direction matters",
			node: func(t *testing.T) model.Node {
				return node(t, KindIfThenElse, nil, out("Condition", "bool"), in("Then", "exec"))
			},
			want: nil,
		},
		{
			name: "switch",
			node: func(t *testing.T) model.Node {
				return node(t, KindSwitchInteger, nil,
					in("Selection", "int"), out("Case_0", "exec"), out("Case_1", "exec"), out("Default", "exec"))
			},
			want: []string{"CasePin_0=Case_0", "CasePin_1=Case_1", "NumCases=2"},
		},
		{
			name: "select",
			node: func(t *testing.T) model.Node {
				return node(t, KindSelect, nil,
					in("Option 0", "int"), in("Option 1", "int"), in("Option 2", "int"),
					in("Index", "int"), out("Selection", "int"), in("NotOption", "int"))
			},
			want: []string{"IndexPin=Index", "SelectionPin=Selection", "NumOptions=3"},
		},
		{
			name: "cast",
			node: func(t *testing.T) model.Node {
				return node(t, KindDynamicCast, map[string]string{model.DetailTargetType: "/Script/Engine.Character"})
			},
			want: []string{"CastTargetType=Character", "IsPureCast=false"},
		},
		{
			name: "pure class cast unresolved",
			node: func(t *testing.T) model.Node {
				return node(t, KindClassDynamicCast, map[string]string{
					model.DetailTargetType: "BP_Unknown_C",
					model.DetailPureCast:   "true",
				})
			},
			want: []string{"IsPureCast=true"},
		},
		{
			name: "spawn",
			node: func(t *testing.T) model.Node {
				return node(t, KindSpawnActorFromClass, nil,
					in("ClassOverride", "class"),
					blueprint.PinSpec{Name: "Class", Type: "class", Direction: "Input", Default: "/Script/Engine.Pawn"})
			},
			want: []string{"SpawnClass=Pawn"},
		},
		{
			name: "spawn without default",
			node: func(t *testing.T) model.Node {
				return node(t, KindSpawnActor, nil, in("Class", "class"))
			},
			want: nil,
		},
		{
			name: "timeline",
			node: func(t *testing.T) model.Node {
				return node(t, KindTimeline, map[string]string{model.DetailTimelineName: "DoorSwing"})
			},
			want: []string{"TimelineName=DoorSwing"},
		},
		{
			name: "macro",
			node: func(t *testing.T) model.Node {
				return node(t, KindMacroInstance, map[string]string{model.DetailMacroGraph: "ForEachLoop"})
			},
			want: []string{"MacroGraph=ForEachLoop"},
		},
		{
			name: "make array",
			node: func(t *testing.T) model.Node {
				return node(t, KindMakeArray, nil, in("[0]", "int"), out("Array", "int"), out("Second", "real"))
			},
			want: []string{"ArrayElementType=int"},
		},
		{
			name: "make struct",
			node: func(t *testing.T) model.Node {
				return node(t, KindMakeStruct, nil,
					blueprint.PinSpec{Name: "X", Type: "real", Direction: "Input"},
					blueprint.PinSpec{Name: "Vector", Type: "struct", Direction: "Output", SubType: "/Script/CoreUObject.Vector"})
			},
			want: []string{"MakeStructType=Vector"},
		},
		{
			name: "break struct",
			node: func(t *testing.T) model.Node {
				return node(t, KindBreakStruct, nil,
					blueprint.PinSpec{Name: "Out", Type: "struct", Direction: "Output", SubType: "/Script/CoreUObject.Vector"},
					blueprint.PinSpec{Name: "Rotator", Type: "struct", Direction: "Input", SubType: "/Script/CoreUObject.Rotator"})
			},
			want: []string{"BreakStructType=Rotator"},
		},
		{
			name: "call parent",
			node: func(t *testing.T) model.Node {
				return node(t, KindCallParentFunction, map[string]string{
					model.DetailMemberParent: "Character",
					model.DetailMemberName:   "ReceiveBeginPlay",
				})
			},
			want: []string{"ParentFunctionName=ReceiveBeginPlay", "ParentFunctionClass=Actor"},
		},
		{
			name: "knot",
			node: func(t *testing.T) model.Node {
				return node(t, KindKnot, nil, in("InputPin", "wildcard"), out("OutputPin", "wildcard"))
			},
			want: []string{"IsReroute=true"},
		},
		{
			name: "sequence",
			node: func(t *testing.T) model.Node {
				return node(t, KindExecutionSequence, nil, in("execute", "exec"), out("then_0", "exec"), out("then_1", "exec"))
			},
			want: []string{"SequencePin_0=then_0", "SequencePin_1=then_1", "NumSequencePins=2"},
		},
		{
			name: "function without a member name",
			node: func(t *testing.T) model.Node {
				return node(t, KindCallFunction, nil)
			},
			want: []string{"FunctionName="},
		},
		{
			name: "variable without a member name",
			node: func(t *testing.T) model.Node {
				return node(t, KindVariableGet, map[string]string{model.DetailMemberParent: "Pawn"})
			},
			want: []string{"VariableClass=Pawn", "VariableName="},
		},
		{
			name: "event without a member name",
			node: func(t *testing.T) model.Node {
				return node(t, KindEvent, nil)
			},
			want: []string{"EventName="},
		},
		{
			name: "unknown kind",
			node: func(t *testing.T) model.Node {
				return node(t, "K2Node_FutureThing", map[string]string{model.DetailMemberName: "X"}, in("Condition", "bool"))
			},
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pairs(p.Project(tt.node(t)))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Project = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProjectNilRegistryOmitsResolvedKeys(t *testing.T) {
	n := node(t, KindCallFunction, map[string]string{
		model.DetailMemberParent: "KismetSystemLibrary",
		model.DetailMemberName:   "PrintString",
	})
	got := pairs(New(nil).Project(n))
	if want := []string{"FunctionName=PrintString"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Project = %v, want %v", got, want)
	}
}

func TestProjectNilNode(t *testing.T) {
	if got := New(registry.Default()).Project(nil); got.Len() != 0 {
		t.Errorf("Project(nil) = %v", got.Keys())
	}
}

func TestKinds(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != len(rules) {
		t.Fatalf("Kinds = %d, want %d", len(kinds), len(rules))
	}
	for i := 1; i < len(kinds); i++ {
		if kinds[i-1] > kinds[i] {
			t.Fatalf("Kinds not sorted: %v", kinds)
		}
	}
	if !Recognizes(KindKnot) || Recognizes("K2Node_Nope") {
		t.Error("Recognizes mismatch")
	}
	for _, k := range kinds {
		if _, ok := registry.Default().NodeKind(k); !ok {
			t.Errorf("%s has a rule but no catalog entry", k)
		}
	}
}
