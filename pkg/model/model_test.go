package model

import "testing"

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
		ok   bool
	}{
		{"Input", Input, true},
		{"in", Input, true},
		{"OUTPUT", Output, true},
		{"out", Output, true},
		{"sideways", Input, false},
		{"", Input, false},
	}
	for _, tt := range tests {
		got, ok := ParseDirection(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseDirection(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDirectionString(t *testing.T) {
	if Input.String() != "Input" || Output.String() != "Output" {
		t.Errorf("Direction strings = %q, %q", Input, Output)
	}
}

func TestGraphKind(t *testing.T) {
	for _, k := range GraphKinds {
		if !k.Valid() {
			t.Errorf("%s should be valid", k)
		}
	}
	if GraphKind("Ubergraph").Valid() {
		t.Error("Ubergraph should not be valid")
	}
	if got := DelegateGraph.Group(); got != "DelegateGraphs" {
		t.Errorf("Group = %q, want DelegateGraphs", got)
	}
}
