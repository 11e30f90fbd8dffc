package ir

import (
	"reflect"
	"testing"
)

func TestGoIdentifier_Qualified(t *testing.T) {
	tests := []struct {
		id   GoIdentifier
		want string
	}{
		{GoIdentifier{Name: "HumanStates", Package: "example.com/states"}, "example.com/states.HumanStates"},
		{GoIdentifier{Name: "int"}, "int"},
	}
	for _, tt := range tests {
		if got := tt.id.Qualified(); got != tt.want {
			t.Errorf("Qualified() = %q, want %q", got, tt.want)
		}
	}
}

func TestEnumDescriptor_ResolvedMethodName(t *testing.T) {
	e := &EnumDescriptor{}
	if got := e.ResolvedMethodName("FastToString"); got != "FastToString" {
		t.Errorf("default: got %q", got)
	}

	e.MethodName = "Name"
	if got := e.ResolvedMethodName("FastToString"); got != "Name" {
		t.Errorf("override: got %q", got)
	}
}

func TestEnumDescriptor_DistinctMembers(t *testing.T) {
	// const (
	//     A T = iota
	//     B
	//     C = A
	//     D
	// )
	e := &EnumDescriptor{
		Name: GoIdentifier{Name: "T", Package: "p"},
		Members: []EnumMember{
			{Name: "A", Value: "0"},
			{Name: "B", Value: "1"},
			{Name: "C", Value: "0"},
			{Name: "D", Value: "3"},
		},
	}

	var names []string
	for _, m := range e.DistinctMembers() {
		names = append(names, m.Name)
	}
	if want := []string{"A", "B", "D"}; !reflect.DeepEqual(names, want) {
		t.Errorf("DistinctMembers() = %v, want %v", names, want)
	}

	if got, want := e.Aliases(), map[string]string{"C": "A"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Aliases() = %v, want %v", got, want)
	}
}

func TestEnumDescriptor_NoAliases(t *testing.T) {
	e := &EnumDescriptor{Members: []EnumMember{{Name: "A", Value: "0"}, {Name: "B", Value: "1"}}}
	if got := e.Aliases(); got != nil {
		t.Errorf("Aliases() = %v, want nil", got)
	}
}

func TestNewDocumentation(t *testing.T) {
	doc := NewDocumentation("HumanStates is what a person is doing. It is used in tests.\n\nMore text.")
	if doc.Summary != "HumanStates is what a person is doing." {
		t.Errorf("Summary = %q", doc.Summary)
	}
	if !NewDocumentation("  ").IsZero() {
		t.Error("blank documentation should be zero")
	}
}
