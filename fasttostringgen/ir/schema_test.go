package ir

import (
	"strings"
	"testing"
)

func TestSchema_AddEnumDeduplicates(t *testing.T) {
	s := &Schema{Package: PackageInfo{Path: "p", Name: "p"}}
	id := GoIdentifier{Name: "T", Package: "p"}

	if !s.AddEnum(&EnumDescriptor{Name: id}) {
		t.Fatal("first AddEnum should report true")
	}
	if s.AddEnum(&EnumDescriptor{Name: id, MethodName: "Other"}) {
		t.Fatal("second AddEnum with the same name should report false")
	}
	if len(s.Enums) != 1 {
		t.Fatalf("expected 1 enum, got %d", len(s.Enums))
	}
	if s.Enums[0].MethodName != "" {
		t.Error("first descriptor must be kept")
	}
}

func TestSchema_Validate(t *testing.T) {
	tests := []struct {
		name     string
		enums    []*EnumDescriptor
		wantCode string
	}{
		{
			name: "valid",
			enums: []*EnumDescriptor{
				{Name: GoIdentifier{Name: "T", Package: "p"}, Members: []EnumMember{{Name: "A", Value: "0"}}},
			},
		},
		{
			name:     "missing name",
			enums:    []*EnumDescriptor{{Members: []EnumMember{{Name: "A", Value: "0"}}}},
			wantCode: "missing_name",
		},
		{
			name: "duplicate enum",
			enums: []*EnumDescriptor{
				{Name: GoIdentifier{Name: "T", Package: "p"}, Members: []EnumMember{{Name: "A", Value: "0"}}},
				{Name: GoIdentifier{Name: "T", Package: "p"}, Members: []EnumMember{{Name: "A", Value: "0"}}},
			},
			wantCode: "duplicate_enum",
		},
		{
			name: "foreign enum",
			enums: []*EnumDescriptor{
				{Name: GoIdentifier{Name: "T", Package: "q"}, Members: []EnumMember{{Name: "A", Value: "0"}}},
			},
			wantCode: "foreign_enum",
		},
		{
			name:     "no members",
			enums:    []*EnumDescriptor{{Name: GoIdentifier{Name: "T", Package: "p"}}},
			wantCode: "no_members",
		},
		{
			name: "duplicate member",
			enums: []*EnumDescriptor{
				{Name: GoIdentifier{Name: "T", Package: "p"}, Members: []EnumMember{{Name: "A", Value: "0"}, {Name: "A", Value: "1"}}},
			},
			wantCode: "duplicate_member",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Enums are assigned directly so duplicates reach Validate.
			s := &Schema{Package: PackageInfo{Path: "p"}, Enums: tt.enums}
			errs := s.Validate()

			if tt.wantCode == "" {
				if len(errs) != 0 {
					t.Fatalf("expected no errors, got %v", errs)
				}
				return
			}

			found := false
			for _, err := range errs {
				if ve, ok := err.(*ValidationError); ok && ve.Code == tt.wantCode {
					found = true
				}
			}
			if !found {
				t.Errorf("expected %s error, got %v", tt.wantCode, errs)
			}
		})
	}
}

func TestDiagnostic_Error(t *testing.T) {
	d := &Diagnostic{
		Code:    CodeNotAnEnum,
		Message: "//fasttostring:enum requires an integer type",
		Source:  Source{File: "states.go", Line: 7, Column: 1},
	}
	if got := d.Error(); !strings.HasPrefix(got, "states.go:7:1: ") {
		t.Errorf("Error() = %q", got)
	}

	d.Source = Source{}
	if got := d.Error(); got != d.Message {
		t.Errorf("Error() without source = %q", got)
	}
}

func TestPackageInfo_Declares(t *testing.T) {
	p := PackageInfo{ScopeNames: []string{"A", "fasttostring"}}
	if !p.Declares("fasttostring") || p.Declares("v") {
		t.Error("Declares mismatch")
	}
}
