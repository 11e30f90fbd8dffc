// Package ir defines the intermediate representation passed from the
// declaration providers to the emitters.
// Nothing in this package depends on go/types, so descriptors can be built
// by any front end (a go/packages loader, a test, a pre-parsed AST).
package ir

import (
	"fmt"
	"strings"
)

// GoIdentifier represents a named Go entity with package context.
type GoIdentifier struct {
	// Name is the declared identifier.
	Name string

	// Package is the import path of the declaring package.
	// Empty for builtin types.
	Package string
}

// Qualified returns the package-qualified name, e.g. "example.com/states.HumanStates".
func (id GoIdentifier) Qualified() string {
	if id.Package == "" {
		return id.Name
	}
	return id.Package + "." + id.Name
}

// Documentation holds documentation comments extracted from Go source.
type Documentation struct {
	// Summary is the first sentence of the comment.
	Summary string

	// Body is the complete comment text without directive lines.
	Body string
}

// IsZero returns true if the documentation is empty.
func (d Documentation) IsZero() bool {
	return d.Summary == "" && d.Body == ""
}

// Source represents source code location information.
type Source struct {
	File   string
	Line   int
	Column int
}

// IsZero returns true if the source location is empty.
func (s Source) IsZero() bool {
	return s.File == "" && s.Line == 0 && s.Column == 0
}

// String formats the location as file:line:col, omitting unknown parts.
func (s Source) String() string {
	switch {
	case s.IsZero():
		return "-"
	case s.Line == 0:
		return s.File
	case s.Column == 0:
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// Warning represents a non-fatal issue encountered during generation.
type Warning struct {
	// Code is a machine-readable warning identifier.
	Code string

	// Message is a human-readable description.
	Message string

	// Source is the location that triggered the warning, if applicable.
	Source *Source

	// TypeName is the type that triggered the warning, if applicable.
	TypeName string
}

// PackageInfo describes a Go package.
type PackageInfo struct {
	// Path is the import path (e.g., "github.com/foo/bar").
	Path string

	// Name is the package name (e.g., "bar").
	Name string

	// Dir is the filesystem directory, if known.
	Dir string

	// ScopeNames are the sorted names declared in package scope.
	// Emitters use them to pick identifiers that do not collide.
	ScopeNames []string
}

// Declares reports whether name is declared in package scope.
func (p PackageInfo) Declares(name string) bool {
	for _, n := range p.ScopeNames {
		if n == name {
			return true
		}
	}
	return false
}

// summarize returns the first sentence of a comment body.
func summarize(body string) string {
	body = strings.TrimSpace(body)
	if i := strings.Index(body, "\n\n"); i >= 0 {
		body = body[:i]
	}
	if i := strings.Index(body, ". "); i >= 0 {
		body = body[:i+1]
	}
	return strings.Join(strings.Fields(body), " ")
}

// NewDocumentation builds Documentation from comment text.
func NewDocumentation(body string) Documentation {
	body = strings.TrimSpace(body)
	if body == "" {
		return Documentation{}
	}
	return Documentation{
		Summary: summarize(body),
		Body:    body,
	}
}
