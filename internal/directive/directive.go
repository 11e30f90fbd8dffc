// Package directive parses fasttostring directives from Go source files.
//
// Directives are line comments in the doc comment of a type declaration:
//
//	//fasttostring:enum
//	//fasttostring:enum method="Name"
//
// The enum directive marks an integer-backed type for generation.
// Options are key=value pairs separated by spaces. Values are Go constant
// expressions and are resolved by the caller against the package scope.
package directive

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"net/url"
	"sort"
	"strings"

	"github.com/gorilla/schema"

	"github.com/broady/fasttostring/fasttostringgen/ir"
)

// Prefix starts every fasttostring directive.
const Prefix = "//fasttostring:"

// Kind represents the type of directive.
type Kind string

const (
	KindEnum Kind = "enum"
)

// Options are the key=value options of an enum directive.
type Options struct {
	// Method is the unevaluated constant expression naming the generated method.
	Method string `schema:"method"`
}

// Directive represents a parsed directive attached to a type declaration.
type Directive struct {
	Kind    Kind
	Options Options
	Spec    *ast.TypeSpec  // the marked declaration
	Pos     token.Position // position of the directive comment
}

// TypeName returns the name of the marked type.
func (d Directive) TypeName() string {
	return d.Spec.Name.Name
}

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(false)
	dec.ZeroEmpty(true)
	return dec
}

// ParseFile extracts directives from a single file and matches them to the
// type declarations they document.
//
// Every malformed, unknown or unattached directive is reported; parsing does
// not stop at the first problem.
func ParseFile(fset *token.FileSet, f *ast.File) ([]Directive, []*ir.Diagnostic) {
	var diags []*ir.Diagnostic

	type pending struct {
		kind Kind
		opts Options
		pos  token.Position
	}
	comments := make(map[*ast.Comment]pending)

	for _, cg := range f.Comments {
		for _, c := range cg.List {
			if !strings.HasPrefix(c.Text, Prefix) {
				continue
			}

			pos := fset.Position(c.Pos())
			parts := strings.Fields(strings.TrimPrefix(c.Text, Prefix))
			if len(parts) == 0 {
				diags = append(diags, diag(ir.CodeUnknownDirective, pos, "empty directive %s", c.Text))
				continue
			}

			switch Kind(parts[0]) {
			case KindEnum:
				opts, err := parseOptions(parts[1:])
				if err != nil {
					diags = append(diags, diag(ir.CodeInvalidOption, pos, "%s%s: %v", Prefix, parts[0], err))
					continue
				}
				comments[c] = pending{kind: KindEnum, opts: opts, pos: pos}
			default:
				diags = append(diags, diag(ir.CodeUnknownDirective, pos, "unknown directive %s%s", Prefix, parts[0]))
			}
		}
	}

	var directives []Directive

	// take removes and returns the directives found in a doc comment.
	take := func(doc *ast.CommentGroup) []pending {
		if doc == nil {
			return nil
		}
		var found []pending
		for _, c := range doc.List {
			if p, ok := comments[c]; ok {
				found = append(found, p)
				delete(comments, c)
			}
		}
		return found
	}

	attach := func(found []pending, spec *ast.TypeSpec) {
		for i, p := range found {
			if i > 0 {
				diags = append(diags, diag(ir.CodeMisplacedDirective, p.pos,
					"%s%s repeated for type %s", Prefix, p.kind, spec.Name.Name))
				continue
			}
			directives = append(directives, Directive{
				Kind:    p.kind,
				Options: p.opts,
				Spec:    spec,
				Pos:     p.pos,
			})
		}
	}

	for _, decl := range f.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}

		// A directive on a grouped declaration is ambiguous unless the
		// group holds exactly one type.
		if found := take(gen.Doc); len(found) > 0 {
			if len(gen.Specs) == 1 {
				spec := gen.Specs[0].(*ast.TypeSpec)
				attach(append(found, take(spec.Doc)...), spec)
			} else {
				for _, p := range found {
					diags = append(diags, diag(ir.CodeMisplacedDirective, p.pos,
						"%s%s on a type group must be moved to the doc comment of a single type", Prefix, p.kind))
				}
			}
		}

		for _, s := range gen.Specs {
			spec := s.(*ast.TypeSpec)
			if found := take(spec.Doc); len(found) > 0 {
				attach(found, spec)
			}
		}
	}

	// Whatever is left documents something other than a type.
	var unmatched []pending
	for _, p := range comments {
		unmatched = append(unmatched, p)
	}
	sort.Slice(unmatched, func(i, j int) bool {
		return unmatched[i].pos.Offset < unmatched[j].pos.Offset
	})
	for _, p := range unmatched {
		diags = append(diags, diag(ir.CodeMisplacedDirective, p.pos,
			"%s%s directive must be followed by a type declaration", Prefix, p.kind))
	}

	return directives, diags
}

// parseOptions decodes key=value pairs into Options.
func parseOptions(args []string) (Options, error) {
	var opts Options
	if len(args) == 0 {
		return opts, nil
	}

	values := make(url.Values, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return opts, fmt.Errorf("option %q must have the form key=value", arg)
		}
		if value == "" {
			return opts, fmt.Errorf("option %q has no value", key)
		}
		if values.Has(key) {
			return opts, fmt.Errorf("option %q given more than once", key)
		}
		values.Set(key, value)
	}

	if err := decoder.Decode(&opts, values); err != nil {
		return opts, optionError(err)
	}
	return opts, nil
}

// optionError turns a schema decoding error into a stable, readable message.
func optionError(err error) error {
	var multi schema.MultiError
	if !errors.As(err, &multi) {
		return err
	}

	keys := make([]string, 0, len(multi))
	for k := range multi {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		var unknown schema.UnknownKeyError
		if errors.As(multi[k], &unknown) {
			msgs = append(msgs, fmt.Sprintf("unknown option %q", unknown.Key))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("option %q: %v", k, multi[k]))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func diag(code string, pos token.Position, format string, args ...any) *ir.Diagnostic {
	return &ir.Diagnostic{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Source: ir.Source{
			File:   pos.Filename,
			Line:   pos.Line,
			Column: pos.Column,
		},
	}
}
