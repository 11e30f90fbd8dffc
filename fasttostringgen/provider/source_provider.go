// Package provider implements declaration sources that find marked enums and
// convert them to the intermediate representation.
package provider

import (
	"bytes"
	"context"
	"fmt"
	"go/ast"
	"go/constant"
	"go/parser"
	"go/token"
	"go/types"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/multierr"
	"golang.org/x/tools/go/packages"

	"github.com/broady/fasttostring"
	"github.com/broady/fasttostring/fasttostringgen/ir"
	"github.com/broady/fasttostring/internal/directive"
)

// DeclarationSource lists the marked enums of a set of packages.
// Each schema describes one package; packages without marked enums may be omitted.
type DeclarationSource interface {
	ListAnnotatedEnums(ctx context.Context) ([]*ir.Schema, error)
}

// SourceInputOptions configures source-based enum discovery.
type SourceInputOptions struct {
	// Packages are the package patterns to analyze, with go command semantics
	// ("." or "./..." or an import path).
	Packages []string

	// Dir is the directory patterns are resolved in. Empty means the current directory.
	Dir string

	// BuildTags are passed to the build system as -tags.
	BuildTags []string

	// DefaultMethodName is the method name used for enums without an override.
	// It is needed to detect conflicts with existing methods.
	// Default: fasttostring.DefaultMethodName.
	DefaultMethodName string
}

// SourceProvider finds marked enums by analyzing Go source code.
type SourceProvider struct {
	Options SourceInputOptions

	// Logger receives debug output. Nil means slog.Default().
	Logger *slog.Logger
}

var _ DeclarationSource = (*SourceProvider)(nil)

// ListAnnotatedEnums loads the packages and returns one schema per package
// that declares at least one marked enum, sorted by package path.
//
// Package list and parse errors fail the load. Type errors fail it only when
// they affect a marked enum. Misused directives are
// collected as *ir.Diagnostic values and returned together, combined with
// multierr; in that case no schema is returned.
func (p *SourceProvider) ListAnnotatedEnums(ctx context.Context) ([]*ir.Schema, error) {
	opts := p.Options
	if len(opts.Packages) == 0 {
		return nil, fmt.Errorf("no packages specified")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.DefaultMethodName == "" {
		opts.DefaultMethodName = fasttostring.DefaultMethodName
	}

	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// NeedDeps makes go/packages type-check from source through ParseFile.
	// Without it the go command compiles the packages itself, reporting
	// tolerable type errors as fatal and reading stale artifacts from disk.
	cfg := &packages.Config{
		Context: ctx,
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedSyntax |
			packages.NeedImports |
			packages.NeedDeps |
			packages.NeedTypes |
			packages.NeedTypesInfo,
		Dir:       opts.Dir,
		ParseFile: parseFile,
	}
	if len(opts.BuildTags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(opts.BuildTags, ",")}
	}

	pkgs, err := packages.Load(cfg, opts.Packages...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found matching %s", strings.Join(opts.Packages, " "))
	}

	// Code calling a generated method does not type-check while the
	// artifact is hidden or missing, so type errors only matter when they
	// reach a marked enum. Anything else fails the load.
	typeErrors := make(map[*packages.Package][]packages.Error)
	for _, pkg := range pkgs {
		var fatal []packages.Error
		for _, e := range pkg.Errors {
			if e.Kind == packages.TypeError {
				typeErrors[pkg] = append(typeErrors[pkg], e)
				continue
			}
			fatal = append(fatal, e)
		}
		if len(fatal) > 0 {
			return nil, fmt.Errorf("package %s has errors: %v", pkg.PkgPath, fatal)
		}
		if errs := typeErrors[pkg]; len(errs) > 0 {
			logger.Debug("ignoring type errors", slog.String("package", pkg.PkgPath), slog.Int("errors", len(errs)))
		}
	}

	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].PkgPath < pkgs[j].PkgPath })

	var (
		schemas []*ir.Schema
		errs    error
		seen    = make(map[string]bool)
	)
	for _, pkg := range pkgs {
		if seen[pkg.PkgPath] {
			continue
		}
		seen[pkg.PkgPath] = true

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		b := newSchemaBuilder(pkg, opts.DefaultMethodName)
		b.typeErrors = typeErrors[pkg]
		if err := b.build(); err != nil {
			return nil, err
		}
		for _, d := range b.diags {
			errs = multierr.Append(errs, d)
		}

		if len(b.schema.Enums) == 0 {
			logger.Debug("no marked enums", slog.String("package", pkg.PkgPath))
			continue
		}
		for _, e := range b.schema.Enums {
			logger.Debug("discovered enum",
				slog.String("type", e.QualifiedName()),
				slog.Int("members", len(e.Members)),
				slog.String("method", e.ResolvedMethodName(opts.DefaultMethodName)),
			)
		}
		schemas = append(schemas, b.schema)
	}

	if errs != nil {
		return nil, errs
	}
	return schemas, nil
}

// parseFile parses a package file for go/packages. Files previously written by
// the generator are reduced to their package clause, so a stale artifact can
// neither break type checking nor make its own methods look like conflicts.
func parseFile(fset *token.FileSet, filename string, src []byte) (*ast.File, error) {
	if isGenerated(src) {
		return parser.ParseFile(fset, filename, src, parser.PackageClauseOnly)
	}
	return parser.ParseFile(fset, filename, src, parser.AllErrors|parser.ParseComments)
}

func isGenerated(src []byte) bool {
	return bytes.HasPrefix(src, []byte(fasttostring.GeneratedHeader))
}

// schemaBuilder accumulates the marked enums of one package.
type schemaBuilder struct {
	pkg           *packages.Package
	defaultMethod string
	schema        *ir.Schema
	diags         []*ir.Diagnostic

	// typeErrors are tolerated unless a marked enum depends on them.
	typeErrors []packages.Error
	err        error

	// consts holds the package-level constants in file order, then source order.
	consts   []*types.Const
	constDoc map[*types.Const]*ast.CommentGroup
}

func newSchemaBuilder(pkg *packages.Package, defaultMethod string) *schemaBuilder {
	info := ir.PackageInfo{
		Path:       pkg.PkgPath,
		Name:       pkg.Name,
		ScopeNames: pkg.Types.Scope().Names(),
	}
	if len(pkg.GoFiles) > 0 {
		info.Dir = filepath.Dir(pkg.GoFiles[0])
	}
	return &schemaBuilder{
		pkg:           pkg,
		defaultMethod: defaultMethod,
		schema:        &ir.Schema{Package: info},
		constDoc:      make(map[*types.Const]*ast.CommentGroup),
	}
}

func (b *schemaBuilder) build() error {
	b.scanConstants()

	for _, f := range b.pkg.Syntax {
		directives, diags := directive.ParseFile(b.pkg.Fset, f)
		b.diags = append(b.diags, diags...)

		for _, d := range directives {
			b.addEnum(d)
			if b.err != nil {
				return b.err
			}
		}
	}
	return nil
}

// broken records that a marked enum cannot be described because of type errors.
func (b *schemaBuilder) broken(typeName string) {
	b.err = fmt.Errorf("package %s has errors affecting %s: %v", b.pkg.PkgPath, typeName, b.typeErrors)
}

// scanConstants records every package-level constant in declaration order.
// types.Scope.Names is sorted, so the syntax is walked instead.
func (b *schemaBuilder) scanConstants() {
	for _, f := range b.pkg.Syntax {
		for _, decl := range f.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.CONST {
				continue
			}
			for _, s := range gen.Specs {
				spec := s.(*ast.ValueSpec)
				doc := spec.Doc
				if doc == nil {
					doc = spec.Comment
				}
				for _, name := range spec.Names {
					c, ok := b.pkg.TypesInfo.Defs[name].(*types.Const)
					if !ok {
						continue
					}
					b.consts = append(b.consts, c)
					if doc != nil {
						b.constDoc[c] = doc
					}
				}
			}
		}
	}
}

// addEnum validates a marked declaration and adds its descriptor.
func (b *schemaBuilder) addEnum(d directive.Directive) {
	src := b.source(d.Spec.Name.Pos())
	typeName := d.TypeName()

	tn, ok := b.pkg.TypesInfo.Defs[d.Spec.Name].(*types.TypeName)
	if !ok {
		b.report(ir.CodeNotAnEnum, src, "cannot resolve type %s", typeName)
		return
	}

	if tn.IsAlias() {
		b.report(ir.CodeNotAnEnum, src, "%s applies to defined types, %s is an alias", fasttostring.Directive, typeName)
		return
	}

	named, ok := tn.Type().(*types.Named)
	if !ok {
		b.report(ir.CodeNotAnEnum, src, "%s applies to defined types, %s is %s", fasttostring.Directive, typeName, tn.Type())
		return
	}

	if named.TypeParams().Len() > 0 {
		b.report(ir.CodeNotAnEnum, src, "%s does not support generic type %s", fasttostring.Directive, typeName)
		return
	}

	basic, ok := named.Underlying().(*types.Basic)
	if ok && basic.Kind() == types.Invalid && len(b.typeErrors) > 0 {
		b.broken(typeName)
		return
	}
	if !ok || basic.Info()&types.IsInteger == 0 {
		b.report(ir.CodeNotAnEnum, src, "%s requires an integer type, %s is defined over %s",
			fasttostring.Directive, typeName, named.Underlying())
		return
	}

	method, ok := b.resolveMethodName(d)
	if !ok {
		return
	}

	resolved := method
	if resolved == "" {
		resolved = b.defaultMethod
	}
	if obj, _, _ := types.LookupFieldOrMethod(named, true, b.pkg.Types, resolved); obj != nil {
		b.report(ir.CodeMethodConflict, src, "type %s already has a field or method %s (declared at %s)",
			typeName, resolved, b.pkg.Fset.Position(obj.Pos()))
		return
	}

	var members []ir.EnumMember
	for _, c := range b.consts {
		if c.Name() == "_" || !types.Identical(c.Type(), named) {
			continue
		}
		if c.Val().Kind() == constant.Unknown {
			b.broken(typeName)
			return
		}
		members = append(members, ir.EnumMember{
			Name:          c.Name(),
			Value:         c.Val().ExactString(),
			Documentation: ir.NewDocumentation(b.constDoc[c].Text()),
		})
	}

	if len(members) == 0 {
		b.report(ir.CodeNoMembers, src, "type %s has no constants of its own type", typeName)
		return
	}

	enum := &ir.EnumDescriptor{
		Name:       ir.GoIdentifier{Name: typeName, Package: b.pkg.PkgPath},
		Underlying: basic.Name(),
		Members:    members,
		MethodName: method,
		Source:     src,
	}

	if !b.schema.AddEnum(enum) {
		return
	}

	aliases := enum.Aliases()
	for _, m := range members {
		first, ok := aliases[m.Name]
		if !ok {
			continue
		}
		s := src
		b.schema.AddWarning(ir.Warning{
			Code: "duplicate_value",
			Message: fmt.Sprintf("%s has the same value as %s; %s returns %q for both",
				m.Name, first, resolved, first),
			Source:   &s,
			TypeName: typeName,
		})
	}
}

// resolveMethodName evaluates the method option as a constant string
// expression in the scope of the declaration. It reports false after
// recording a diagnostic.
func (b *schemaBuilder) resolveMethodName(d directive.Directive) (string, bool) {
	expr := d.Options.Method
	if expr == "" {
		return "", true
	}

	optSrc := ir.Source{File: d.Pos.Filename, Line: d.Pos.Line, Column: d.Pos.Column}

	tv, err := types.Eval(b.pkg.Fset, b.pkg.Types, d.Spec.Pos(), expr)
	if err != nil {
		hint := ""
		if token.IsIdentifier(expr) {
			hint = fmt.Sprintf(" (quote literal names: method=%q)", expr)
		}
		b.report(ir.CodeInvalidOption, optSrc, "method=%s: %v%s", expr, err, hint)
		return "", false
	}

	if tv.Value == nil || tv.Value.Kind() != constant.String {
		b.report(ir.CodeInvalidOption, optSrc, "method=%s must be a constant string expression, got %s", expr, tv.Type)
		return "", false
	}

	name := constant.StringVal(tv.Value)
	if !token.IsIdentifier(name) || name == "_" {
		b.report(ir.CodeInvalidMethodName, optSrc, "method name %q for type %s is not a valid Go identifier", name, d.TypeName())
		return "", false
	}

	return name, true
}

func (b *schemaBuilder) source(pos token.Pos) ir.Source {
	if !pos.IsValid() {
		return ir.Source{}
	}
	position := b.pkg.Fset.Position(pos)
	return ir.Source{
		File:   position.Filename,
		Line:   position.Line,
		Column: position.Column,
	}
}

func (b *schemaBuilder) report(code string, src ir.Source, format string, args ...any) {
	b.diags = append(b.diags, &ir.Diagnostic{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Source:  src,
	})
}
