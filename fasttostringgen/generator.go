// Package fasttostringgen generates FastToString methods for marked enums.
//
// A pass loads packages, collects every type marked with
//
//	//fasttostring:enum
//
// and renders one file per package holding a switch-based name lookup for
// each marked type. Any misused directive fails the whole pass and nothing
// is written.
package fasttostringgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/broady/fasttostring"
	"github.com/broady/fasttostring/fasttostringgen/golang"
	"github.com/broady/fasttostring/fasttostringgen/ir"
	"github.com/broady/fasttostring/fasttostringgen/provider"
	"github.com/broady/fasttostring/fasttostringgen/sink"
)

// GeneratedFile is one artifact of a pass.
type GeneratedFile struct {
	// Path is slash-separated and relative to GenerateResult.Root.
	Path string

	// Package is the import path of the package the file belongs to.
	Package string

	// Enums lists the qualified names of the enums in the file.
	Enums []string

	// Content is the complete file content.
	Content []byte
}

// GenerateResult is the outcome of a successful pass.
type GenerateResult struct {
	// Root is the deepest directory containing every generated file.
	Root string

	// Files are sorted by package path.
	Files []GeneratedFile

	// Warnings are non-fatal findings, such as constants sharing a value.
	Warnings []ir.Warning
}

// FilesystemSink returns a sink that writes below Root.
func (r *GenerateResult) FilesystemSink(force bool) *sink.FilesystemSink {
	s := sink.NewFilesystemSink(r.Root)
	s.Force = force
	return s
}

// WriteTo writes every file to out concurrently.
func (r *GenerateResult) WriteTo(ctx context.Context, out sink.OutputSink) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, f := range r.Files {
		f := f
		g.Go(func() error {
			if err := out.WriteFile(ctx, f.Path, f.Content); err != nil {
				return fmt.Errorf("failed to write %s: %w", f.Path, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Generate runs a generation pass. Declarations come from src, or from the
// packages named by cfg when src is nil.
//
// Diagnostics about misused directives are returned together, combined with
// multierr; use multierr.Errors and errors.As with *ir.Diagnostic to inspect them.
func Generate(ctx context.Context, cfg *Config, src provider.DeclarationSource) (*GenerateResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = applyConfigDefaults(cfg)
	logger := cfg.Logger

	methodName := cfg.MethodName
	if methodName == "" {
		methodName = fasttostring.DefaultMethodName
	}

	if src == nil {
		src = &provider.SourceProvider{
			Options: provider.SourceInputOptions{
				Packages:          cfg.Packages,
				Dir:               cfg.Dir,
				BuildTags:         cfg.BuildTags,
				DefaultMethodName: methodName,
			},
			Logger: logger,
		}
	}

	schemas, err := src.ListAnnotatedEnums(ctx)
	if err != nil {
		var d *ir.Diagnostic
		if errors.As(err, &d) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load declarations: %w", err)
	}

	var errs error
	for _, s := range schemas {
		for _, verr := range s.Validate() {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", s.Package.Path, verr))
		}
	}
	if errs != nil {
		return nil, errs
	}

	emitter := &golang.Emitter{DefaultMethodName: methodName, Filename: cfg.Output}
	result := &GenerateResult{}

	var dirs []string
	artifacts := make([]*ir.Artifact, 0, len(schemas))
	for _, s := range schemas {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if s.Package.Dir == "" {
			return nil, fmt.Errorf("package %s has no directory", s.Package.Path)
		}
		artifact, err := emitter.Emit(s)
		if err != nil {
			return nil, fmt.Errorf("failed to emit %s: %w", s.Package.Path, err)
		}
		artifacts = append(artifacts, artifact)
		dirs = append(dirs, s.Package.Dir)
		result.Warnings = append(result.Warnings, s.Warnings...)
	}

	if len(artifacts) == 0 {
		logger.Info("no marked enums found", slog.String("patterns", strings.Join(cfg.Packages, " ")))
		return result, nil
	}

	result.Root, err = commonDir(dirs)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]string, len(artifacts))
	for _, a := range artifacts {
		rel, err := filepath.Rel(result.Root, a.Package.Dir)
		if err != nil {
			return nil, fmt.Errorf("package %s: %w", a.Package.Path, err)
		}
		p := path.Join(filepath.ToSlash(rel), a.Filename)
		if other, ok := seen[p]; ok {
			return nil, fmt.Errorf("packages %s and %s both generate %s", other, a.Package.Path, p)
		}
		seen[p] = a.Package.Path

		result.Files = append(result.Files, GeneratedFile{
			Path:    p,
			Package: a.Package.Path,
			Enums:   a.Enums,
			Content: a.Content,
		})
		logger.Debug("rendered", slog.String("file", p), slog.Int("enums", len(a.Enums)))
	}

	for _, w := range result.Warnings {
		attrs := []any{slog.String("code", w.Code), slog.String("type", w.TypeName)}
		if w.Source != nil {
			attrs = append(attrs, slog.String("source", w.Source.String()))
		}
		logger.Warn(w.Message, attrs...)
	}

	return result, nil
}

// commonDir returns the deepest directory containing all of dirs.
func commonDir(dirs []string) (string, error) {
	var root string
	for i, d := range dirs {
		abs, err := filepath.Abs(d)
		if err != nil {
			return "", fmt.Errorf("failed to resolve %s: %w", d, err)
		}
		if i == 0 {
			root = abs
			continue
		}
		for !within(root, abs) {
			parent := filepath.Dir(root)
			if parent == root {
				break
			}
			root = parent
		}
	}
	return root, nil
}

// within reports whether dir is root or below it.
func within(root, dir string) bool {
	if dir == root {
		return true
	}
	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(dir, prefix)
}
