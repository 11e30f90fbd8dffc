package fasttostringgen

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Config holds the configuration of a generation pass.
type Config struct {
	// Packages are the package patterns to generate for, with go command
	// semantics. Default: ".".
	Packages []string `yaml:"packages" validate:"dive,required"`

	// Dir is the directory patterns are resolved in. Default: the current directory.
	Dir string `yaml:"dir"`

	// Output is the base name of the generated file in each package.
	// Default: "<package>_fasttostring.go".
	Output string `yaml:"output" validate:"omitempty,gofile"`

	// MethodName names the generated method of enums without an override.
	// Default: "FastToString".
	MethodName string `yaml:"method" validate:"omitempty,goident"`

	// BuildTags are passed to the build system when loading packages.
	BuildTags []string `yaml:"tags" validate:"dive,required,buildtag"`

	// Force allows replacing existing files that were not generated.
	Force bool `yaml:"force"`

	// Logger receives progress and warnings. Default: slog.Default().
	Logger *slog.Logger `yaml:"-" validate:"-"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	for tag, fn := range map[string]validator.Func{
		"goident":  isGoIdent,
		"gofile":   isGoFile,
		"buildtag": isBuildTag,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	return v
}

func isGoIdent(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return token.IsIdentifier(s) && s != "_"
}

// isGoFile accepts a plain file name the go command would compile.
func isGoFile(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == filepath.Base(s) &&
		!strings.ContainsAny(s, `/\`) &&
		strings.HasSuffix(s, ".go") && len(s) > len(".go") &&
		!strings.HasSuffix(s, "_test.go") &&
		!strings.HasPrefix(s, ".") && !strings.HasPrefix(s, "_")
}

func isBuildTag(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '.' {
			return false
		}
	}
	return true
}

// Validate checks the configuration and reports every invalid field.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	messages := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		messages = append(messages, ve.Field()+": "+formatValidationError(ve))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(messages, "; "))
}

func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "must not be empty"
	case "goident":
		return fmt.Sprintf("%q is not a valid Go identifier", ve.Value())
	case "gofile":
		return fmt.Sprintf("%q is not a Go source file name", ve.Value())
	case "buildtag":
		return fmt.Sprintf("%q is not a valid build tag", ve.Value())
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}

// applyConfigDefaults returns a copy of cfg with defaults filled in.
func applyConfigDefaults(cfg *Config) *Config {
	result := *cfg
	if len(result.Packages) == 0 {
		result.Packages = []string{"."}
	}
	if result.Logger == nil {
		result.Logger = slog.Default()
	}
	return &result
}

// Generator provides a fluent API for a generation pass.
// Create one with FromPackages and configure it with method chaining.
//
// Example:
//
//	fasttostringgen.FromPackages("./...").
//	    WithMethodName("Name").
//	    Write(ctx)
type Generator struct {
	cfg Config
}

// FromPackages creates a Generator for the given package patterns.
func FromPackages(patterns ...string) *Generator {
	return &Generator{cfg: Config{Packages: patterns}}
}

// FromConfig creates a Generator from an existing configuration.
func FromConfig(cfg Config) *Generator {
	return &Generator{cfg: cfg}
}

// InDir sets the directory package patterns are resolved in.
func (g *Generator) InDir(dir string) *Generator {
	g.cfg.Dir = dir
	return g
}

// WithMethodName sets the method name of enums without an override.
func (g *Generator) WithMethodName(name string) *Generator {
	g.cfg.MethodName = name
	return g
}

// WithOutput sets the base name of the generated file in each package.
func (g *Generator) WithOutput(filename string) *Generator {
	g.cfg.Output = filename
	return g
}

// WithTags adds build tags used when loading packages.
func (g *Generator) WithTags(tags ...string) *Generator {
	g.cfg.BuildTags = append(g.cfg.BuildTags, tags...)
	return g
}

// WithLogger sets the logger for progress and warnings.
func (g *Generator) WithLogger(logger *slog.Logger) *Generator {
	g.cfg.Logger = logger
	return g
}

// Force allows replacing existing files that were not generated.
func (g *Generator) Force() *Generator {
	g.cfg.Force = true
	return g
}

// Config returns a copy of the accumulated configuration.
func (g *Generator) Config() Config {
	return g.cfg
}

// Generate runs a pass and returns the artifacts in memory without writing them.
func (g *Generator) Generate(ctx context.Context) (*GenerateResult, error) {
	return Generate(ctx, &g.cfg, nil)
}

// Write runs a pass and writes the artifacts next to their packages.
// Nothing is written if the pass reports any diagnostic.
func (g *Generator) Write(ctx context.Context) (*GenerateResult, error) {
	result, err := Generate(ctx, &g.cfg, nil)
	if err != nil {
		return nil, err
	}
	if err := result.WriteTo(ctx, result.FilesystemSink(g.cfg.Force)); err != nil {
		return nil, err
	}
	return result, nil
}
