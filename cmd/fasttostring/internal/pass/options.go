// Package pass holds the flags shared by commands that run a generation pass.
package pass

import (
	"log/slog"

	"github.com/broady/fasttostring/fasttostringgen"
)

// Options select the packages of a pass and how their files are generated.
type Options struct {
	Patterns []string `arg:"" optional:"" name:"patterns" help:"Package patterns to generate for (default: .)."`
	Dir      string   `short:"C" help:"Resolve package patterns in this directory." placeholder:"DIR"`
	Method   string   `short:"m" help:"Name of the generated method for enums without an override (default: FastToString)." placeholder:"NAME"`
	Output   string   `short:"o" help:"Base name of the generated file in each package (default: <package>_fasttostring.go)." placeholder:"FILE"`
	Tags     []string `help:"Build tags used when loading packages." sep:","`
}

// Config converts the options to a generator configuration.
func (o *Options) Config(logger *slog.Logger) fasttostringgen.Config {
	return fasttostringgen.Config{
		Packages:   o.Patterns,
		Dir:        o.Dir,
		Output:     o.Output,
		MethodName: o.Method,
		BuildTags:  o.Tags,
		Logger:     logger,
	}
}
