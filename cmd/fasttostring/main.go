// Command fasttostring generates FastToString methods for enums marked with
// //fasttostring:enum.
//
// Typical use is a go:generate line in the package declaring the enums:
//
//	//go:generate go run github.com/broady/fasttostring/cmd/fasttostring
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/broady/fasttostring/cmd/fasttostring/internal/check"
	"github.com/broady/fasttostring/cmd/fasttostring/internal/gen"
)

// configFile is read from the working directory when present.
const configFile = ".fasttostring.yaml"

type CLI struct {
	Config  kong.ConfigFlag `help:"Read flag defaults from a YAML file." placeholder:"FILE"`
	Verbose bool            `short:"v" help:"Log debug output."`

	Gen     gen.Cmd    `cmd:"" default:"withargs" help:"Generate FastToString methods (default command)."`
	Check   check.Cmd  `cmd:"" help:"Report generated files that are missing or out of date."`
	Version VersionCmd `cmd:"" help:"Print version information."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("fasttostring"),
		kong.Description("Generate switch-based name lookups for Go enums."),
		kong.UsageOnError(),
		kong.Configuration(yamlConfig, configFile),
	}, options...)
	return kong.New(cli, options...)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli := &CLI{}
	parser, err := newParser(cli, kong.BindTo(ctx, (*context.Context)(nil)))
	if err != nil {
		panic(err)
	}
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	logger := newLogger(os.Stderr, cli.Verbose)
	slog.SetDefault(logger)

	err = kctx.Run(logger)
	kctx.FatalIfErrorf(err)
}
