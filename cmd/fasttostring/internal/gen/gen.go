// Package gen implements the gen command.
package gen

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/broady/fasttostring/cmd/fasttostring/internal/pass"
	"github.com/broady/fasttostring/cmd/fasttostring/internal/report"
	"github.com/broady/fasttostring/fasttostringgen"
)

type Cmd struct {
	pass.Options `embed:""`

	Force    bool          `help:"Replace existing files that were not generated."`
	Watch    bool          `short:"w" help:"Regenerate when Go files change."`
	Debounce time.Duration `default:"250ms" hidden:"" help:"Quiet period before regenerating in watch mode."`
}

func (c *Cmd) Run(ctx context.Context, logger *slog.Logger) error {
	if c.Watch {
		return c.watch(ctx, logger)
	}
	return c.generate(ctx, logger)
}

func (c *Cmd) generate(ctx context.Context, logger *slog.Logger) error {
	cfg := c.Config(logger)
	cfg.Force = c.Force

	result, err := fasttostringgen.FromConfig(cfg).Write(ctx)
	if err != nil {
		return report.New(os.Stderr).Failure(err)
	}
	for _, f := range result.Files {
		logger.Info("generated",
			slog.String("file", filepath.Join(result.Root, filepath.FromSlash(f.Path))),
			slog.Int("enums", len(f.Enums)),
		)
	}
	return nil
}
