// Package check implements the check command, which reports generated files
// that are missing or differ from what gen would write.
package check

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/broady/fasttostring/cmd/fasttostring/internal/pass"
	"github.com/broady/fasttostring/cmd/fasttostring/internal/report"
	"github.com/broady/fasttostring/fasttostringgen"
	"github.com/broady/fasttostring/fasttostringgen/sink"
)

type Cmd struct {
	pass.Options `embed:""`
}

func (c *Cmd) Run(ctx context.Context, logger *slog.Logger) error {
	result, err := fasttostringgen.FromConfig(c.Config(logger)).Generate(ctx)
	if err != nil {
		return report.New(os.Stderr).Failure(err)
	}

	stale, err := compare(ctx, result, report.New(os.Stdout))
	if err != nil {
		return err
	}
	if stale > 0 {
		return fmt.Errorf("%d of %d generated files are out of date; run fasttostring gen", stale, len(result.Files))
	}
	return nil
}

// compare renders the pass into memory and reports every file whose copy on
// disk is missing or different. It returns the number of such files.
func compare(ctx context.Context, result *fasttostringgen.GenerateResult, out *report.Printer) (int, error) {
	mem := sink.NewMemorySink()
	if err := result.WriteTo(ctx, mem); err != nil {
		return 0, err
	}

	disk := result.FilesystemSink(false)
	var stale int
	for _, path := range mem.Paths() {
		want := mem.Get(path)
		current, err := disk.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			stale++
			out.Line("missing: %s", path)
		case err != nil:
			return 0, err
		case !bytes.Equal(current, want):
			stale++
			out.Line("stale: %s", path)
			out.Diff(Diff(path, current, want))
		}
	}

	if stale == 0 {
		out.Line("✓ %d generated files up to date", len(mem.Paths()))
	}
	return stale, nil
}

// Diff returns a line diff from the file on disk to the generated content.
// Only changed lines are shown, each group under an @@ marker naming the
// first affected line of the file on disk.
func Diff(path string, current, want []byte) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(current), string(want))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s (on disk)\n+++ %s (generated)\n", path, path)

	line := 1
	inHunk := false
	for _, d := range diffs {
		text := d.Text
		if text != "" && !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		n := strings.Count(text, "\n")

		switch d.Type {
		case diffmatchpatch.DiffEqual:
			inHunk = false
			line += n
			continue
		case diffmatchpatch.DiffDelete:
			if !inHunk {
				fmt.Fprintf(&sb, "@@ line %d @@\n", line)
				inHunk = true
			}
			writePrefixed(&sb, "-", text)
			line += n
		case diffmatchpatch.DiffInsert:
			if !inHunk {
				fmt.Fprintf(&sb, "@@ line %d @@\n", line)
				inHunk = true
			}
			writePrefixed(&sb, "+", text)
		}
	}
	return sb.String()
}

func writePrefixed(sb *strings.Builder, prefix, text string) {
	for _, l := range strings.SplitAfter(text, "\n") {
		if l == "" {
			continue
		}
		sb.WriteString(prefix)
		sb.WriteString(l)
	}
}
