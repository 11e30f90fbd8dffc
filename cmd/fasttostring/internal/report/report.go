// Package report prints diagnostics and diffs for humans.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"go.uber.org/multierr"

	"github.com/broady/fasttostring/fasttostringgen/ir"
)

// Printer writes diagnostics, colored when the destination is a terminal.
type Printer struct {
	w io.Writer

	pos  *color.Color
	code *color.Color
	add  *color.Color
	del  *color.Color
	hunk *color.Color
}

// New returns a Printer for w. Colors are used only when w is a terminal and
// NO_COLOR is unset.
func New(w io.Writer) *Printer {
	return NewColored(w, isTerminal(w) && os.Getenv("NO_COLOR") == "")
}

// NewColored returns a Printer with colors forced on or off.
func NewColored(w io.Writer, colored bool) *Printer {
	p := &Printer{
		w:    w,
		pos:  color.New(color.Bold),
		code: color.New(color.FgRed, color.Bold),
		add:  color.New(color.FgGreen),
		del:  color.New(color.FgRed),
		hunk: color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.pos, p.code, p.add, p.del, p.hunk} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Failure prints every diagnostic in err, one per line, and returns a short
// summary error. Errors that carry no diagnostic are returned unchanged.
func (p *Printer) Failure(err error) error {
	var n int
	for _, e := range multierr.Errors(err) {
		var d *ir.Diagnostic
		if !errors.As(e, &d) {
			continue
		}
		n++
		if !d.Source.IsZero() {
			p.pos.Fprintf(p.w, "%s: ", d.Source)
		}
		p.code.Fprintf(p.w, "%s", d.Code)
		fmt.Fprintf(p.w, ": %s\n", d.Message)
	}
	switch n {
	case 0:
		return err
	case 1:
		return errors.New("generation failed with 1 diagnostic")
	default:
		return fmt.Errorf("generation failed with %d diagnostics", n)
	}
}

// Diff prints a line diff, coloring added and removed lines.
func (p *Printer) Diff(diff string) {
	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case line == "":
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			p.pos.Fprint(p.w, line)
		case strings.HasPrefix(line, "@@"):
			p.hunk.Fprint(p.w, line)
		case strings.HasPrefix(line, "+"):
			p.add.Fprint(p.w, line)
		case strings.HasPrefix(line, "-"):
			p.del.Fprint(p.w, line)
		default:
			fmt.Fprint(p.w, line)
		}
	}
}

// Line prints a plain line.
func (p *Printer) Line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}
