package printer

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/arthur-debert/lintroll/pkg/linter"
	"github.com/arthur-debert/lintroll/pkg/parser"
)

// Text is the human-readable progress printer: one "Running <name> ..."
// line per linter with a colored verdict, followed by the tool's raw
// output and any detected modifications.
type Text struct {
	w       io.Writer
	running lipgloss.Style
	ok      lipgloss.Style
	failed  lipgloss.Style
	skipped lipgloss.Style
}

// NewText returns a Text printer writing to w. Styling is applied only
// when w is a terminal.
func NewText(w io.Writer) *Text {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	style := func(fg string, bold bool) lipgloss.Style {
		if !color {
			return lipgloss.NewStyle()
		}
		s := lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
		if bold {
			s = s.Bold(true)
		}
		return s
	}

	return &Text{
		w:       w,
		running: style("2", true),
		ok:      style("2", false),
		failed:  style("1", false),
		skipped: style("3", false),
	}
}

func (t *Text) Start(name string) {
	fmt.Fprintf(t.w, "%s %s ... ", t.running.Render("Running"), name)
}

func (t *Text) NoCommand(string) {
	fmt.Fprintln(t.w, t.skipped.Render("no command"))
}

func (t *Text) NoFile(string) {
	fmt.Fprintln(t.w, t.skipped.Render("skipped"))
}

func (t *Text) Status(name string, outcome *linter.Outcome, diags []parser.Diagnostic) error {
	if outcome.Success() {
		fmt.Fprintln(t.w, t.ok.Render("ok"))
	} else {
		fmt.Fprintln(t.w, t.failed.Render("failed"))
	}
	if _, err := t.w.Write(outcome.Result.Stdout); err != nil {
		return err
	}
	if _, err := t.w.Write(outcome.Result.Stderr); err != nil {
		return err
	}
	for _, f := range outcome.Modified {
		fmt.Fprintf(t.w, "%s: modified\n", f)
	}
	return nil
}
