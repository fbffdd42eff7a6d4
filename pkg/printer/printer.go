// Package printer renders linter outcomes. The output variants form a
// closed set behind one interface, selected by name at startup.
package printer

import (
	"fmt"
	"io"

	"github.com/arthur-debert/lintroll/pkg/linter"
	"github.com/arthur-debert/lintroll/pkg/parser"
)

// Printer receives per-linter events from the driver. Implementations
// must never mutate the outcome or the diagnostics.
type Printer interface {
	// Start announces that a linter run is beginning
	Start(name string)
	// NoCommand reports that the linter's command is not on the path
	NoCommand(name string)
	// NoFile reports that includes were configured but nothing matched
	NoFile(name string)
	// Status reports a completed run with its parsed diagnostics
	Status(name string, outcome *linter.Outcome, diags []parser.Diagnostic) error
}

// Names of the available output variants.
const (
	FormatNull       = "null"
	FormatText       = "text"
	FormatJSONL      = "jsonl"
	FormatGNU        = "gnu"
	FormatCheckstyle = "checkstyle"
)

// Formats lists the selectable variant names.
func Formats() []string {
	return []string{FormatNull, FormatText, FormatJSONL, FormatGNU, FormatCheckstyle}
}

// Select returns the printer variant registered under name, writing to w.
func Select(name string, w io.Writer) (Printer, error) {
	switch name {
	case FormatNull:
		return Null{}, nil
	case FormatText:
		return NewText(w), nil
	case FormatJSONL:
		return NewJSONL(w), nil
	case FormatGNU:
		return NewGNU(w), nil
	case FormatCheckstyle:
		return NewCheckstyle(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", name)
	}
}

// Null discards everything. Useful when only the exit code matters.
type Null struct{}

func (Null) Start(string)     {}
func (Null) NoCommand(string) {}
func (Null) NoFile(string)    {}
func (Null) Status(string, *linter.Outcome, []parser.Diagnostic) error {
	return nil
}
