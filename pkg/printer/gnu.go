package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/lintroll/pkg/linter"
	"github.com/arthur-debert/lintroll/pkg/parser"
)

// GNU renders diagnostics in the GNU diagnostic convention,
// "program:file:line:column: message", omitting fields the format did
// not capture. Editors and CI annotators understand this shape.
type GNU struct {
	w io.Writer
}

// NewGNU returns a GNU-style printer writing to w.
func NewGNU(w io.Writer) *GNU {
	return &GNU{w: w}
}

func (p *GNU) Start(string)     {}
func (p *GNU) NoCommand(string) {}
func (p *GNU) NoFile(string)    {}

func (p *GNU) Status(name string, outcome *linter.Outcome, diags []parser.Diagnostic) error {
	for _, d := range diags {
		var fields []string
		if d.Program != nil {
			fields = append(fields, *d.Program)
		}
		if d.File != nil {
			fields = append(fields, *d.File)
		}
		if d.Line != nil {
			fields = append(fields, fmt.Sprintf("%d", *d.Line))
		}
		if d.Column != nil {
			fields = append(fields, fmt.Sprintf("%d", *d.Column))
		}

		line := strings.Join(fields, ":")
		if d.Message != nil {
			if line != "" {
				line += ": "
			}
			line += *d.Message
		}
		if _, err := fmt.Fprintln(p.w, line); err != nil {
			return err
		}
	}
	return nil
}
