package printer

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/lintroll/pkg/linter"
	"github.com/arthur-debert/lintroll/pkg/parser"
)

// JSONL emits one JSON object per parsed diagnostic, for machine
// consumption. Linters with no parseable output produce no lines.
type JSONL struct {
	w io.Writer
}

// NewJSONL returns a JSONL printer writing to w.
func NewJSONL(w io.Writer) *JSONL {
	return &JSONL{w: w}
}

func (p *JSONL) Start(string)     {}
func (p *JSONL) NoCommand(string) {}
func (p *JSONL) NoFile(string)    {}

func (p *JSONL) Status(name string, outcome *linter.Outcome, diags []parser.Diagnostic) error {
	enc := json.NewEncoder(p.w)
	for _, d := range diags {
		if err := enc.Encode(d); err != nil {
			return err
		}
	}
	return nil
}
