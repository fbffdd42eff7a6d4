package printer

import (
	"fmt"
	"io"

	"github.com/beevik/etree"

	"github.com/arthur-debert/lintroll/pkg/linter"
	"github.com/arthur-debert/lintroll/pkg/parser"
)

// Checkstyle renders diagnostics as checkstyle-compatible XML, one
// document per linter, which most CI systems ingest natively.
type Checkstyle struct {
	w io.Writer
}

// NewCheckstyle returns a checkstyle XML printer writing to w.
func NewCheckstyle(w io.Writer) *Checkstyle {
	return &Checkstyle{w: w}
}

func (p *Checkstyle) Start(string)     {}
func (p *Checkstyle) NoCommand(string) {}
func (p *Checkstyle) NoFile(string)    {}

func (p *Checkstyle) Status(name string, outcome *linter.Outcome, diags []parser.Diagnostic) error {
	if len(diags) == 0 {
		return nil
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("checkstyle")
	root.CreateAttr("version", "4.3")

	// Diagnostics arrive sorted by span, so grouping by file in one
	// pass keeps file order stable
	var current *etree.Element
	currentFile := ""
	for _, d := range diags {
		file := ""
		if d.File != nil {
			file = *d.File
		}
		if current == nil || file != currentFile {
			current = root.CreateElement("file")
			current.CreateAttr("name", file)
			currentFile = file
		}

		e := current.CreateElement("error")
		if d.Line != nil {
			e.CreateAttr("line", fmt.Sprintf("%d", *d.Line))
		}
		if d.Column != nil {
			e.CreateAttr("column", fmt.Sprintf("%d", *d.Column))
		}
		e.CreateAttr("severity", "error")
		if d.Message != nil {
			e.CreateAttr("message", *d.Message)
		}
		if d.Program != nil {
			e.CreateAttr("source", *d.Program)
		}
	}

	doc.Indent(2)
	_, err := doc.WriteTo(p.w)
	return err
}
