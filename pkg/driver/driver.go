// Package driver iterates the configured linters and dispatches their
// outcomes to the selected printer.
package driver

import (
	"slices"

	"github.com/arthur-debert/lintroll/pkg/config"
	"github.com/arthur-debert/lintroll/pkg/linter"
	"github.com/arthur-debert/lintroll/pkg/logging"
	"github.com/arthur-debert/lintroll/pkg/parser"
	"github.com/arthur-debert/lintroll/pkg/printer"
)

// Run executes every configured linter under root in name order,
// restricted to only when non-empty. It returns true when every executed
// linter produced a clean outcome. A missing command or an empty file
// match is a skip, not a failure; configuration and execution errors
// abort the run.
func Run(root string, cfg *config.Root, p printer.Printer, only []string) (bool, error) {
	logger := logging.GetLogger("driver")

	ok := true
	for _, name := range cfg.LinterNames() {
		if len(only) > 0 && !slices.Contains(only, name) {
			continue
		}
		lintCfg := cfg.Linters[name]

		p.Start(name)
		l := linter.New(name, lintCfg, cfg.Global)
		if !l.IsExecutable() {
			logger.Info().Str("linter", name).Str("command", lintCfg.Command).Msg("command not found")
			p.NoCommand(name)
			continue
		}

		formats, err := parser.New(lintCfg.Formats)
		if err != nil {
			return false, err
		}

		outcome, err := l.Run(root)
		if err != nil {
			return false, err
		}
		if outcome == nil {
			p.NoFile(name)
			continue
		}

		diags := formats.Parse(string(outcome.Result.Stdout))
		fillProgram(diags, name)
		if err := p.Status(name, outcome, diags); err != nil {
			return false, err
		}
		ok = ok && outcome.Success()
	}
	return ok, nil
}

// fillProgram defaults each diagnostic's program to the linter's
// configured name when no %p directive captured one.
func fillProgram(diags []parser.Diagnostic, name string) {
	for i := range diags {
		if diags[i].Program == nil {
			n := name
			diags[i].Program = &n
		}
	}
}
