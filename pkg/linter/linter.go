// Package linter ties file selection, batched execution, and side-effect
// detection together into one run of a configured tool.
package linter

import (
	"os/exec"
	"path/filepath"

	"github.com/arthur-debert/lintroll/pkg/config"
	"github.com/arthur-debert/lintroll/pkg/logging"
	"github.com/arthur-debert/lintroll/pkg/matcher"
	"github.com/arthur-debert/lintroll/pkg/snapshot"
	"github.com/arthur-debert/lintroll/pkg/walker"
	"github.com/arthur-debert/lintroll/pkg/xargs"
	"github.com/rs/zerolog"
)

// Outcome is the terminal artifact of one linter run. The run counts as
// clean only when the tool exited zero and touched nothing.
type Outcome struct {
	// Result folds the exit status and streams of all invocations
	Result xargs.Result

	// Modified lists files changed as a side effect, e.g. by an
	// auto-formatter, relative to the run root
	Modified []string
}

// Success reports whether the run was clean: every invocation exited
// zero and no selected file was modified. Exit status and side effects
// are independent failure axes; both surface to the printer.
func (o *Outcome) Success() bool {
	return o.Result.Success() && len(o.Modified) == 0
}

// Linter runs one configured tool. Instances own their configuration for
// the duration of a run and share no mutable state, so distinct Linters
// are safe to run from distinct goroutines.
type Linter struct {
	name              string
	command           string
	options           []string
	includes          []string
	excludes          []string
	workDir           string
	excludeSubmodules bool
	singleFile        bool
	checkHash         bool
	logger            zerolog.Logger
}

// New builds a Linter from its configuration. Global excludes are
// appended after the linter's own, so either list can veto a file.
func New(name string, cfg config.LinterConfig, global config.GlobalConfig) *Linter {
	excludes := append(append([]string(nil), global.Excludes...), cfg.Excludes...)
	return &Linter{
		name:              name,
		command:           cfg.Command,
		options:           cfg.Options,
		includes:          cfg.Includes,
		excludes:          excludes,
		workDir:           cfg.WorkDir,
		excludeSubmodules: cfg.SubmodulesExcluded(),
		singleFile:        cfg.SingleFile,
		checkHash:         cfg.CheckHash,
		logger:            logging.GetLogger("linter").With().Str("linter", name).Logger(),
	}
}

// Name returns the configured linter name.
func (l *Linter) Name() string {
	return l.name
}

// IsExecutable reports whether the command resolves on the search path.
func (l *Linter) IsExecutable() bool {
	_, err := exec.LookPath(l.command)
	return err == nil
}

// Run selects files under root and executes the tool over them. A nil
// Outcome with a nil error means the run was skipped: includes were
// configured but nothing matched. With no includes configured at all the
// tool runs once with zero file arguments.
func (l *Linter) Run(root string) (*Outcome, error) {
	files, err := l.files(root)
	if err != nil {
		return nil, err
	}
	if len(l.includes) > 0 && len(files) == 0 {
		l.logger.Debug().Msg("no files")
		return nil, nil
	}

	maxArgs := 0
	if l.singleFile {
		maxArgs = 1
	}
	cmd := xargs.New(l.command, maxArgs).CommonArgs(l.options...)
	for _, f := range files {
		cmd.Args(filepath.Join(root, f))
	}
	if l.workDir != "" {
		cmd.Dir(filepath.Join(root, l.workDir))
	}

	snap := snapshot.Take(root, files, l.checkHash)

	result, err := cmd.Run()
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{
		Result:   result,
		Modified: snap.Changed(),
	}
	l.logger.Debug().
		Bool("success", outcome.Success()).
		Int("files", len(files)).
		Strs("modified", outcome.Modified).
		Msg("linter finished")
	return outcome, nil
}

// files returns the candidate files for this run. With no includes the
// walker is not invoked at all.
func (l *Linter) files(root string) ([]string, error) {
	if len(l.includes) == 0 {
		return nil, nil
	}

	b := matcher.NewBuilder()
	for _, inc := range l.includes {
		b.Include(inc)
	}
	for _, exc := range l.excludes {
		b.Exclude(exc)
	}
	m, err := b.Build()
	if err != nil {
		return nil, err
	}

	return walker.Walk(root, m, walker.Options{
		ExcludeSubmodules: l.excludeSubmodules,
	}), nil
}
