// Package xargs runs an external command over a long argument list by
// splitting the list across as many sequential invocations as the
// platform's command-line length ceiling requires, folding the results
// into one logical output.
package xargs

import (
	"bytes"
	stderrors "errors"
	"os"
	"os/exec"

	"github.com/arthur-debert/lintroll/pkg/errors"
	"github.com/arthur-debert/lintroll/pkg/logging"
)

// ExitPartialFailure is the folded exit status when at least one
// invocation exited non-zero, following the xargs(1) convention.
const ExitPartialFailure = 123

// DefaultArgBudget is the byte budget for a single command line. It is a
// conservative figure well below ARG_MAX on all supported platforms once
// environment overhead is accounted for.
const DefaultArgBudget = 128 * 1024

// Command builds a batched invocation of an external program. Common
// arguments are repeated on every invocation; variable arguments are
// consumed from the front across invocations.
type Command struct {
	program    string
	commonArgs []string
	args       []string
	maxArgs    int
	dir        string
	budget     int
}

// New returns a Command for program. maxArgs caps the number of variable
// arguments per invocation; 0 means no cap beyond the length budget.
func New(program string, maxArgs int) *Command {
	return &Command{
		program: program,
		maxArgs: maxArgs,
		budget:  DefaultArgBudget,
	}
}

// CommonArgs appends arguments repeated on every invocation.
func (c *Command) CommonArgs(args ...string) *Command {
	c.commonArgs = append(c.commonArgs, args...)
	return c
}

// Args appends variable arguments to be distributed across invocations.
func (c *Command) Args(args ...string) *Command {
	c.args = append(c.args, args...)
	return c
}

// Dir sets the working directory for all invocations.
func (c *Command) Dir(dir string) *Command {
	c.dir = dir
	return c
}

// ArgBudget overrides the command-line byte budget.
func (c *Command) ArgBudget(n int) *Command {
	c.budget = n
	return c
}

// Result is the fold of all invocations: exit status is zero only when
// every invocation succeeded, and the streams are the concatenation of
// each invocation's streams in invocation order.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Success reports whether every invocation exited zero.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Run executes the command, batching variable arguments under the length
// budget. With no variable arguments the program runs exactly once.
// Invocations are strictly sequential: a later batch may depend on
// filesystem side effects of an earlier one. A spawn failure aborts with
// an EXEC_FAILED error; non-zero child exits are folded into the Result.
func (c *Command) Run() (Result, error) {
	logger := logging.GetLogger("xargs")

	if c.dir != "" {
		info, err := os.Stat(c.dir)
		if err != nil || !info.IsDir() {
			return Result{}, errors.Newf(errors.ErrWorkDirInvalid, "%s is not a directory", c.dir)
		}
	}

	base := len(c.program) + 1
	for _, a := range c.commonArgs {
		base += len(a) + 1
	}

	var ret Result
	remaining := c.args
	for {
		batch, rest := c.nextBatch(remaining, base)
		remaining = rest

		argv := append(append([]string{}, c.commonArgs...), batch...)
		logging.LogCommand(c.program, argv)

		cmd := exec.Command(c.program, argv...)
		if c.dir != "" {
			cmd.Dir = c.dir
		}
		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			var exitErr *exec.ExitError
			if !stderrors.As(err, &exitErr) {
				return Result{}, errors.Wrapf(err, errors.ErrExecFailed, "running %s", c.program)
			}
			logger.Debug().Int("exit", exitErr.ExitCode()).Str("program", c.program).Msg("invocation failed")
			ret.ExitCode = ExitPartialFailure
		}
		ret.Stdout = append(ret.Stdout, stdout.Bytes()...)
		ret.Stderr = append(ret.Stderr, stderr.Bytes()...)

		if len(remaining) == 0 {
			break
		}
	}
	return ret, nil
}

// nextBatch takes the longest prefix of args that fits the budget and the
// per-invocation cap. The first remaining argument is always taken, even
// when over budget, so an over-long single path still gets attempted
// instead of stalling the run.
func (c *Command) nextBatch(args []string, baseCost int) (batch, rest []string) {
	if len(args) == 0 {
		return nil, nil
	}

	n := 1
	cost := baseCost + len(args[0]) + 1
	for n < len(args) {
		if c.maxArgs > 0 && n >= c.maxArgs {
			break
		}
		next := cost + len(args[n]) + 1
		if next > c.budget {
			break
		}
		cost = next
		n++
	}
	return args[:n], args[n:]
}
