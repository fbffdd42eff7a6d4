package xargs

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/lintroll/pkg/errors"
)

func TestRun_NoVariableArgs(t *testing.T) {
	result, err := New("echo", 0).CommonArgs("c").Run()
	require.NoError(t, err)
	assert.True(t, result.Success())
	assert.Equal(t, "c\n", string(result.Stdout))
}

func TestRun_MaxArgsBatching(t *testing.T) {
	result, err := New("echo", 2).
		CommonArgs("c").
		Args("1", "2", "3").
		Run()
	require.NoError(t, err)
	assert.True(t, result.Success())
	assert.Equal(t, "c 1 2\nc 3\n", string(result.Stdout))
}

func TestRun_SingleArgPerInvocation(t *testing.T) {
	result, err := New("echo", 1).Args("a", "b", "c").Run()
	require.NoError(t, err)
	assert.Equal(t, "a\nb\nc\n", string(result.Stdout))
}

func TestRun_BudgetSplitsBatches(t *testing.T) {
	// Budget fits the program plus roughly one argument at a time
	result, err := New("echo", 0).
		ArgBudget(20).
		Args("aaaaaaaa", "bbbbbbbb", "cccccccc").
		Run()
	require.NoError(t, err)
	assert.True(t, result.Success())
	assert.Equal(t, "aaaaaaaa\nbbbbbbbb\ncccccccc\n", string(result.Stdout))
}

func TestRun_OverlongFirstArgStillAttempted(t *testing.T) {
	long := strings.Repeat("x", 64)
	result, err := New("echo", 0).
		ArgBudget(10).
		Args(long, "y").
		Run()
	require.NoError(t, err)
	// Two invocations: the over-budget argument alone, then the rest
	assert.Equal(t, long+"\ny\n", string(result.Stdout))
}

func TestRun_FoldsFailureExitCode(t *testing.T) {
	result, err := New("false", 1).Args("a", "b").Run()
	require.NoError(t, err)
	assert.False(t, result.Success())
	assert.Equal(t, ExitPartialFailure, result.ExitCode)
}

func TestRun_PartialFailureStillRunsAllBatches(t *testing.T) {
	// sh -c 'exit 1' fails on every batch; output order must be preserved
	result, err := New("sh", 1).
		CommonArgs("-c", `echo "$0"; exit 1`).
		Args("one", "two").
		Run()
	require.NoError(t, err)
	assert.False(t, result.Success())
	assert.Equal(t, "one\ntwo\n", string(result.Stdout))
}

func TestRun_StderrConcatenated(t *testing.T) {
	result, err := New("sh", 1).
		CommonArgs("-c", `echo "$0" >&2`).
		Args("e1", "e2").
		Run()
	require.NoError(t, err)
	assert.Equal(t, "e1\ne2\n", string(result.Stderr))
	assert.Empty(t, result.Stdout)
}

func TestRun_MissingWorkDir(t *testing.T) {
	_, err := New("echo", 0).Dir("/nonexistent/dir").Run()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrWorkDirInvalid))
}

func TestRun_WorkDir(t *testing.T) {
	dir := t.TempDir()
	result, err := New("pwd", 0).Dir(dir).Run()
	require.NoError(t, err)
	assert.Equal(t, dir+"\n", string(result.Stdout))
}

func TestRun_SpawnFailure(t *testing.T) {
	_, err := New("lintroll-no-such-program-xyz", 0).Run()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrExecFailed))
}

func TestNextBatch_InvocationCount(t *testing.T) {
	tests := []struct {
		name    string
		numArgs int
		maxArgs int
		want    int
	}{
		{name: "exact multiple", numArgs: 6, maxArgs: 2, want: 3},
		{name: "remainder batch", numArgs: 5, maxArgs: 2, want: 3},
		{name: "single file cap", numArgs: 4, maxArgs: 1, want: 4},
		{name: "no cap", numArgs: 10, maxArgs: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New("echo", tt.maxArgs)
			var args []string
			for i := 0; i < tt.numArgs; i++ {
				args = append(args, fmt.Sprintf("f%d", i))
			}

			invocations := 0
			rest := args
			for len(rest) > 0 {
				var batch []string
				batch, rest = c.nextBatch(rest, 5)
				require.NotEmpty(t, batch)
				invocations++
			}
			assert.Equal(t, tt.want, invocations)
		})
	}
}
