package printer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/lintroll/pkg/linter"
	"github.com/arthur-debert/lintroll/pkg/parser"
	"github.com/arthur-debert/lintroll/pkg/xargs"
)

func strptr(s string) *string { return &s }
func intptr(n int) *int       { return &n }

func sampleDiags() []parser.Diagnostic {
	return []parser.Diagnostic{
		{
			Program: strptr("demo"),
			File:    strptr("a.go"),
			Line:    intptr(3),
			Column:  intptr(7),
			Message: strptr("unused variable"),
		},
		{
			Program: strptr("demo"),
			File:    strptr("b.go"),
			Line:    intptr(1),
			Message: strptr("missing header"),
		},
	}
}

func TestSelect(t *testing.T) {
	var buf bytes.Buffer
	for _, name := range Formats() {
		p, err := Select(name, &buf)
		require.NoError(t, err, name)
		require.NotNil(t, p, name)
	}

	_, err := Select("yaml", &buf)
	assert.Error(t, err)
}

func TestText_Status(t *testing.T) {
	var buf bytes.Buffer
	p := NewText(&buf)

	p.Start("demo")
	outcome := &linter.Outcome{
		Result: xargs.Result{Stdout: []byte("tool output\n")},
	}
	require.NoError(t, p.Status("demo", outcome, nil))

	assert.Equal(t, "Running demo ... ok\ntool output\n", buf.String())
}

func TestText_FailedAndModified(t *testing.T) {
	var buf bytes.Buffer
	p := NewText(&buf)

	outcome := &linter.Outcome{
		Result:   xargs.Result{ExitCode: xargs.ExitPartialFailure, Stderr: []byte("boom\n")},
		Modified: []string{"a.go"},
	}
	require.NoError(t, p.Status("demo", outcome, nil))

	assert.Equal(t, "failed\nboom\na.go: modified\n", buf.String())
}

func TestText_Skips(t *testing.T) {
	var buf bytes.Buffer
	p := NewText(&buf)

	p.Start("demo")
	p.NoCommand("demo")
	p.Start("demo")
	p.NoFile("demo")

	assert.Equal(t, "Running demo ... no command\nRunning demo ... skipped\n", buf.String())
}

func TestJSONL_Status(t *testing.T) {
	var buf bytes.Buffer
	p := NewJSONL(&buf)

	outcome := &linter.Outcome{}
	require.NoError(t, p.Status("demo", outcome, sampleDiags()))

	want := `{"program":"demo","file":"a.go","line":3,"column":7,"message":"unused variable"}` + "\n" +
		`{"program":"demo","file":"b.go","line":1,"column":null,"message":"missing header"}` + "\n"
	assert.Equal(t, want, buf.String())
}

func TestGNU_Status(t *testing.T) {
	var buf bytes.Buffer
	p := NewGNU(&buf)

	outcome := &linter.Outcome{}
	require.NoError(t, p.Status("demo", outcome, sampleDiags()))

	assert.Equal(t,
		"demo:a.go:3:7: unused variable\ndemo:b.go:1: missing header\n",
		buf.String())
}

func TestCheckstyle_Status(t *testing.T) {
	var buf bytes.Buffer
	p := NewCheckstyle(&buf)

	outcome := &linter.Outcome{}
	require.NoError(t, p.Status("demo", outcome, sampleDiags()))

	out := buf.String()
	assert.Contains(t, out, `<checkstyle version="4.3">`)
	assert.Contains(t, out, `<file name="a.go">`)
	assert.Contains(t, out, `line="3"`)
	assert.Contains(t, out, `column="7"`)
	assert.Contains(t, out, `message="unused variable"`)
	assert.Contains(t, out, `source="demo"`)
	assert.Contains(t, out, `<file name="b.go">`)
}

func TestCheckstyle_NoDiagsNoOutput(t *testing.T) {
	var buf bytes.Buffer
	p := NewCheckstyle(&buf)
	require.NoError(t, p.Status("demo", &linter.Outcome{}, nil))
	assert.Empty(t, buf.String())
}
