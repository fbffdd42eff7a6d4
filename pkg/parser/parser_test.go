package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/lintroll/pkg/errors"
)

func strptr(s string) *string { return &s }
func intptr(n int) *int       { return &n }

func TestToPattern(t *testing.T) {
	tests := []struct {
		name   string
		format string
		want   string
	}{
		{name: "literal percent", format: "%%", want: "%"},
		{name: "message directive", format: "%m", want: `(?P<m>.*)`},
		{name: "mixed literals", format: "%%%m%%%", want: `%(?P<m>.*)%`},
		{name: "line and column", format: "%l:%c", want: `(?P<l>\d+):(?P<c>\d+)`},
		{name: "unknown directive dropped", format: "a%zb", want: "ab"},
		{name: "program and file", format: "%p %f", want: `(?P<p>[^:[:cntrl:]]+) (?P<f>[^:[:cntrl:]]+)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToPattern(tt.format))
		})
	}
}

func TestNew_InvalidFormat(t *testing.T) {
	_, err := New([]string{"%f(unclosed"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFormatInvalid))
}

func TestParse_Empty(t *testing.T) {
	p, err := New(nil)
	require.NoError(t, err)
	assert.Empty(t, p.Parse(""))
}

func TestParse_GNUStyle(t *testing.T) {
	p, err := New([]string{"^%f:%l:%c: %m$"})
	require.NoError(t, err)

	text := "prog.cc:2:5: error: use of undeclared identifier 'std'\n" +
		"    std::cout << \"hello world\" << std::endl;\n" +
		"    ^\n" +
		"prog.cc:2:35: error: use of undeclared identifier 'std'\n" +
		"    std::cout << \"hello world\" << std::endl;\n" +
		"                                  ^\n" +
		"2 errors generated.\n"

	assert.Equal(t, []Diagnostic{
		{
			File:    strptr("prog.cc"),
			Line:    intptr(2),
			Column:  intptr(5),
			Message: strptr("error: use of undeclared identifier 'std'"),
		},
		{
			File:    strptr("prog.cc"),
			Line:    intptr(2),
			Column:  intptr(35),
			Message: strptr("error: use of undeclared identifier 'std'"),
		},
	}, p.Parse(text))
}

func TestParse_MultiplePatterns(t *testing.T) {
	p, err := New([]string{"^%f:%l:%c: %m$", "^%f:%l: %m$"})
	require.NoError(t, err)

	text := "prog.cc:1: error: expected unqualified-id\n" +
		"prog.cc:1:1: error: expected unqualified-id\n"

	assert.Equal(t, []Diagnostic{
		{
			File:    strptr("prog.cc"),
			Line:    intptr(1),
			Message: strptr("error: expected unqualified-id"),
		},
		{
			File:    strptr("prog.cc"),
			Line:    intptr(1),
			Column:  intptr(1),
			Message: strptr("error: expected unqualified-id"),
		},
	}, p.Parse(text))
}

func TestParse_OverlappingFormatsKeepFirst(t *testing.T) {
	// Both formats match the whole line; the first one in the list wins
	p, err := New([]string{"^%f:%l: %m$", "^%f:%l: warning: %m$"})
	require.NoError(t, err)

	diags := p.Parse("a.go:3: warning: unused variable\n")
	require.Len(t, diags, 1)
	assert.Equal(t, "warning: unused variable", *diags[0].Message)
}

func TestParse_ProgramCapture(t *testing.T) {
	p, err := New([]string{"^%p: %f: %m$"})
	require.NoError(t, err)

	diags := p.Parse("shellcheck: run.sh: SC2086 double quote to prevent globbing\n")
	require.Len(t, diags, 1)
	assert.Equal(t, "shellcheck", *diags[0].Program)
	assert.Equal(t, "run.sh", *diags[0].File)
	assert.Nil(t, diags[0].Line)
}
