// Package parser turns a linter's free-form text output into structured
// diagnostics. Formats are regular expressions with percent-directives
// standing in for the common fields:
//
//	%p  program name      %f  file path
//	%l  line (digits)     %c  column (digits)
//	%m  message (rest of line)
//	%%  literal percent
//
// Everything else in a format string is passed through as regular
// expression syntax, so anchors like ^ and $ keep their usual meaning.
package parser

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/lintroll/pkg/errors"
	"github.com/arthur-debert/lintroll/pkg/logging"
)

// Diagnostic is one structured record extracted from linter output.
// Fields are nil when the matching format carried no directive for them.
type Diagnostic struct {
	Program *string `json:"program"`
	File    *string `json:"file"`
	Line    *int    `json:"line"`
	Column  *int    `json:"column"`
	Message *string `json:"message"`
}

// Directive expansions. %p and %f exclude colons and control characters
// since those fields are conventionally colon-delimited.
var directives = map[byte]string{
	'p': `(?P<p>[^:[:cntrl:]]+)`,
	'f': `(?P<f>[^:[:cntrl:]]+)`,
	'l': `(?P<l>\d+)`,
	'c': `(?P<c>\d+)`,
	'm': `(?P<m>.*)`,
}

// ToPattern expands the percent-directives in format into a regular
// expression pattern string. An unrecognized directive is logged and
// dropped; formats are best-effort diagnostics, not a hard contract with
// the wrapped tool.
func ToPattern(format string) string {
	logger := logging.GetLogger("parser")

	var b strings.Builder
	escape := false
	for i := 0; i < len(format); i++ {
		c := format[i]
		switch {
		case escape:
			if c == '%' {
				b.WriteByte('%')
			} else if expansion, ok := directives[c]; ok {
				b.WriteString(expansion)
			} else {
				logger.Warn().Str("directive", "%"+string(c)).Msg("unknown format directive")
			}
			escape = false
		case c == '%':
			escape = true
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Parser matches compiled formats against raw tool output.
type Parser struct {
	regexes []*regexp.Regexp
}

// New compiles each format in multi-line mode. A format that does not
// compile is a FORMAT_INVALID configuration error, detected here rather
// than at parse time.
func New(formats []string) (*Parser, error) {
	regexes := make([]*regexp.Regexp, 0, len(formats))
	for _, f := range formats {
		re, err := regexp.Compile("(?m)" + ToPattern(f))
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFormatInvalid, "compiling format %q", f)
		}
		regexes = append(regexes, re)
	}
	return &Parser{regexes: regexes}, nil
}

type span struct {
	start, end int
}

// Parse runs every format over text and returns the extracted records
// sorted by span start, then span end. When multiple formats match the
// identical span only the first format's capture is kept. The Program
// field is left unset unless a %p directive captured it; callers fill in
// the configured linter name.
func (p *Parser) Parse(text string) []Diagnostic {
	bySpan := make(map[span]Diagnostic)
	for _, re := range p.regexes {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			key := span{start: m[0], end: m[1]}
			if _, seen := bySpan[key]; seen {
				continue
			}
			bySpan[key] = extract(re, text, m)
		}
	}

	spans := make([]span, 0, len(bySpan))
	for s := range bySpan {
		spans = append(spans, s)
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end < spans[j].end
	})

	diags := make([]Diagnostic, 0, len(spans))
	for _, s := range spans {
		diags = append(diags, bySpan[s])
	}
	return diags
}

func extract(re *regexp.Regexp, text string, m []int) Diagnostic {
	group := func(name string) *string {
		i := re.SubexpIndex(name)
		if i < 0 || m[2*i] < 0 {
			return nil
		}
		s := text[m[2*i]:m[2*i+1]]
		return &s
	}
	number := func(name string) *int {
		s := group(name)
		if s == nil {
			return nil
		}
		n, err := strconv.Atoi(*s)
		if err != nil {
			return nil
		}
		return &n
	}

	return Diagnostic{
		Program: group("p"),
		File:    group("f"),
		Line:    number("l"),
		Column:  number("c"),
		Message: group("m"),
	}
}
