// Package matcher implements override-style path matching: an ordered
// allow-list of include globs with exclude globs layered on top as veto
// rules, using the gitignore pattern dialect (*, **, trailing / for
// directory-only patterns).
package matcher

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/arthur-debert/lintroll/pkg/errors"
)

// Result is the outcome of matching a path against an override set
type Result int

const (
	// Unspecified means no pattern matched the path
	Unspecified Result = iota
	// Included means the last matching pattern was an include
	Included
	// Excluded means the last matching pattern was an exclude
	Excluded
)

func (r Result) String() string {
	switch r {
	case Included:
		return "included"
	case Excluded:
		return "excluded"
	default:
		return "unspecified"
	}
}

// pattern is a single compiled override rule. Patterns are kept in the
// order they were added; the last matching pattern decides the result.
type pattern struct {
	raw      string
	glob     string
	negated  bool // a match excludes the path instead of including it
	dirOnly  bool // trailing slash: matches directories and their contents
	anchored bool // contains a slash: matched against the full relative path
}

// Matcher matches relative slash-separated paths against an ordered
// override rule set. The zero set matches nothing.
type Matcher struct {
	patterns []pattern
}

// Builder accumulates include and exclude globs for a Matcher.
type Builder struct {
	patterns []string
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Include adds an allow-list pattern. A leading "!" in the user's pattern
// is escaped so it matches a literal "!" rather than being read as the
// engine's own negation syntax.
func (b *Builder) Include(glob string) *Builder {
	b.patterns = append(b.patterns, escapeLeadingBang(glob))
	return b
}

// Exclude adds a veto pattern. It is appended after all includes added so
// far, so on a path matching both, the exclude wins.
func (b *Builder) Exclude(glob string) *Builder {
	b.patterns = append(b.patterns, "!"+escapeLeadingBang(glob))
	return b
}

// Build compiles the accumulated patterns. An unparsable glob fails the
// whole build with a PATTERN_INVALID configuration error.
func (b *Builder) Build() (*Matcher, error) {
	compiled := make([]pattern, 0, len(b.patterns))
	for _, raw := range b.patterns {
		p, err := parsePattern(raw)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, p)
	}
	return &Matcher{patterns: compiled}, nil
}

// Match reports whether path is selected by the override set. path must be
// relative to the walk root and slash-separated. isDir lets directory-only
// patterns apply during traversal so whole subtrees can be pruned.
func (m *Matcher) Match(path string, isDir bool) Result {
	for i := len(m.patterns) - 1; i >= 0; i-- {
		p := m.patterns[i]
		if p.match(path, isDir) {
			if p.negated {
				return Excluded
			}
			return Included
		}
	}
	return Unspecified
}

// escapeLeadingBang protects a user-supplied leading "!" from being
// interpreted as engine negation.
func escapeLeadingBang(glob string) string {
	if strings.HasPrefix(glob, "!") {
		return `\` + glob
	}
	return glob
}

func parsePattern(raw string) (pattern, error) {
	p := pattern{raw: raw}
	glob := raw

	switch {
	case strings.HasPrefix(glob, `\!`):
		glob = glob[1:]
	case strings.HasPrefix(glob, "!"):
		p.negated = true
		glob = glob[1:]
	}

	if strings.HasSuffix(glob, "/") {
		p.dirOnly = true
		glob = strings.TrimSuffix(glob, "/")
	}

	// A leading slash only anchors the pattern, it is not part of the path
	rooted := strings.HasPrefix(glob, "/")
	glob = strings.TrimPrefix(glob, "/")

	if glob == "" {
		return pattern{}, errors.Newf(errors.ErrPatternInvalid, "empty pattern %q", raw)
	}

	p.anchored = rooted || strings.Contains(glob, "/")
	if !doublestar.ValidatePattern(glob) {
		return pattern{}, errors.Newf(errors.ErrPatternInvalid, "unparsable pattern %q", raw)
	}
	p.glob = glob
	return p, nil
}

func (p pattern) match(path string, isDir bool) bool {
	glob := p.glob
	if !p.anchored {
		// Patterns without a slash match at any depth
		glob = "**/" + glob
	}

	// matchSelf: the pattern names this path exactly.
	// matchUnder: the pattern names an ancestor directory, so the path is
	// covered by the subtree the pattern selects.
	matchSelf := doublestar.MatchUnvalidated(glob, path)
	matchUnder := doublestar.MatchUnvalidated(glob+"/**", path)

	if p.dirOnly {
		return matchUnder || (isDir && matchSelf)
	}
	return matchSelf || matchUnder
}
