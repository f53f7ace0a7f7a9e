package detokenize

import (
	"regexp"
	"strings"
)

// Token is the find-target of a Definition.
//
// The two implementations are Literal (exact substring) and *Pattern
// (regular expression). Matching is stateless: every call searches s from
// its start and returns the first occurrence.
type Token interface {
	// String returns the token as the caller wrote it.
	String() string

	find(s string) (Match, bool)
}

// Match describes one occurrence of a token.
type Match struct {
	// Index is the byte offset of the occurrence in the scanned text.
	Index int

	// Text is the matched text.
	Text string

	// Groups holds the submatches of a pattern token. Groups[0] is the
	// whole match. Nil for literal tokens.
	Groups []string

	names []string
}

// Group returns the text captured by the named group, or "" if the group
// does not exist or did not participate in the match.
func (m Match) Group(name string) string {
	for i, n := range m.names {
		if n != "" && n == name && i < len(m.Groups) {
			return m.Groups[i]
		}
	}
	return ""
}

// Named returns all named groups of the match keyed by name.
// Returns nil for literal tokens or patterns without named groups.
func (m Match) Named() map[string]string {
	var named map[string]string
	for i, n := range m.names {
		if n == "" || i >= len(m.Groups) {
			continue
		}
		if named == nil {
			named = make(map[string]string)
		}
		named[n] = m.Groups[i]
	}
	return named
}

// Literal is a token matched by exact substring search.
type Literal string

// String implements Token.
func (l Literal) String() string {
	return string(l)
}

func (l Literal) find(s string) (Match, bool) {
	i := strings.Index(s, string(l))
	if i < 0 {
		return Match{}, false
	}
	return Match{Index: i, Text: string(l)}, true
}

// Pattern is a token matched by a regular expression.
type Pattern struct {
	re *regexp.Regexp
}

// NewPattern wraps a compiled regular expression as a token.
func NewPattern(re *regexp.Regexp) *Pattern {
	return &Pattern{re: re}
}

// Regexp returns the underlying regular expression.
func (p *Pattern) Regexp() *regexp.Regexp {
	return p.re
}

// String implements Token.
func (p *Pattern) String() string {
	return p.re.String()
}

func (p *Pattern) find(s string) (Match, bool) {
	loc := p.re.FindStringSubmatchIndex(s)
	if loc == nil {
		return Match{}, false
	}

	groups := make([]string, len(loc)/2)
	for i := range groups {
		// Groups that did not participate report -1.
		if loc[2*i] >= 0 {
			groups[i] = s[loc[2*i]:loc[2*i+1]]
		}
	}

	return Match{
		Index:  loc[0],
		Text:   groups[0],
		Groups: groups,
		names:  p.re.SubexpNames(),
	}, true
}
