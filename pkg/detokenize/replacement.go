package detokenize

import (
	"regexp"
)

// LiteralFunc computes the replacement for a literal token.
// It receives the token text and returns a constant or a Deferred.
type LiteralFunc func(token string) (any, error)

// PatternFunc computes the replacement for a pattern token.
// It receives the pattern as given by the caller and the match details,
// and returns a constant or a Deferred.
type PatternFunc func(pattern *regexp.Regexp, m Match) (any, error)

// replaceFunc is the uniform replacement capability the builder invokes.
type replaceFunc func(m Match) (any, error)

// Definition pairs a Token with its replacement.
//
// Build Definitions with Text, Regexp or MustRegexp.
type Definition struct {
	token   Token
	replace replaceFunc
}

// Token returns the definition's token.
func (d Definition) Token() Token {
	return d.token
}

// Text defines a literal token.
//
// value is either a constant (string or number) or one of:
//   - LiteralFunc / func(string) (any, error)
//   - func(string) string
//
// Example:
//
//	detokenize.Text("{name}", "World")
//	detokenize.Text("{upper}", func(token string) string { return strings.ToUpper(token) })
func Text(token string, value any) Definition {
	var fn replaceFunc
	switch v := value.(type) {
	case LiteralFunc:
		fn = func(Match) (any, error) { return v(token) }
	case func(string) (any, error):
		fn = func(Match) (any, error) { return v(token) }
	case func(string) string:
		fn = func(Match) (any, error) { return v(token), nil }
	default:
		fn = constant(value)
	}
	return Definition{token: Literal(token), replace: fn}
}

// Regexp defines a pattern token.
//
// value is either a constant (string or number) or one of:
//   - PatternFunc / func(*regexp.Regexp, Match) (any, error)
//   - func(*regexp.Regexp, Match) string
//
// The function receives re itself, not the matched text; the matched text
// is in Match.Text.
//
// Example:
//
//	re := regexp.MustCompile(`{a:(?P<id>\w+)}`)
//	detokenize.Regexp(re, func(_ *regexp.Regexp, m detokenize.Match) string {
//	    return m.Group("id")
//	})
func Regexp(re *regexp.Regexp, value any) Definition {
	var fn replaceFunc
	switch v := value.(type) {
	case PatternFunc:
		fn = func(m Match) (any, error) { return v(re, m) }
	case func(*regexp.Regexp, Match) (any, error):
		fn = func(m Match) (any, error) { return v(re, m) }
	case func(*regexp.Regexp, Match) string:
		fn = func(m Match) (any, error) { return v(re, m), nil }
	default:
		fn = constant(value)
	}
	return Definition{token: NewPattern(re), replace: fn}
}

// MustRegexp compiles expr and defines a pattern token.
// It panics if expr is not a valid regular expression.
func MustRegexp(expr string, value any) Definition {
	return Regexp(regexp.MustCompile(expr), value)
}

// constant wraps a constant value in a trivial replacement function.
func constant(value any) replaceFunc {
	return func(Match) (any, error) { return value, nil }
}
