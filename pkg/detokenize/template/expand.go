package template

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/randalmurphal/detokenize/pkg/detokenize"
)

var (
	// bracePattern matches ${varname}.
	bracePattern = regexp.MustCompile(`\$\{(?P<name>[a-zA-Z_][a-zA-Z0-9_]*)\}`)

	// dollarPattern matches $varname; the greedy name stops at the first
	// non-word character, so $port never matches inside $portNumber.
	dollarPattern = regexp.MustCompile(`\$(?P<name>[a-zA-Z_][a-zA-Z0-9_]*)`)
)

// Expander expands variable placeholders in strings.
//
// Create with NewExpander() and configure with Option functions.
type Expander struct {
	missingAction MissingAction
	braceStyle    bool
	dollarStyle   bool
}

// NewExpander creates a new Expander with the given options.
//
// Default configuration:
//   - MissingAction: MissingKeep
//   - BraceStyle: enabled (${var})
//   - DollarStyle: enabled ($var)
func NewExpander(opts ...Option) *Expander {
	e := &Expander{
		missingAction: MissingKeep,
		braceStyle:    true,
		dollarStyle:   true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Values returns the placeholder definitions for vars, brace style first.
//
// With MissingError the first undefined variable aborts detokenization
// with an *UndefinedVariableError naming it.
func (e *Expander) Values(vars map[string]any) detokenize.List {
	return e.values(vars, func(name, placeholder string) (any, error) {
		if e.missingAction == MissingError {
			return nil, &UndefinedVariableError{Names: []string{name}}
		}
		return e.fallback(placeholder), nil
	})
}

// Expand expands placeholders in s using vars.
//
// Errors are only returned when MissingAction is MissingError; the error
// then lists every undefined variable in s.
func (e *Expander) Expand(s string, vars map[string]any) (string, error) {
	if s == "" {
		return "", nil
	}

	var missing []string
	values := e.values(vars, func(name, placeholder string) (any, error) {
		if e.missingAction == MissingError {
			missing = append(missing, name)
		}
		return e.fallback(placeholder), nil
	})

	result, err := detokenize.Detokenize(s, values)
	if err != nil {
		return "", err
	}
	if len(missing) > 0 {
		return result, &UndefinedVariableError{Names: missing}
	}
	return result, nil
}

// MustExpand expands placeholders in s and panics on error.
func (e *Expander) MustExpand(s string, vars map[string]any) string {
	result, err := e.Expand(s, vars)
	if err != nil {
		panic(fmt.Sprintf("template: %v", err))
	}
	return result
}

// ExpandAll expands placeholders in every string of ss.
// On error, returns nil and the first error.
func (e *Expander) ExpandAll(ss []string, vars map[string]any) ([]string, error) {
	if ss == nil {
		return nil, nil
	}

	results := make([]string, len(ss))
	for i, s := range ss {
		expanded, err := e.Expand(s, vars)
		if err != nil {
			return nil, err
		}
		results[i] = expanded
	}
	return results, nil
}

// ExpandMap expands placeholders in all string values of m, recursing into
// nested map[string]any values. Other values are copied as-is.
// On error, returns nil and the first error.
func (e *Expander) ExpandMap(m map[string]any, vars map[string]any) (map[string]any, error) {
	if m == nil {
		return nil, nil
	}

	result := make(map[string]any, len(m))
	for k, v := range m {
		var err error
		switch val := v.(type) {
		case string:
			result[k], err = e.Expand(val, vars)
		case map[string]any:
			result[k], err = e.ExpandMap(val, vars)
		default:
			result[k] = v
		}
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// missingFunc resolves a placeholder whose variable is not in vars.
type missingFunc func(name, placeholder string) (any, error)

func (e *Expander) values(vars map[string]any, missing missingFunc) detokenize.List {
	lookup := func(_ *regexp.Regexp, m detokenize.Match) (any, error) {
		name := m.Group("name")
		if val, ok := vars[name]; ok {
			return format(val), nil
		}
		return missing(name, m.Text)
	}

	var list detokenize.List
	if e.braceStyle {
		list = append(list, detokenize.Regexp(bracePattern, detokenize.PatternFunc(lookup)))
	}
	if e.dollarStyle {
		list = append(list, detokenize.Regexp(dollarPattern, detokenize.PatternFunc(lookup)))
	}
	return list
}

func (e *Expander) fallback(placeholder string) string {
	if e.missingAction == MissingEmpty {
		return ""
	}
	return placeholder
}

// format keeps strings and numbers for detokenize to coerce and prints
// anything else with %v.
func format(v any) any {
	if _, err := detokenize.Stringify(v); err == nil {
		return v
	}
	return fmt.Sprintf("%v", v)
}

// UndefinedVariableError is returned when MissingError is set and one or
// more variables are not found.
type UndefinedVariableError struct {
	// Names is the list of undefined variable names.
	Names []string
}

// Error implements the error interface.
func (e *UndefinedVariableError) Error() string {
	if len(e.Names) == 1 {
		return fmt.Sprintf("undefined variable: %s", e.Names[0])
	}
	return fmt.Sprintf("undefined variables: %s", strings.Join(e.Names, ", "))
}

// IsUndefinedVariable reports whether err is an *UndefinedVariableError.
func IsUndefinedVariable(err error) bool {
	var uve *UndefinedVariableError
	return errors.As(err, &uve)
}

// defaultExpander is the package-level expander with default settings.
var defaultExpander = NewExpander()

// Values returns ${var} and $var definitions for vars using the default
// expander. Missing variables are kept as-is.
func Values(vars map[string]any) detokenize.List {
	return defaultExpander.Values(vars)
}

// Expand expands placeholders in s using the default expander.
// Missing variables are kept as-is.
func Expand(s string, vars map[string]any) string {
	// MissingKeep never fails: lookups return constants.
	result, _ := defaultExpander.Expand(s, vars)
	return result
}

// ExpandAll expands placeholders in all strings using the default expander.
func ExpandAll(ss []string, vars map[string]any) []string {
	results, _ := defaultExpander.ExpandAll(ss, vars)
	return results
}

// ExpandMap expands placeholders in all string values using the default expander.
func ExpandMap(m map[string]any, vars map[string]any) map[string]any {
	result, _ := defaultExpander.ExpandMap(m, vars)
	return result
}
