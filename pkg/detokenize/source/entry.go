package source

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/randalmurphal/detokenize/pkg/detokenize"
)

// Entry is one serializable definition.
//
// Exactly one of Token or Pattern names what to find, and exactly one of
// Value, Env, File or Group says what to substitute:
//   - Value: a constant string or number
//   - Env: the named environment variable, read when the token is matched
//   - File: the file contents without the trailing newline, read as a
//     deferred value (requires DetokenizeAsync)
//   - Group: pattern only; the text of the named capture group, translated
//     through Lookup when Lookup is set (unknown keys become "")
type Entry struct {
	Token   string         `yaml:"token,omitempty" json:"token,omitempty"`
	Pattern string         `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Value   any            `yaml:"value" json:"value"`
	Env     string         `yaml:"env,omitempty" json:"env,omitempty"`
	File    string         `yaml:"file,omitempty" json:"file,omitempty"`
	Group   string         `yaml:"group,omitempty" json:"group,omitempty"`
	Lookup  map[string]any `yaml:"lookup,omitempty" json:"lookup,omitempty"`
}

// Key returns the token or pattern text.
func (e Entry) Key() string {
	if e.Pattern != "" {
		return e.Pattern
	}
	return e.Token
}

// Kind returns the replacement kind: "value", "env", "file" or "group".
func (e Entry) Kind() string {
	switch {
	case e.Env != "":
		return "env"
	case e.File != "":
		return "file"
	case e.Group != "":
		return "group"
	default:
		return "value"
	}
}

// Describe returns a short human-readable form of the replacement.
func (e Entry) Describe() string {
	switch e.Kind() {
	case "env":
		return "$" + e.Env
	case "file":
		return "<" + e.File
	case "group":
		if e.Lookup != nil {
			return fmt.Sprintf("group %s via lookup (%d keys)", e.Group, len(e.Lookup))
		}
		return "group " + e.Group
	default:
		s, err := detokenize.Stringify(e.Value)
		if err != nil {
			return fmt.Sprintf("%v", e.Value)
		}
		return s
	}
}

// Sentinel errors for entry validation.
var (
	// ErrNoToken indicates an entry has neither token nor pattern.
	ErrNoToken = errors.New("entry needs a token or a pattern")

	// ErrAmbiguousToken indicates an entry has both token and pattern.
	ErrAmbiguousToken = errors.New("entry has both token and pattern")

	// ErrNoReplacement indicates an entry has no value, env, file or group.
	ErrNoReplacement = errors.New("entry needs one of value, env, file or group")

	// ErrAmbiguousReplacement indicates an entry sets more than one of
	// value, env, file or group.
	ErrAmbiguousReplacement = errors.New("entry sets more than one of value, env, file or group")
)

// EntryError reports an invalid entry and its position.
type EntryError struct {
	// Position is the 0-based index of the entry.
	Position int
	// Key is the entry's token or pattern.
	Key string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *EntryError) Error() string {
	return fmt.Sprintf("entry %d (%q): %v", e.Position, e.Key, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *EntryError) Unwrap() error {
	return e.Err
}

// Definitions validates entries and converts them in order.
func Definitions(entries []Entry) (detokenize.List, error) {
	list := make(detokenize.List, 0, len(entries))
	for i, e := range entries {
		def, err := e.Definition()
		if err != nil {
			return nil, &EntryError{Position: i, Key: e.Key(), Err: err}
		}
		list = append(list, def)
	}
	return list, nil
}

// Definition validates the entry and converts it.
func (e Entry) Definition() (detokenize.Definition, error) {
	if err := e.validate(); err != nil {
		return detokenize.Definition{}, err
	}

	var re *regexp.Regexp
	if e.Pattern != "" {
		var err error
		if re, err = regexp.Compile(e.Pattern); err != nil {
			return detokenize.Definition{}, fmt.Errorf("compile pattern: %w", err)
		}
		if e.Group != "" && re.SubexpIndex(e.Group) < 0 {
			return detokenize.Definition{}, fmt.Errorf("pattern has no group %q", e.Group)
		}
	}

	var fn func(m detokenize.Match) (any, error)
	switch e.Kind() {
	case "env":
		fn = func(detokenize.Match) (any, error) { return os.Getenv(e.Env), nil }
	case "file":
		fn = func(detokenize.Match) (any, error) { return readFile(e.File), nil }
	case "group":
		fn = func(m detokenize.Match) (any, error) {
			g := m.Group(e.Group)
			if e.Lookup == nil {
				return g, nil
			}
			if v, ok := e.Lookup[g]; ok {
				return v, nil
			}
			return "", nil
		}
	default:
		if re != nil {
			return detokenize.Regexp(re, e.Value), nil
		}
		return detokenize.Text(e.Token, e.Value), nil
	}

	if re != nil {
		return detokenize.Regexp(re, detokenize.PatternFunc(func(_ *regexp.Regexp, m detokenize.Match) (any, error) {
			return fn(m)
		})), nil
	}
	return detokenize.Text(e.Token, detokenize.LiteralFunc(func(string) (any, error) {
		return fn(detokenize.Match{Text: e.Token})
	})), nil
}

func (e Entry) validate() error {
	switch {
	case e.Token == "" && e.Pattern == "":
		return ErrNoToken
	case e.Token != "" && e.Pattern != "":
		return ErrAmbiguousToken
	}

	set := 0
	for _, present := range []bool{e.Value != nil, e.Env != "", e.File != "", e.Group != ""} {
		if present {
			set++
		}
	}
	switch {
	case set == 0:
		return ErrNoReplacement
	case set > 1:
		return ErrAmbiguousReplacement
	}

	if e.Group != "" && e.Pattern == "" {
		return errors.New("group requires a pattern")
	}
	if e.Lookup != nil && e.Group == "" {
		return errors.New("lookup requires a group")
	}
	if e.Value != nil {
		if _, err := detokenize.Stringify(e.Value); err != nil {
			return err
		}
	}
	for k, v := range e.Lookup {
		if _, err := detokenize.Stringify(v); err != nil {
			return fmt.Errorf("lookup %q: %w", k, err)
		}
	}
	return nil
}

// readFile starts reading path and returns the pending contents.
func readFile(path string) *detokenize.Future {
	return detokenize.Go(func() (any, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return strings.TrimSuffix(string(data), "\n"), nil
	})
}
