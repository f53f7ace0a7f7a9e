package detokenize

import (
	"sort"
)

// Values supplies an ordered sequence of Definitions.
//
// Implementations: *Record, List and Map.
type Values interface {
	Definitions() []Definition
}

// List is an explicit ordered list of definitions. It is the only shape
// that supports pattern tokens.
//
// Example:
//
//	values := detokenize.List{
//	    detokenize.Text("{a}", "A"),
//	    detokenize.MustRegexp(`{b:\w+}`, "B"),
//	}
type List []Definition

// Definitions implements Values.
func (l List) Definitions() []Definition {
	return l
}

// Record is a mapping from literal token text to a replacement that
// remembers insertion order. Setting an existing key replaces its value
// and keeps its original position.
//
// The zero value is ready to use.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord creates an empty Record.
func NewRecord() *Record {
	return &Record{}
}

// Set associates token with value. Returns the record for chaining.
func (r *Record) Set(token string, value any) *Record {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, exists := r.values[token]; !exists {
		r.keys = append(r.keys, token)
	}
	r.values[token] = value
	return r
}

// Get returns the value stored for token.
func (r *Record) Get(token string) (any, bool) {
	v, ok := r.values[token]
	return v, ok
}

// Keys returns the tokens in insertion order.
func (r *Record) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Len returns the number of tokens.
func (r *Record) Len() int {
	return len(r.keys)
}

// Definitions implements Values.
func (r *Record) Definitions() []Definition {
	if r == nil {
		return nil
	}
	defs := make([]Definition, 0, len(r.keys))
	for _, k := range r.keys {
		defs = append(defs, Text(k, r.values[k]))
	}
	return defs
}

// Map is a plain Go map from literal token text to a replacement.
//
// Go maps are unordered, so definitions are applied in ascending key order.
// Use Record when declaration order matters.
type Map map[string]any

// Definitions implements Values.
func (m Map) Definitions() []Definition {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	defs := make([]Definition, 0, len(keys))
	for _, k := range keys {
		defs = append(defs, Text(k, m[k]))
	}
	return defs
}

// definitionsOf normalizes a possibly nil Values.
func definitionsOf(values Values) []Definition {
	if values == nil {
		return nil
	}
	return values.Definitions()
}
