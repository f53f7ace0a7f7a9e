package detokenize

import (
	"unicode/utf8"
)

// Segment is a contiguous piece of the working string.
//
// A literal segment carries Text and is never scanned again once it has
// been split. A substituted segment carries the Value produced by a
// replacement: a string, a number, or a Deferred.
type Segment struct {
	Text        string
	Value       any
	Substituted bool
}

// buildStats summarizes a build for observability.
type buildStats struct {
	definitions   int
	substitutions int
}

// build partitions input into literal and substituted segments.
//
// Definitions are applied in order. Each pass rescans only the literal
// segments left by the previous passes, so produced values are never
// matched by later definitions. A replacement error aborts the build and
// is returned unmodified.
func build(input string, defs []Definition) ([]Segment, buildStats, error) {
	segments := []Segment{{Text: input}}
	stats := buildStats{definitions: len(defs)}

	for _, def := range defs {
		next := make([]Segment, 0, len(segments))

		for _, seg := range segments {
			if seg.Substituted {
				next = append(next, seg)
				continue
			}

			var err error
			var n int
			next, n, err = splitLiteral(next, seg.Text, def)
			if err != nil {
				return nil, stats, err
			}
			stats.substitutions += n
		}

		segments = next
	}

	return segments, stats, nil
}

// splitLiteral appends to out the segments produced by scanning text for
// every non-overlapping occurrence of def's token.
// Returns the extended slice and the number of substitutions made.
func splitLiteral(out []Segment, text string, def Definition) ([]Segment, int, error) {
	rest := text
	// from skips the first rune after an empty match so the scan advances.
	from := 0
	n := 0

	for {
		m, ok := def.token.find(rest[from:])
		if !ok {
			return append(out, Segment{Text: rest}), n, nil
		}

		start := from + m.Index
		end := start + len(m.Text)
		m.Index = start

		value, err := def.replace(m)
		if err != nil {
			return out, n, err
		}
		n++

		out = append(out,
			Segment{Text: rest[:start]},
			Segment{Value: value, Substituted: true},
		)
		rest = rest[end:]
		from = 0

		if start == end {
			if rest == "" {
				return append(out, Segment{}), n, nil
			}
			_, size := utf8.DecodeRuneInString(rest)
			from = size
		}
	}
}
