/*
Package detokenize substitutes tokens inside a string with caller-supplied values.

# Overview

A token is either a literal substring or a regular expression. Each token
is paired with a replacement: a constant (string or number) or a function
of the match. Definitions are applied in the order they are declared, and
every non-overlapping occurrence of a token is replaced.

Text produced by a replacement is never scanned again, so a later
definition cannot match inside an earlier definition's output.

# Basic Usage

Use a Record for literal tokens in insertion order:

	out, err := detokenize.Detokenize("a{a}b{b}{a}{b}", detokenize.NewRecord().
	    Set("{a}", "A").
	    Set("{b}", "B"))
	// out: "aAbBAB"

Use a List to mix literal and pattern tokens:

	out, err := detokenize.Detokenize("a{a:foo}b", detokenize.List{
	    detokenize.MustRegexp(`{a:(?P<id>\w+)}`, func(_ *regexp.Regexp, m detokenize.Match) string {
	        return m.Group("id")
	    }),
	})
	// out: "afoob"

A plain Map is accepted as well; its keys are applied in ascending order.

# Replacement Functions

Literal-token functions receive the token text. Pattern-token functions
receive the *regexp.Regexp as given and the Match, which carries the
matched text and the captured groups:

	detokenize.Text("{a}", func(token string) string { return token + "A" })
	// "a{a}b" -> "a{a}Ab"

Numbers are converted to text only when the output is joined.

# Deferred Values

Replacement functions may return a Deferred, typically a *Future started
with Go. DetokenizeAsync invokes every function first, then waits for all
deferred values at once and joins the result in segment order:

	slow := func(v string, d time.Duration) func(string) (any, error) {
	    return func(string) (any, error) {
	        return detokenize.Go(func() (any, error) {
	            time.Sleep(d)
	            return v, nil
	        }), nil
	    }
	}
	out, err := detokenize.DetokenizeAsync(ctx, "{b}{c}", detokenize.NewRecord().
	    Set("{b}", slow("B", 60*time.Millisecond)).
	    Set("{c}", slow("C", 30*time.Millisecond)))
	// out: "BC"

Detokenize (and its alias DetokenizeSync) returns ErrDeferredValue when it
meets a deferred value.

# Errors

A replacement function error is returned unmodified. In DetokenizeAsync the
first failure observed wins. No partial output is ever returned.

# Observability

Package-level functions use a silent default. Create a Detokenizer to log,
record metrics and trace calls:

	d := detokenize.New(
	    detokenize.WithLogger(slog.Default()),
	    detokenize.WithMetrics(observability.NewMetricsRecorder()),
	    detokenize.WithTracing(observability.NewSpanManager()),
	)
*/
package detokenize
