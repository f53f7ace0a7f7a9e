package detokenize_test

import (
	"context"
	"errors"
	"regexp"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/detokenize/pkg/detokenize"
)

// resolveWith returns a replacement function whose value arrives after delay.
func resolveWith(value any, delay time.Duration) func(string) (any, error) {
	return func(string) (any, error) {
		return detokenize.Go(func() (any, error) {
			time.Sleep(delay)
			return value, nil
		}), nil
	}
}

// entryPoint runs either the immediate or the deferred-aware entry point.
type entryPoint func(input string, values detokenize.Values) (string, error)

func entryPoints() map[string]entryPoint {
	return map[string]entryPoint{
		"sync": detokenize.Detokenize,
		"async": func(input string, values detokenize.Values) (string, error) {
			return detokenize.DetokenizeAsync(context.Background(), input, values)
		},
	}
}

// TestDetokenize_Shared runs the behaviors both entry points must agree on.
func TestDetokenize_Shared(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		values   detokenize.Values
		expected string
	}{
		{
			name:     "record value map",
			input:    "a{a}b{b}{a}{b}",
			values:   detokenize.NewRecord().Set("{a}", "A").Set("{b}", "B"),
			expected: "aAbBAB",
		},
		{
			name:  "list value map",
			input: "a{a}b{b}{a}{b}",
			values: detokenize.List{
				detokenize.Text("{a}", "A"),
				detokenize.Text("{b}", "B"),
			},
			expected: "aAbBAB",
		},
		{
			name:     "plain map",
			input:    "a{a}b{b}{a}{b}",
			values:   detokenize.Map{"{a}": "A", "{b}": "B"},
			expected: "aAbBAB",
		},
		{
			name:  "values applied in order",
			input: "a{a}b",
			values: detokenize.List{
				detokenize.Text("{a}", "A"),
				detokenize.Text("{a}", "B"),
			},
			expected: "aAb",
		},
		{
			name:     "pattern token",
			input:    "a{a:foo}b",
			values:   detokenize.List{detokenize.MustRegexp(`{a:\w+}`, "A")},
			expected: "aAb",
		},
		{
			name:  "replacer function receives token",
			input: "a{a}b",
			values: detokenize.List{
				detokenize.Text("{a}", func(token string) string { return token + "A" }),
			},
			expected: "a{a}Ab",
		},
		{
			name:  "replacer function receives match for pattern tokens",
			input: "a{a:foo}b",
			values: detokenize.List{
				detokenize.MustRegexp(`{a:(?<id>\w+)}`, func(_ *regexp.Regexp, m detokenize.Match) string {
					return m.Group("id")
				}),
			},
			expected: "afoob",
		},
		{
			name:     "numbers coerced",
			input:    "{n} and {f}",
			values:   detokenize.NewRecord().Set("{n}", 42).Set("{f}", 1.5),
			expected: "42 and 1.5",
		},
		{
			name:     "empty definitions",
			input:    "a{a}b",
			values:   detokenize.List{},
			expected: "a{a}b",
		},
		{
			name:     "nil values",
			input:    "a{a}b",
			values:   nil,
			expected: "a{a}b",
		},
		{
			name:     "no token present",
			input:    "nothing to see",
			values:   detokenize.NewRecord().Set("{a}", "A"),
			expected: "nothing to see",
		},
		{
			name:     "empty input",
			input:    "",
			values:   detokenize.NewRecord().Set("{a}", "A"),
			expected: "",
		},
		{
			name:  "produced value is not rescanned",
			input: "{a}{b}",
			values: detokenize.List{
				detokenize.Text("{a}", "{b}"),
				detokenize.Text("{b}", "B"),
			},
			expected: "{b}B",
		},
		{
			name:     "adjacent tokens",
			input:    "{a}{a}{a}",
			values:   detokenize.NewRecord().Set("{a}", "x"),
			expected: "xxx",
		},
	}

	for epName, ep := range entryPoints() {
		for _, tt := range tests {
			t.Run(epName+"/"+tt.name, func(t *testing.T) {
				got, err := ep(tt.input, tt.values)
				require.NoError(t, err)
				assert.Equal(t, tt.expected, got)
			})
		}
	}
}

// TestDetokenize_RealWorld resolves path placeholders through a lookup table.
func TestDetokenize_RealWorld(t *testing.T) {
	static := map[string]string{
		"downloads": `F:\Downloads`,
		"basename":  "image.jpg",
	}

	got, err := detokenize.Detokenize("<downloads>/<basename>", detokenize.List{
		detokenize.MustRegexp(`<(?P<name>[^>]+)>`, func(_ *regexp.Regexp, m detokenize.Match) string {
			return static[m.Group("name")]
		}),
	})
	require.NoError(t, err)
	assert.Equal(t, `F:\Downloads/image.jpg`, got)
}

func TestDetokenize_PatternFuncReceivesCallerPattern(t *testing.T) {
	re := regexp.MustCompile(`\[(\d+)\]`)
	var seen []*regexp.Regexp
	var texts []string

	got, err := detokenize.Detokenize("x[1]y[22]", detokenize.List{
		detokenize.Regexp(re, detokenize.PatternFunc(func(p *regexp.Regexp, m detokenize.Match) (any, error) {
			seen = append(seen, p)
			texts = append(texts, m.Text)
			return len(m.Groups[1]), nil
		})),
	})
	require.NoError(t, err)
	assert.Equal(t, "x1y2", got)
	assert.Equal(t, []string{"[1]", "[22]"}, texts)
	for _, p := range seen {
		assert.Same(t, re, p)
	}
}

func TestDetokenize_ErrorPropagation(t *testing.T) {
	boom := errors.New("boom")

	t.Run("literal function error is returned unmodified", func(t *testing.T) {
		got, err := detokenize.Detokenize("a{a}b", detokenize.List{
			detokenize.Text("{a}", detokenize.LiteralFunc(func(string) (any, error) {
				return nil, boom
			})),
		})
		assert.Same(t, boom, err)
		assert.Empty(t, got)
	})

	t.Run("pattern function error is returned unmodified", func(t *testing.T) {
		_, err := detokenize.Detokenize("a{a:1}b", detokenize.List{
			detokenize.MustRegexp(`{a:\d}`, func(*regexp.Regexp, detokenize.Match) (any, error) {
				return nil, boom
			}),
		})
		assert.Same(t, boom, err)
	})

	t.Run("later definitions are not invoked after a failure", func(t *testing.T) {
		var calls atomic.Int32
		_, err := detokenize.Detokenize("{a}{b}", detokenize.List{
			detokenize.Text("{a}", detokenize.LiteralFunc(func(string) (any, error) { return nil, boom })),
			detokenize.Text("{b}", func(string) string { calls.Add(1); return "B" }),
		})
		assert.ErrorIs(t, err, boom)
		assert.Zero(t, calls.Load())
	})

	t.Run("unsupported constant", func(t *testing.T) {
		_, err := detokenize.Detokenize("{a}", detokenize.NewRecord().Set("{a}", true))
		var uve *detokenize.UnsupportedValueError
		require.ErrorAs(t, err, &uve)
		assert.Equal(t, true, uve.Value)
	})
}

func TestDetokenize_RejectsDeferred(t *testing.T) {
	got, err := detokenize.Detokenize("a{b}", detokenize.NewRecord().
		Set("{b}", resolveWith("B", 0)))
	assert.ErrorIs(t, err, detokenize.ErrDeferredValue)
	assert.Empty(t, got)
}

func TestDetokenizeSync_IsAlias(t *testing.T) {
	values := detokenize.NewRecord().Set("{a}", "A")
	want, err := detokenize.Detokenize("a{a}", values)
	require.NoError(t, err)

	got, err := detokenize.DetokenizeSync("a{a}", values)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDetokenizeAsync_ResolutionOrderIndependent(t *testing.T) {
	got, err := detokenize.DetokenizeAsync(context.Background(), "a{a}b{b}{c}{d}", detokenize.NewRecord().
		Set("{a}", "A").
		Set("{b}", resolveWith("B", 60*time.Millisecond)).
		Set("{c}", resolveWith("C", 30*time.Millisecond)).
		Set("{d}", resolveWith("D", 45*time.Millisecond)))
	require.NoError(t, err)
	assert.Equal(t, "aAbBCD", got)
}

func TestDetokenizeAsync_WaitsConcurrently(t *testing.T) {
	const delay = 80 * time.Millisecond
	record := detokenize.NewRecord()
	input := ""
	for _, tok := range []string{"{1}", "{2}", "{3}", "{4}", "{5}"} {
		record.Set(tok, resolveWith(tok, delay))
		input += tok
	}

	start := time.Now()
	got, err := detokenize.DetokenizeAsync(context.Background(), input, record)
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, "{1}{2}{3}{4}{5}", got)
	// Five sequential waits would take 5*delay.
	assert.Less(t, elapsed, 4*delay)
}

func TestDetokenizeAsync_MixedConstantsAndDeferred(t *testing.T) {
	got, err := detokenize.DetokenizeAsync(context.Background(), "{a}-{b}-{c}", detokenize.NewRecord().
		Set("{a}", 1).
		Set("{b}", func(string) (any, error) { return detokenize.Resolved(2.5), nil }).
		Set("{c}", func(string) string { return "c" }))
	require.NoError(t, err)
	assert.Equal(t, "1-2.5-c", got)
}

func TestDetokenizeAsync_Failure(t *testing.T) {
	boom := errors.New("boom")

	t.Run("rejected deferred fails the call", func(t *testing.T) {
		got, err := detokenize.DetokenizeAsync(context.Background(), "{a}{b}", detokenize.NewRecord().
			Set("{a}", resolveWith("A", 10*time.Millisecond)).
			Set("{b}", func(string) (any, error) { return detokenize.Rejected(boom), nil }))
		assert.Same(t, boom, err)
		assert.Empty(t, got)
	})

	t.Run("function error fails before waiting", func(t *testing.T) {
		_, err := detokenize.DetokenizeAsync(context.Background(), "{a}", detokenize.NewRecord().
			Set("{a}", detokenize.LiteralFunc(func(string) (any, error) { return nil, boom })))
		assert.Same(t, boom, err)
	})

	t.Run("panicking future", func(t *testing.T) {
		_, err := detokenize.DetokenizeAsync(context.Background(), "{a}", detokenize.NewRecord().
			Set("{a}", func(string) (any, error) {
				return detokenize.Go(func() (any, error) { panic("kaboom") }), nil
			}))
		var pe *detokenize.PanicError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "kaboom", pe.Value)
		assert.NotEmpty(t, pe.Stack)
	})

	t.Run("first failure wins over slower failure", func(t *testing.T) {
		fast := errors.New("fast")
		slow := errors.New("slow")
		_, err := detokenize.DetokenizeAsync(context.Background(), "{slow}{fast}", detokenize.NewRecord().
			Set("{slow}", func(string) (any, error) {
				return detokenize.Go(func() (any, error) {
					time.Sleep(100 * time.Millisecond)
					return nil, slow
				}), nil
			}).
			Set("{fast}", func(string) (any, error) { return detokenize.Rejected(fast), nil }))
		assert.Same(t, fast, err)
	})
}

func TestDetokenizeAsync_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := detokenize.DetokenizeAsync(ctx, "{a}", detokenize.NewRecord().
		Set("{a}", resolveWith("A", time.Second)))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDetokenizeAsync_InvokesEagerly(t *testing.T) {
	var invoked atomic.Int32
	release := make(chan struct{})

	blocking := func(string) (any, error) {
		invoked.Add(1)
		return detokenize.Go(func() (any, error) {
			<-release
			return "x", nil
		}), nil
	}

	done := make(chan string)
	go func() {
		out, _ := detokenize.DetokenizeAsync(context.Background(), "{a}{b}{a}", detokenize.NewRecord().
			Set("{a}", blocking).
			Set("{b}", blocking))
		done <- out
	}()

	// All three invocations happen before any future settles.
	require.Eventually(t, func() bool { return invoked.Load() == 3 }, time.Second, 5*time.Millisecond)
	close(release)
	assert.Equal(t, "xxx", <-done)
}

func TestBuild_Segments(t *testing.T) {
	segments, err := detokenize.Build("a{a}b", detokenize.NewRecord().Set("{a}", 7))
	require.NoError(t, err)
	assert.Equal(t, []detokenize.Segment{
		{Text: "a"},
		{Value: 7, Substituted: true},
		{Text: "b"},
	}, segments)
}
