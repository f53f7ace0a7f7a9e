package detokenize

import (
	"context"
	"runtime/debug"

	"golang.org/x/sync/errgroup"
)

// Deferred is a replacement value that resolves later.
//
// Replacement functions passed to DetokenizeAsync may return a Deferred
// instead of a constant. Await blocks until the value is available or ctx
// is done; the resolved value must be a string or a number.
type Deferred interface {
	Await(ctx context.Context) (any, error)
}

// Future is a Deferred backed by a goroutine.
//
// Create with Go, Resolved or Rejected. A Future settles exactly once and
// may be awaited any number of times from any goroutine.
type Future struct {
	done  chan struct{}
	value any
	err   error
}

// Compile-time interface check.
var _ Deferred = (*Future)(nil)

// Go starts fn in a new goroutine and returns a Future for its result.
// A panic in fn settles the future with a *PanicError.
//
// Example:
//
//	detokenize.Text("{user}", func(string) (any, error) {
//	    return detokenize.Go(func() (any, error) { return lookupUser() }), nil
//	})
func Go(fn func() (any, error)) *Future {
	f := &Future{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.value = nil
				f.err = &PanicError{
					Value: r,
					Stack: string(debug.Stack()),
				}
			}
		}()
		f.value, f.err = fn()
	}()
	return f
}

// Resolved returns a Future already settled with value.
func Resolved(value any) *Future {
	f := &Future{done: make(chan struct{}), value: value}
	close(f.done)
	return f
}

// Rejected returns a Future already settled with err.
func Rejected(err error) *Future {
	f := &Future{done: make(chan struct{}), err: err}
	close(f.done)
	return f
}

// Done returns a channel closed once the future has settled.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Await implements Deferred.
func (f *Future) Await(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// resolveAll awaits every deferred segment value in place.
//
// All deferred values were already started by the build; resolveAll waits
// on them together and returns the first failure observed, unmodified.
// Output order is untouched: each result lands in its own segment slot.
// Returns the number of deferred values awaited.
func resolveAll(ctx context.Context, segments []Segment) (int, error) {
	g, gctx := errgroup.WithContext(ctx)
	pending := 0

	for i := range segments {
		d, ok := segments[i].Value.(Deferred)
		if !segments[i].Substituted || !ok {
			continue
		}
		pending++

		i := i
		g.Go(func() error {
			v, err := d.Await(gctx)
			if err != nil {
				return err
			}
			segments[i].Value = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return pending, err
	}
	// Report cancellation even if every value had settled already.
	if err := ctx.Err(); err != nil {
		return pending, err
	}
	return pending, nil
}
