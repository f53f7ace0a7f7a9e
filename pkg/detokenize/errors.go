package detokenize

import (
	"errors"
	"fmt"
)

// ErrDeferredValue indicates Detokenize met a Deferred replacement value.
// Use DetokenizeAsync when replacement functions return Deferred values.
var ErrDeferredValue = errors.New("deferred value requires DetokenizeAsync")

// UnsupportedValueError indicates a replacement produced a value that is
// neither a string nor a number.
type UnsupportedValueError struct {
	// Value is the offending value.
	Value any
}

// Error implements the error interface.
func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("unsupported replacement value of type %T", e.Value)
}

// PanicError captures a panic raised inside a Future.
// It includes the stack trace for debugging.
type PanicError struct {
	// Value is the value passed to panic().
	Value any
	// Stack is the full stack trace at the point of panic.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("deferred replacement panicked: %v", e.Value)
}
