// Package rec converts recovered panics into errors.
package rec

import (
	"fmt"
	"runtime/debug"
)

func asError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("recovered panic: %w", err)
	}
	return fmt.Errorf("recovered panic: %v", r)
}

// Error recovers a panic and assigns it, with the stack, to the provided error.
// It must be deferred directly.
func Error(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w\n%s", asError(r), debug.Stack())
	}
}

// Wrap recovers a panic and assigns it to the provided error, wrapped
// with the provided format and arguments. The recovered panic is appended
// to the end of the arguments.
// If no panic was recovered, but the error is not nil, it is wrapped
// the same way.
// It must be deferred directly.
func Wrap(err *error, format string, a ...any) {
	if r := recover(); r != nil {
		*err = fmt.Errorf(format, append(a, asError(r))...)
	} else if *err != nil {
		*err = fmt.Errorf(format, append(a, *err)...)
	}
}
