// Package loop resolves looping (wrap-around) indexes against ordered sequences.
//
// A looping index is any integer. It is resolved to the unique index in [0, n)
// that is congruent to it modulo the sequence length n, so -1 is the last
// element and n is the first one again.
package loop

import (
	"errors"
	"fmt"
	"looping/internal/rec"

	"golang.org/x/exp/constraints"
)

var (
	// ErrDivideByZero is the class of errors caused by resolving against a zero count.
	ErrDivideByZero = errors.New("integer divide by zero")

	// ErrEmpty is returned when a looping index is resolved against an empty sequence.
	// It matches ErrDivideByZero.
	ErrEmpty = fmt.Errorf("loop: empty sequence: %w", ErrDivideByZero)

	ErrNegativeCount = errors.New("loop: negative count")
)

// Sequence is an ordered collection with positional read access.
// At is only ever called with an index in [0, Len()).
type Sequence[T any] interface {
	Len() int
	At(i int) T
}

// Slice adapts a slice to Sequence.
type Slice[T any] []T

func (s Slice[T]) Len() int   { return len(s) }
func (s Slice[T]) At(i int) T { return s[i] }

// List is the weakly typed sequence.
type List = Slice[any]

// Wrap resolves the looping index i against the count n.
// The result is in [0, n) for every i.
func Wrap[I constraints.Integer](i, n I) (I, error) {
	if n == 0 {
		return 0, ErrEmpty
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeCount, n)
	}

	// Go's % truncates toward zero, so the remainder keeps the sign of i.
	r := i % n
	if r < 0 {
		r += n
	}
	return r, nil
}

// Resolve returns the valid index of s that the looping index i resolves to.
func Resolve[T any](s Sequence[T], i int) (int, error) {
	return Wrap(i, s.Len())
}

// ElementAt returns the element of s at the looping index i.
// A panic raised by s.At is returned as an error.
func ElementAt[T any](s Sequence[T], i int) (v T, err error) {
	r, err := Resolve(s, i)
	if err != nil {
		return v, err
	}

	defer rec.Wrap(&err, "loop: element at %d: %w", r)

	return s.At(r), nil
}

// ResolveSlice is Resolve for a plain slice.
func ResolveSlice[T any](s []T, i int) (int, error) {
	return Wrap(i, len(s))
}

// SliceElementAt is ElementAt for a plain slice.
func SliceElementAt[T any](s []T, i int) (T, error) {
	r, err := Wrap(i, len(s))
	if err != nil {
		var zero T
		return zero, err
	}
	return s[r], nil
}

// MustResolve is like Resolve but panics if s is empty.
func MustResolve[T any](s Sequence[T], i int) int {
	r, err := Resolve(s, i)
	if err != nil {
		panic(err)
	}
	return r
}

// MustElementAt is like ElementAt but panics if s is empty.
func MustElementAt[T any](s Sequence[T], i int) T {
	v, err := ElementAt(s, i)
	if err != nil {
		panic(err)
	}
	return v
}
