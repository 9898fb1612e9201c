package loop

import (
	"errors"
	"fmt"
	"reflect"
)

var ErrNotIndexable = errors.New("loop: value is not indexable")

type boxed[T any] struct {
	s Sequence[T]
}

func (b boxed[T]) Len() int     { return b.s.Len() }
func (b boxed[T]) At(i int) any { return b.s.At(i) }

type reflected struct {
	v reflect.Value
}

func (r reflected) Len() int     { return r.v.Len() }
func (r reflected) At(i int) any { return r.v.Index(i).Interface() }

// Untyped returns v as a weakly typed sequence.
// v may be a Sequence[any], a slice, an array, a pointer to an array or a string.
// Strings are indexed by rune.
func Untyped(v any) (Sequence[any], error) {
	switch t := v.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil", ErrNotIndexable)
	case Sequence[any]:
		return t, nil
	case []any:
		return List(t), nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Kind() == reflect.Array {
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return reflected{rv}, nil
	case reflect.String:
		return boxed[rune]{Slice[rune]([]rune(rv.String()))}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrNotIndexable, v)
	}
}

// ResolveValue resolves the looping index i against a weakly typed sequence.
func ResolveValue(v any, i int) (int, error) {
	s, err := Untyped(v)
	if err != nil {
		return 0, err
	}
	return Resolve(s, i)
}

// ValueAt returns the element at the looping index i of a weakly typed sequence.
// The caller interprets the type of the result.
func ValueAt(v any, i int) (any, error) {
	s, err := Untyped(v)
	if err != nil {
		return nil, err
	}
	return ElementAt(s, i)
}
