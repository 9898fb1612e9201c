package loop

import (
	"fmt"
	"math/big"
)

// ResolveBig resolves a looping index of arbitrary size. i is not modified.
func ResolveBig[T any](s Sequence[T], i *big.Int) (int, error) {
	n := s.Len()
	if n == 0 {
		return 0, ErrEmpty
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeCount, n)
	}

	// Mod is Euclidean, the result is never negative.
	r := big.NewInt(0).Mod(i, big.NewInt(int64(n)))
	return int(r.Int64()), nil
}

// ElementAtBig returns the element of s at a looping index of arbitrary size.
func ElementAtBig[T any](s Sequence[T], i *big.Int) (T, error) {
	r, err := ResolveBig(s, i)
	if err != nil {
		var zero T
		return zero, err
	}
	return ElementAt(s, r)
}
