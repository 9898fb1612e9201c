// Package rot rotates letters through the alphabet by any number of positions.
package rot

import (
	"looping/internal/loop"
	"strings"
)

var (
	lower = loop.Slice[rune]([]rune("abcdefghijklmnopqrstuvwxyz"))
	upper = loop.Slice[rune]([]rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ"))
)

// Rune rotates a letter by n positions, wrapping around the alphabet in
// either direction. Case is preserved and any other rune is returned as is.
func Rune(r rune, n int) rune {
	alphabet := lower
	switch {
	case 'a' <= r && r <= 'z':
	case 'A' <= r && r <= 'Z':
		alphabet = upper
	default:
		return r
	}

	// Reduce n first so the sum below cannot overflow.
	n = loop.MustResolve(alphabet, n)
	return loop.MustElementAt(alphabet, int(r-alphabet[0])+n)
}

// String rotates every letter of s by n positions.
func String(s string, n int) string {
	return strings.Map(func(r rune) rune {
		return Rune(r, n)
	}, s)
}
