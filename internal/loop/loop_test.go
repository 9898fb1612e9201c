package loop

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"math/rand/v2"
	"slices"
	"testing"
)

func TestScenario(t *testing.T) {
	s := Slice[string]{"a", "b", "c"}

	for _, tc := range []struct {
		index    int
		resolved int
		element  string
	}{
		{-1, 2, "c"},
		{3, 0, "a"},
		{0, 0, "a"},
		{-4, 2, "c"},
		{301, 1, "b"},
	} {
		t.Run(fmt.Sprint(tc.index), func(t *testing.T) {
			r, err := Resolve(s, tc.index)
			if err != nil {
				t.Fatal(err)
			}
			if have, want := r, tc.resolved; have != want {
				t.Fatalf("Resolved %d != %d", have, want)
			}

			e, err := ElementAt(s, tc.index)
			if err != nil {
				t.Fatal(err)
			}
			if have, want := e, tc.element; have != want {
				t.Fatalf("Element %q != %q", have, want)
			}
		})
	}
}

func TestLengthFive(t *testing.T) {
	s := []int{10, 11, 12, 13, 14}

	for _, tc := range []struct {
		index, want int
	}{
		{-1, 4},
		{-5, 0},
		{-6, 4},
		{5, 0},
		{7, 2},
		{0, 0},
		{4, 4},
	} {
		r, err := ResolveSlice(s, tc.index)
		if err != nil {
			t.Fatal(err)
		}
		if have, want := r, tc.want; have != want {
			t.Errorf("Resolve(%d) = %d, want %d", tc.index, have, want)
		}

		e, err := SliceElementAt(s, tc.index)
		if err != nil {
			t.Fatal(err)
		}
		if have, want := e, s[tc.want]; have != want {
			t.Errorf("SliceElementAt(%d) = %d, want %d", tc.index, have, want)
		}
	}
}

func TestRand(t *testing.T) {
	for range 100 {
		n := 1 + rand.IntN(50)
		s := make(Slice[int], n)
		for i := range s {
			s[i] = rand.Int()
		}
		k := rand.IntN(2_000_000_000) - 1_000_000_000

		t.Run(fmt.Sprintf("%d/%d", n, k), func(t *testing.T) {
			r := MustResolve(s, k)
			if r < 0 || r >= n {
				t.Fatalf("Resolved %d out of [0, %d)", r, n)
			}

			if have, want := MustResolve(s, k+n), r; have != want {
				t.Fatalf("Resolve(k+n) %d != %d", have, want)
			}
			if have, want := MustResolve(s, k-n), r; have != want {
				t.Fatalf("Resolve(k-n) %d != %d", have, want)
			}

			if have, want := MustElementAt(s, k), s[r]; have != want {
				t.Fatalf("Element %d != %d", have, want)
			}

			in := rand.IntN(n)
			if have, want := MustResolve(s, in), in; have != want {
				t.Fatalf("In-range index %d resolved to %d", want, have)
			}
		})
	}
}

func TestExtremes(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5, 7, 1000} {
		s := make(Slice[struct{}], n)
		for _, k := range []int{math.MinInt, math.MinInt + 1, math.MaxInt, math.MaxInt - 1} {
			r, err := Resolve(s, k)
			if err != nil {
				t.Fatal(err)
			}

			want := big.NewInt(0).Mod(big.NewInt(int64(k)), big.NewInt(int64(n)))
			if have := r; int64(have) != want.Int64() {
				t.Errorf("Resolve(%d) on %d = %d, want %s", k, n, have, want)
			}
		}
	}
}

func TestEmpty(t *testing.T) {
	var empty []string

	for _, k := range []int{math.MinInt, -1, 0, 1, 5, math.MaxInt} {
		t.Run(fmt.Sprint(k), func(t *testing.T) {
			_, err1 := Resolve(Slice[string](empty), k)
			_, err2 := ElementAt(Slice[string](empty), k)
			_, err3 := ResolveSlice(empty, k)
			_, err4 := SliceElementAt(empty, k)
			_, err5 := ResolveValue(empty, k)
			_, err6 := ValueAt(empty, k)
			_, err7 := ResolveBig(Slice[string](empty), big.NewInt(int64(k)))
			_, err8 := Wrap(k, 0)

			for i, err := range []error{err1, err2, err3, err4, err5, err6, err7, err8} {
				if !errors.Is(err, ErrEmpty) {
					t.Errorf("#%d: error %v is not ErrEmpty", i+1, err)
				}
				if !errors.Is(err, ErrDivideByZero) {
					t.Errorf("#%d: error %v is not ErrDivideByZero", i+1, err)
				}
			}
		})
	}
}

func TestMustPanics(t *testing.T) {
	for name, f := range map[string]func(){
		"MustResolve":   func() { MustResolve(List{}, 1) },
		"MustElementAt": func() { MustElementAt(List{}, -1) },
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				r := recover()
				err, ok := r.(error)
				if !ok || !errors.Is(err, ErrEmpty) {
					t.Fatalf("Recovered %v, want ErrEmpty", r)
				}
			}()
			f()
			t.Fatal("Did not panic")
		})
	}
}

var errBroken = errors.New("broken sequence")

type broken struct{}

func (broken) Len() int        { return 3 }
func (broken) At(i int) string { panic(errBroken) }

func TestElementAtRecoversPanic(t *testing.T) {
	_, err := ElementAt[string](broken{}, -1)
	if !errors.Is(err, errBroken) {
		t.Fatalf("Error %v does not wrap the panic", err)
	}
}

func TestWrap(t *testing.T) {
	if have, err := Wrap[int8](-128, 100); err != nil || have != 72 {
		t.Errorf("int8: have %d, %v", have, err)
	}
	if have, err := Wrap[uint8](250, 7); err != nil || have != 5 {
		t.Errorf("uint8: have %d, %v", have, err)
	}
	if have, err := Wrap[uint64](math.MaxUint64, 10); err != nil || have != 5 {
		t.Errorf("uint64: have %d, %v", have, err)
	}
	if have, err := Wrap[int64](-7, 3); err != nil || have != 2 {
		t.Errorf("int64: have %d, %v", have, err)
	}
	if _, err := Wrap(3, -2); !errors.Is(err, ErrNegativeCount) {
		t.Errorf("Negative count: %v", err)
	}

	for i := -20; i < 20; i++ {
		want, err := Resolve(make(Slice[int], 6), i)
		if err != nil {
			t.Fatal(err)
		}
		have, err := Wrap(int32(i), 6)
		if err != nil {
			t.Fatal(err)
		}
		if int(have) != want {
			t.Errorf("Wrap(%d, 6) = %d, want %d", i, have, want)
		}
	}
}

func TestPure(t *testing.T) {
	s := []string{"x", "y", "z"}
	orig := slices.Clone(s)

	MustElementAt(Slice[string](s), -2)
	MustResolve(Slice[string](s), 8)
	SliceElementAt(s, 4)

	if !slices.Equal(s, orig) {
		t.Fatalf("Side effect: slice changed from %v to %v", orig, s)
	}
}
