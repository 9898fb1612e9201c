package rotate

import (
	"context"
	"errors"
	"fmt"
	"looping/internal/loop"
	"slices"
	"sync"
	"testing"
	"time"
)

type fakeRings struct {
	mx      sync.Mutex
	rings   map[string]loop.Slice[string]
	cursors map[string]int
	calls   int
}

func (f *fakeRings) names() []string {
	return []string{"ab", "missing", "xyz"}
}

func (f *fakeRings) step(name string, delta int) (int, string, error) {
	f.mx.Lock()
	defer f.mx.Unlock()

	f.calls++
	ring, ok := f.rings[name]
	if !ok {
		return 0, "", fmt.Errorf("ring %q: %w", name, errors.ErrUnsupported)
	}

	i, err := loop.Resolve(ring, f.cursors[name]+delta)
	if err != nil {
		return 0, "", err
	}
	f.cursors[name] = i
	return i, ring.At(i), nil
}

func newFake() *fakeRings {
	return &fakeRings{
		rings: map[string]loop.Slice[string]{
			"ab":  {"a", "b"},
			"xyz": {"x", "y", "z"},
		},
		cursors: map[string]int{},
	}
}

func TestTick(t *testing.T) {
	f := newFake()
	r := New(Config{Interval: time.Hour, Step: -1}, f.names, f.step)

	r.Tick(context.Background())
	r.Tick(context.Background())

	if have, want := f.cursors["ab"], 0; have != want {
		t.Errorf("ab cursor %d != %d", have, want)
	}
	if have, want := f.cursors["xyz"], 1; have != want {
		t.Errorf("xyz cursor %d != %d", have, want)
	}
	if have, want := f.calls, 6; have != want {
		t.Errorf("Calls %d != %d", have, want)
	}
}

func TestFixedRings(t *testing.T) {
	f := newFake()
	r := New(Config{Interval: time.Hour, Rings: []string{"xyz"}}, nil, f.step)

	r.Tick(context.Background())

	if have, want := f.cursors["xyz"], 1; have != want {
		t.Errorf("xyz cursor %d != %d", have, want)
	}
	if _, ok := f.cursors["ab"]; ok {
		t.Errorf("ab should not be advanced")
	}
	if have, want := r.rings(), []string{"xyz"}; !slices.Equal(have, want) {
		t.Errorf("Rings %v != %v", have, want)
	}
}

func TestRun(t *testing.T) {
	f := newFake()
	r := New(Config{Interval: time.Millisecond}, f.names, f.step)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	deadline := time.After(5 * time.Second)
	for {
		f.mx.Lock()
		calls := f.calls
		f.mx.Unlock()
		if calls >= 6 {
			break
		}

		select {
		case <-deadline:
			t.Fatal("Rotator did not tick")
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatal(err)
	}
}

func TestNewPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Did not panic")
		}
	}()
	New(Config{}, nil, nil)
}
