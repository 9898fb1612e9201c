// Package db stores named rings and their cursors in a BoltDB file.
package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"looping/internal/loop"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.etcd.io/bbolt"
)

var (
	bucketRings = []byte("rings")
)

var ErrNotFound = errors.New("db: ring not found")

var db *bbolt.DB

func Open(config Config) {
	if db != nil {
		panic("db: already opened")
	}
	if config.File == "" {
		panic("db: file is required")
	}

	err := os.MkdirAll(filepath.Dir(config.File), 0755)
	if err != nil {
		panic(fmt.Errorf("db: create db dir: %w", err))
	}

	db, err = bbolt.Open(config.File, 0600, &bbolt.Options{
		Timeout: 30 * time.Second,
	})
	if err != nil {
		panic(fmt.Errorf("db: open bbolt db: %w", err))
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRings)
		if err != nil {
			return fmt.Errorf("create bucket %q: %w", bucketRings, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		db = nil
		panic(fmt.Errorf("db: initialize buckets: %w", err))
	}
}

func Close() error {
	if db == nil {
		panic("db: not opened")
	}

	err := db.Close()
	if err != nil {
		return fmt.Errorf("db: close bbolt db: %w", err)
	}
	db = nil
	return nil
}

type closerFunc func() error

func (f closerFunc) Close() error {
	return f()
}

func Closer() io.Closer {
	return closerFunc(Close)
}

// Ring is a named carousel of items with a cursor pointing at the current one.
type Ring struct {
	Items  []string `json:"items"`
	Cursor int      `json:"cursor"`
}

func (r Ring) Len() int        { return len(r.Items) }
func (r Ring) At(i int) string { return r.Items[i] }
func (r Ring) Current() string { return r.Items[r.Cursor] }

func (r Ring) offset(d int) (int, error) {
	// Reduce d first so Cursor+d cannot overflow.
	d, err := loop.Resolve(r, d)
	if err != nil {
		return 0, err
	}
	return loop.Resolve(r, r.Cursor+d)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(fmt.Errorf("db: must: %w", err))
	}
	return v
}

func modify(name string, modify func(*Ring, bool) (*Ring, error)) error {
	if db == nil {
		panic("db: not opened")
	}

	return db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketRings)
		if b == nil {
			return fmt.Errorf("db: rings bucket not found")
		}

		var ring *Ring
		exists := false

		data := b.Get([]byte(name))
		if data == nil {
			ring = &Ring{}
		} else {
			err := json.Unmarshal(data, &ring)
			if err != nil {
				return fmt.Errorf("db: unmarshal ring %q: %w", name, err)
			}
			exists = true
		}

		var err error
		if ring, err = modify(ring, exists); err != nil {
			return fmt.Errorf("db: modify ring %q: %w", name, err)
		}

		if ring == nil {
			if !exists {
				return nil
			}
			return b.Delete([]byte(name))
		}
		return b.Put([]byte(name), must(json.Marshal(ring)))
	})
}

// Put creates or replaces the items of a ring.
// The cursor of an existing ring is resolved against the new items.
func Put(name string, items []string) error {
	if len(items) == 0 {
		return fmt.Errorf("db: put ring %q: %w", name, loop.ErrEmpty)
	}

	return modify(name, func(ring *Ring, exists bool) (*Ring, error) {
		cursor := 0
		if exists {
			var err error
			if cursor, err = loop.ResolveSlice(items, ring.Cursor); err != nil {
				return nil, err
			}
		}

		return &Ring{
			Items:  slices.Clone(items),
			Cursor: cursor,
		}, nil
	})
}

// Seed puts the rings that do not exist yet. Existing rings are left untouched.
func Seed(rings map[string][]string) error {
	for _, name := range slices.Sorted(maps.Keys(rings)) {
		items := rings[name]
		err := modify(name, func(ring *Ring, exists bool) (*Ring, error) {
			if exists {
				return ring, nil
			}
			if len(items) == 0 {
				return nil, loop.ErrEmpty
			}
			return &Ring{Items: slices.Clone(items)}, nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func Delete(name string) error {
	return modify(name, func(_ *Ring, exists bool) (*Ring, error) {
		if !exists {
			return nil, ErrNotFound
		}
		return nil, nil
	})
}

func Get(name string) (Ring, error) {
	if db == nil {
		panic("db: not opened")
	}

	var ring Ring
	err := db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketRings)
		if b == nil {
			return fmt.Errorf("db: rings bucket not found")
		}

		data := b.Get([]byte(name))
		if data == nil {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}

		err := json.Unmarshal(data, &ring)
		if err != nil {
			return fmt.Errorf("db: unmarshal ring %q: %w", name, err)
		}
		return nil
	})
	return ring, err
}

func move(name string, cursor func(Ring) (int, error)) (int, string, error) {
	var (
		index int
		item  string
	)
	err := modify(name, func(ring *Ring, exists bool) (*Ring, error) {
		if !exists {
			return nil, ErrNotFound
		}

		c, err := cursor(*ring)
		if err != nil {
			return nil, err
		}

		ring.Cursor = c
		index, item = c, ring.Current()
		return ring, nil
	})
	return index, item, err
}

// Step moves the cursor of a ring by delta positions, wrapping around
// either end, and returns the new cursor and current item.
func Step(name string, delta int) (int, string, error) {
	return move(name, func(ring Ring) (int, error) {
		return ring.offset(delta)
	})
}

// Seek moves the cursor of a ring to the looping index i.
func Seek(name string, i int) (int, string, error) {
	return move(name, func(ring Ring) (int, error) {
		return loop.Resolve(ring, i)
	})
}

// Peek returns the item offset positions away from the cursor without moving it.
func Peek(name string, offset int) (int, string, error) {
	ring, err := Get(name)
	if err != nil {
		return 0, "", err
	}

	i, err := ring.offset(offset)
	if err != nil {
		return 0, "", fmt.Errorf("db: peek ring %q: %w", name, err)
	}
	return i, ring.At(i), nil
}

func Names() []string {
	var names []string
	for name := range All() {
		names = append(names, name)
	}
	return names
}

var errStop = fmt.Errorf("stop iteration")

func All() iter.Seq2[string, Ring] {
	if db == nil {
		panic("db: not opened")
	}

	return func(yield func(string, Ring) bool) {
		err := db.View(func(tx *bbolt.Tx) error {
			b := tx.Bucket(bucketRings)
			if b == nil {
				return fmt.Errorf("db: rings bucket not found")
			}

			return b.ForEach(func(k, v []byte) error {
				var ring Ring
				err := json.Unmarshal(v, &ring)
				if err != nil {
					return fmt.Errorf("db: unmarshal ring %q: %w", k, err)
				}

				if !yield(string(k), ring) {
					return errStop
				}
				return nil
			})
		})

		if err != nil {
			if errors.Is(err, errStop) {
				return
			}
			panic(fmt.Errorf("db: get all rings: %w", err))
		}
	}
}
