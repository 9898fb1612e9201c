package server

import (
	"fmt"
	"hash/fnv"
	"io"
	"looping/internal/loop"
	"net"
	"net/http"
	"time"
)

type antidos struct {
	buckets []*time.Ticker
}

func newAntidos(buckets int, period time.Duration) *antidos {
	b := make([]*time.Ticker, buckets)
	for i := range buckets {
		b[i] = time.NewTicker(period)
	}

	return &antidos{
		buckets: b,
	}
}

// bucket picks the ticker shared by every request from the same host.
func (a *antidos) bucket(r *http.Request) *time.Ticker {
	var sum uint64
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		h := fnv.New64()
		io.WriteString(h, host)
		sum = h.Sum64()
	}

	i, err := loop.Wrap(sum, uint64(len(a.buckets)))
	if err != nil {
		panic(fmt.Errorf("server: antidos bucket: %w", err))
	}
	return a.buckets[i]
}

func (a *antidos) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-a.bucket(r).C:
		case <-r.Context().Done():
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (a *antidos) stop() {
	for _, t := range a.buckets {
		t.Stop()
	}
}
