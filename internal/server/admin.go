package server

import (
	"crypto/subtle"
	"net/http"
)

const adminKeyHeader = "X-Admin-Key"

type admin struct {
	key string
}

func newAdmin(key string) *admin {
	return &admin{
		key: key,
	}
}

func (a *admin) middleware(next http.Handler) http.Handler {
	if a.key == "" {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if subtle.ConstantTimeCompare([]byte(r.Header.Get(adminKeyHeader)), []byte(a.key)) == 1 {
			next.ServeHTTP(w, r)
			return
		}

		writeError(w, r, http.StatusForbidden, errForbidden)
	})
}
