package server

import (
	"fmt"
	"looping/internal/ctxlog"
	"net/http"
)

func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}

				log := ctxlog.Get(r.Context())
				log.Error("recovered panic", "error", v)

				clear(w.Header())
				writeError(w, r, http.StatusInternalServerError, fmt.Errorf("internal error"))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
