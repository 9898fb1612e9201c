package server

import (
	"encoding/json"
	"errors"
	"looping/internal/ctxlog"
	"looping/internal/db"
	"looping/internal/loop"
	"net/http"
	"strconv"
)

var (
	errForbidden  = errors.New("forbidden")
	errBadRequest = errors.New("bad request")
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	content, err := json.Marshal(v)
	if err != nil {
		log := ctxlog.Get(r.Context())
		log.Error("failed to encode response", "error", err)
		status = http.StatusInternalServerError
		content = []byte(`{"error":"internal error"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(status)
	if _, err := w.Write(content); err != nil {
		log := ctxlog.Get(r.Context())
		log.Error("failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	writeJSON(w, r, status, errorResponse{Error: err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, errForbidden):
		return http.StatusForbidden
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, loop.ErrEmpty):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// handlerFunc is an http.HandlerFunc that reports failures as errors.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (f handlerFunc) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	err := f(w, r)
	if err == nil {
		return
	}

	status := statusOf(err)
	if status == http.StatusInternalServerError {
		log := ctxlog.Get(r.Context())
		log.Error("request failed", "error", err)
	}
	writeError(w, r, status, err)
}
