// Package server exposes the ring store over HTTP as a carousel service.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"looping/internal/ctxlog"
	"looping/internal/db"
	"net"
	"net/http"
	"time"
)

type Server struct {
	addr            string
	handler         http.Handler
	shutdownTimeout time.Duration
	anti            *antidos
}

func notFound(w http.ResponseWriter, r *http.Request) error {
	return fmt.Errorf("%w: %s", db.ErrNotFound, r.URL.Path)
}

func New(config Config) *Server {
	if config.Port == 0 {
		panic("server: port is required")
	}
	if config.AntidosBuckets == 0 {
		panic("server: antidosBuckets is required")
	}
	if config.AntidosPeriod == 0 {
		panic("server: antidosPeriod is required")
	}
	if config.ShutdownTimeout == 0 {
		panic("server: shutdownTimeout is required")
	}

	anti := newAntidos(config.AntidosBuckets, config.AntidosPeriod)
	adm := newAdmin(config.AdminKey)

	mux := http.NewServeMux()

	for _, route := range []struct {
		pattern string
		handler http.Handler
		write   bool
	}{
		{"GET /rings", handlerFunc(listRings), false},
		{"GET /rings/{name}", handlerFunc(getRing), false},
		{"GET /rings/{name}/at/{index}", handlerFunc(ringAt), false},
		{"GET /rings/{name}/peek/{offset}", itemHandler(db.Peek, "offset", 0), false},
		{"POST /rings/{name}/next", itemHandler(db.Step, "", 1), true},
		{"POST /rings/{name}/prev", itemHandler(db.Step, "", -1), true},
		{"POST /rings/{name}/seek/{index}", itemHandler(db.Seek, "index", 0), true},
		{"PUT /rings/{name}", handlerFunc(putRing), true},
		{"DELETE /rings/{name}", handlerFunc(deleteRing), true},
		{"/", handlerFunc(notFound), false},
	} {
		h := route.handler
		if route.write {
			h = adm.middleware(h)
		}

		slog.Info("registering handler", "pattern", route.pattern, "admin", route.write && config.AdminKey != "")
		mux.Handle(route.pattern, h)
	}

	handler := http.Handler(mux)
	handler = anti.middleware(handler)
	handler = recoverMiddleware(handler)
	handler = logMiddleware(handler)

	return &Server{
		addr:            fmt.Sprintf("0.0.0.0:%d", config.Port),
		handler:         handler,
		shutdownTimeout: config.ShutdownTimeout,
		anti:            anti,
	}
}

func (s *Server) Run(ctx context.Context) error {
	logger := ctxlog.Get(ctx)
	defer s.anti.stop()

	srv := &http.Server{
		Addr:        s.addr,
		Handler:     s.handler,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	serveErrCh := make(chan error, 1)
	go func() {
		logger.Info("server is running", "addr", s.addr)
		serveErrCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErrCh:
		return fmt.Errorf("server: listen: %w", err)
	}

	logger.Info("server is shutting down")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer stopCancel()
	shutdownErr := srv.Shutdown(stopCtx)

	if errors.Is(shutdownErr, context.DeadlineExceeded) {
		logger.Error("server shutdown timeout exceeded")
	} else if shutdownErr == nil {
		logger.Info("all clients closed successfully")
	}

	serveErr := <-serveErrCh
	if errors.Is(serveErr, http.ErrServerClosed) {
		serveErr = nil
	}

	return errors.Join(serveErr, shutdownErr)
}
