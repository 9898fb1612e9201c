package main

import (
	"context"
	"fmt"
	"looping/internal/config"
	"looping/internal/ctxlog"
	"looping/internal/db"
	"looping/internal/rec"
	"looping/internal/rotate"
	"looping/internal/server"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
)

func run(ctx context.Context, c config.Config) (err error) {
	defer rec.Error(&err)

	logger := ctxlog.Get(ctx)

	logger.Info("opening db")
	db.Open(c.DB)
	defer ctxlog.Close(ctx, "db", db.Closer())

	if err := db.Seed(c.Rings); err != nil {
		return fmt.Errorf("seed rings: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	logger.Info("starting server")
	srv := server.New(c.Server)
	g.Go(func() error {
		return srv.Run(ctx)
	})

	if c.Rotate.Interval > 0 {
		logger.Info("starting rotator")
		rot := rotate.New(c.Rotate, db.Names, db.Step)
		g.Go(func() (err error) {
			defer rec.Error(&err)
			return rot.Run(ctx)
		})
	}

	return g.Wait()
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	file := config.DefaultFile
	if len(os.Args) > 1 {
		file = os.Args[1]
	}

	c, err := config.Load(ctx, file)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	ctx, logFile := ctxlog.Setup(ctx, "ringd", c.Log)
	defer ctxlog.Close(ctx, "log file", logFile)

	logger := ctxlog.Get(ctx)

	err = run(ctx, c)
	if err != nil {
		logger.Error("server stopped unexpectedly", "error", err)
	} else {
		logger.Info("server gracefully stopped")
	}
}
