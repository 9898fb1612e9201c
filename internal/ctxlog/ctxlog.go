// Package ctxlog provides context-aware structured logging utilities.
package ctxlog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	// Dir receives a log file per run when set.
	Dir   string `yaml:"dir"`
	Level string `yaml:"level"`
}

func (c Config) level() (slog.Level, error) {
	var l slog.Level
	if c.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(c.Level)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.Level, err)
	}
	return l, nil
}

var setup = false

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup installs the default JSON logger for the named program and stores it in ctx.
// Log output goes to stderr and, if config.Dir is set, to a new file in that directory.
func Setup(ctx context.Context, name string, config Config) (context.Context, io.Closer) {
	if setup {
		return Store(ctx, slog.Default()), nopCloser{}
	}

	level, err := config.level()
	if err != nil {
		panic(fmt.Errorf("ctxlog: %w", err))
	}

	var (
		w      io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if config.Dir != "" {
		err := os.MkdirAll(config.Dir, 0755)
		if err != nil {
			panic(fmt.Errorf("ctxlog: create log dir: %w", err))
		}

		logFile, err := os.Create(filepath.Join(config.Dir, name+"-"+time.Now().Format("2006-01-02-15-04-05.log")))
		if err != nil {
			panic(fmt.Errorf("ctxlog: create log file: %w", err))
		}

		w = io.MultiWriter(os.Stderr, logFile)
		closer = logFile
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})).With("program", name)
	slog.SetDefault(logger)

	setup = true

	return Store(ctx, logger), closer
}

type ctxKey struct{}

var key ctxKey

func Store(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, key, log)
}

func Get(ctx context.Context) *slog.Logger {
	log, ok := ctx.Value(key).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return log
}

func Close(ctx context.Context, name string, closer io.Closer) error {
	logger := Get(ctx)
	err := closer.Close()
	if err != nil {
		logger.Error("failed to close", "closer", name, "error", err)
		return err
	}
	return nil
}

func With(ctx context.Context, kv ...any) context.Context {
	return Store(ctx, Get(ctx).With(kv...))
}
