// Package rotate advances rings on a fixed schedule, like an auto-playing carousel.
package rotate

import (
	"context"
	"looping/internal/ctxlog"
	"time"
)

type Config struct {
	Interval time.Duration `yaml:"interval"`
	// Rings lists the rings to advance. Empty means every stored ring.
	Rings []string `yaml:"rings"`
	// Step is the number of positions per tick. Zero means 1; negative steps go backwards.
	Step int `yaml:"step"`
}

// StepFunc moves the cursor of a ring by delta positions.
type StepFunc func(name string, delta int) (int, string, error)

type Rotator struct {
	interval time.Duration
	rings    func() []string
	step     int
	stepFunc StepFunc
}

func New(config Config, names func() []string, step StepFunc) *Rotator {
	if config.Interval <= 0 {
		panic("rotate: interval must be positive")
	}
	if step == nil {
		panic("rotate: step func is required")
	}

	rings := names
	if len(config.Rings) > 0 {
		fixed := config.Rings
		rings = func() []string { return fixed }
	}
	if rings == nil {
		panic("rotate: rings are required")
	}

	n := config.Step
	if n == 0 {
		n = 1
	}

	return &Rotator{
		interval: config.Interval,
		rings:    rings,
		step:     n,
		stepFunc: step,
	}
}

// Tick advances every ring once. Failures are logged and do not stop the other rings.
func (r *Rotator) Tick(ctx context.Context) {
	logger := ctxlog.Get(ctx)

	for _, name := range r.rings() {
		index, item, err := r.stepFunc(name, r.step)
		if err != nil {
			logger.Error("failed to advance ring", "ring", name, "error", err)
			continue
		}
		logger.Debug("advanced ring", "ring", name, "index", index, "item", item)
	}
}

// Run ticks until ctx is done.
func (r *Rotator) Run(ctx context.Context) error {
	logger := ctxlog.Get(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	logger.Info("rotator is running", "interval", r.interval.String(), "step", r.step)

	for {
		select {
		case <-ctx.Done():
			logger.Info("rotator stopped")
			return nil

		case <-ticker.C:
			r.Tick(ctx)
		}
	}
}
