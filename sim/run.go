package sim

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// RunOptions controls how long and how fast Run drives the sim.
type RunOptions struct {
	// Realtime paces stepping by the wall clock through the accumulator.
	// Otherwise steps run back to back.
	Realtime bool

	MaxTicks    uint64        // stop after this many steps (0 = unlimited)
	Duration    time.Duration // stop after this much wall-clock time (0 = unlimited)
	ReportEvery time.Duration // progress log interval (0 = disabled)
}

// Run steps the sim until ctx is cancelled or a limit in opts is reached.
// Cancellation is a normal stop and returns nil.
func (s *Sim) Run(ctx context.Context, opts RunOptions) error {
	if opts.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Duration)
		defer cancel()
	}
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	var published atomic.Uint64
	published.Store(s.Steps())

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer stop()
		if opts.Realtime {
			s.realtimeLoop(ctx, opts.MaxTicks, &published)
		} else {
			s.fastLoop(ctx, opts.MaxTicks, &published)
		}
		return nil
	})
	if opts.ReportEvery > 0 {
		eg.Go(func() error {
			reportLoop(ctx, opts.ReportEvery, &published)
			return nil
		})
	}

	err := eg.Wait()
	slog.Info("run finished", "run_id", s.runID, "steps", s.Steps(), "dropped_s", s.world.DroppedTime())
	return err
}

func (s *Sim) fastLoop(ctx context.Context, maxTicks uint64, published *atomic.Uint64) {
	for {
		if maxTicks > 0 && s.Steps() >= maxTicks {
			slog.Info("max ticks reached", "tick", s.Steps())
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}

		s.Tick()
		published.Store(s.Steps())
	}
}

func (s *Sim) realtimeLoop(ctx context.Context, maxTicks uint64, published *atomic.Uint64) {
	interval := time.Duration(s.cfg.Stepping.Timestep * float64(time.Second))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Update(now.Sub(last).Seconds())
			last = now
			published.Store(s.Steps())

			if maxTicks > 0 && s.Steps() >= maxTicks {
				slog.Info("max ticks reached", "tick", s.Steps())
				return
			}
		}
	}
}

// reportLoop logs step throughput until ctx is done.
func reportLoop(ctx context.Context, every time.Duration, published *atomic.Uint64) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	prev := published.Load()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := published.Load()
			slog.Info("progress",
				"steps", cur,
				"steps_per_sec", float64(cur-prev)/every.Seconds(),
			)
			prev = cur
		}
	}
}
