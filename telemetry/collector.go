package telemetry

import (
	"math"

	"github.com/chewxy/math32"

	"github.com/pthm-cable/rigid/geom"
	"github.com/pthm-cable/rigid/physics"
)

// Collector samples a world at fixed step intervals and produces WindowStats.
type Collector struct {
	runID              string
	windowDurationSec  float64
	windowDurationStep uint64
	dt                 float32

	windowStartStep uint64
	droppedAtStart  float64

	// Reused between flushes
	speeds []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulated seconds
// dt: seconds per step (used for step-to-time conversion)
func NewCollector(runID string, windowDurationSec float64, dt float32) *Collector {
	stepsPerWindow := uint64(math.Round(windowDurationSec / float64(dt)))
	if stepsPerWindow < 1 {
		stepsPerWindow = 1
	}

	return &Collector{
		runID:              runID,
		windowDurationSec:  windowDurationSec,
		windowDurationStep: stepsPerWindow,
		dt:                 dt,
	}
}

// WindowSteps returns the number of steps in a window.
func (c *Collector) WindowSteps() uint64 {
	return c.windowDurationStep
}

// ShouldFlush returns true if enough steps have passed to flush the window.
func (c *Collector) ShouldFlush(currentStep uint64) bool {
	return currentStep-c.windowStartStep >= c.windowDurationStep
}

// Flush samples w, produces a WindowStats for the window ending now and
// starts the next window.
func (c *Collector) Flush(w *physics.World) WindowStats {
	end := w.Steps()
	dropped := w.DroppedTime()

	stats := WindowStats{
		RunID:           c.runID,
		WindowStartStep: c.windowStartStep,
		WindowEndStep:   end,
		SimTimeSec:      float64(end) * float64(c.dt),
		Steps:           int(end - c.windowStartStep),
		DroppedSec:      dropped - c.droppedAtStart,
		Bodies:          len(w.Bodies),
	}

	c.speeds = c.speeds[:0]
	bounds := geom.Smallest()
	var angular, energy float64

	for i := range w.Bodies {
		b := &w.Bodies[i]
		bounds = bounds.Union(b.BBox)

		switch {
		case b.Static:
			stats.Static++
			continue
		case !b.Active:
			stats.Inactive++
			continue
		}

		stats.Dynamic++
		c.speeds = append(c.speeds, float64(b.LinearVelocity.Len()))
		angular += float64(math32.Abs(b.AngularVelocity))
		energy += float64(b.KineticEnergy())
	}

	dist := ComputeDistribution(c.speeds)
	stats.SpeedMean = dist.Mean
	stats.SpeedStd = dist.Std
	stats.SpeedP10 = dist.P10
	stats.SpeedP50 = dist.P50
	stats.SpeedP90 = dist.P90
	stats.SpeedMax = dist.Max
	stats.KineticEnergy = energy
	if stats.Dynamic > 0 {
		stats.AngularSpeedMean = angular / float64(stats.Dynamic)
	}

	if !bounds.IsEmpty() {
		stats.BoundsMinX = float64(bounds.Min.X)
		stats.BoundsMinY = float64(bounds.Min.Y)
		stats.BoundsMaxX = float64(bounds.Max.X)
		stats.BoundsMaxY = float64(bounds.Max.Y)
	}

	c.windowStartStep = end
	c.droppedAtStart = dropped

	return stats
}
