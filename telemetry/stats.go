package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of simulated time.
type WindowStats struct {
	RunID           string  `csv:"run_id"`
	WindowStartStep uint64  `csv:"-"`
	WindowEndStep   uint64  `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Stepping during window
	Steps      int     `csv:"steps"`
	DroppedSec float64 `csv:"dropped_s"` // simulated time discarded by the step budget

	// Body counts at window end
	Bodies   int `csv:"bodies"`
	Dynamic  int `csv:"dynamic"`
	Static   int `csv:"static"`
	Inactive int `csv:"inactive"`

	// Linear speed distribution over dynamic bodies
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
	SpeedMax  float64 `csv:"speed_max"`

	AngularSpeedMean float64 `csv:"angular_speed_mean"`
	KineticEnergy    float64 `csv:"kinetic_energy"`

	// Union of all body bounding boxes
	BoundsMinX float64 `csv:"bounds_min_x"`
	BoundsMinY float64 `csv:"bounds_min_y"`
	BoundsMaxX float64 `csv:"bounds_max_x"`
	BoundsMaxY float64 `csv:"bounds_max_y"`
}

// Distribution summarises a sample.
type Distribution struct {
	Mean float64
	Std  float64 // population standard deviation
	P10  float64
	P50  float64
	P90  float64
	Max  float64
}

// ComputeDistribution calculates mean, std, max and empirical percentiles.
// values is sorted in place. Returns the zero Distribution for no values.
func ComputeDistribution(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}

	sort.Float64s(values)
	mean, std := stat.PopMeanStdDev(values, nil)

	return Distribution{
		Mean: mean,
		Std:  std,
		P10:  stat.Quantile(0.10, stat.Empirical, values, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, values, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, values, nil),
		Max:  floats.Max(values),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("run_id", s.RunID),
		slog.Uint64("window_start", s.WindowStartStep),
		slog.Uint64("window_end", s.WindowEndStep),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("steps", s.Steps),
		slog.Float64("dropped_s", s.DroppedSec),
		slog.Int("bodies", s.Bodies),
		slog.Int("dynamic", s.Dynamic),
		slog.Int("static", s.Static),
		slog.Int("inactive", s.Inactive),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_max", s.SpeedMax),
		slog.Float64("angular_speed_mean", s.AngularSpeedMean),
		slog.Float64("kinetic_energy", s.KineticEnergy),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndStep,
		"sim_time", s.SimTimeSec,
		"steps", s.Steps,
		"dropped_s", s.DroppedSec,
		"bodies", s.Bodies,
		"dynamic", s.Dynamic,
		"static", s.Static,
		"inactive", s.Inactive,
		"speed_mean", s.SpeedMean,
		"speed_p10", s.SpeedP10,
		"speed_p50", s.SpeedP50,
		"speed_p90", s.SpeedP90,
		"speed_max", s.SpeedMax,
		"angular_speed_mean", s.AngularSpeedMean,
		"kinetic_energy", s.KineticEnergy,
		"bounds", []float64{s.BoundsMinX, s.BoundsMinY, s.BoundsMaxX, s.BoundsMaxY},
	)
}
