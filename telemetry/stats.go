// Package telemetry records training progress: per-generation CSV logs,
// saved brains and a SQLite run history.
package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/pong/genetic"
)

// GenerationStats is one row of generations.csv.
type GenerationStats struct {
	Generation int     `csv:"generation"`
	Best       float64 `csv:"best"`
	Worst      float64 `csv:"worst"`
	Mean       float64 `csv:"mean"`
	StdDev     float64 `csv:"stddev"`
	Ticks      int     `csv:"ticks"`
	DurationMS int64   `csv:"duration_ms"`
}

// NewGenerationStats flattens the statistics of a finished generation.
func NewGenerationStats(generation int, s genetic.Statistics, ticks int, d time.Duration) GenerationStats {
	return GenerationStats{
		Generation: generation,
		Best:       s.Best,
		Worst:      s.Worst,
		Mean:       s.Mean,
		StdDev:     s.StdDev,
		Ticks:      ticks,
		DurationMS: d.Milliseconds(),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (g GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", g.Generation),
		slog.Float64("best", g.Best),
		slog.Float64("mean", g.Mean),
		slog.Float64("worst", g.Worst),
		slog.Float64("stddev", g.StdDev),
		slog.Int("ticks", g.Ticks),
		slog.Int64("duration_ms", g.DurationMS),
	)
}
