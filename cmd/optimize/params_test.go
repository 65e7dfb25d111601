package main

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/pong/config"
)

func TestParamVectorRoundTrip(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()

	raw := pv.ExtractFromConfig(cfg)
	if len(raw) != pv.Dim() {
		t.Fatalf("extracted %d values, want %d", len(raw), pv.Dim())
	}
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: %v -> %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestApplyToConfigClamps(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()

	pv.ApplyToConfig(cfg, []float64{-1, 10, 3.6, 100})
	if cfg.Genetic.MutationChance != 0.001 {
		t.Errorf("mutation_chance = %v, want lower bound", cfg.Genetic.MutationChance)
	}
	if cfg.Genetic.MutationCoeff != 1.5 {
		t.Errorf("mutation_coeff = %v, want upper bound", cfg.Genetic.MutationCoeff)
	}
	if cfg.Genetic.EliteCount != 4 {
		t.Errorf("elite_count = %d, want 4", cfg.Genetic.EliteCount)
	}
	if cfg.Genetic.TournamentSize != 10 {
		t.Errorf("tournament_size = %d, want 10", cfg.Genetic.TournamentSize)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   int // seconds
		want string
	}{
		{59, "0m59s"},
		{61, "1m01s"},
		{3725, "1h02m05s"},
	}
	for _, tc := range tests {
		if got := formatDuration(time.Duration(tc.in) * time.Second); got != tc.want {
			t.Errorf("formatDuration(%ds) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
