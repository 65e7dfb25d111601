package telemetry

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/neural"
)

func TestHistoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewHistoryStore(filepath.Join(t.TempDir(), "history.db"))
	if err := store.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer store.Close()

	runID, err := store.StartRun(ctx, 42, config.Default())
	if err != nil {
		t.Fatalf("StartRun: %v", err)
	}
	if runID == "" {
		t.Fatal("empty run id")
	}

	bests := []float64{-4, 7, 3}
	for gen, best := range bests {
		stats := GenerationStats{Generation: gen, Best: best, Worst: -10, Ticks: 50}
		chrom := neural.Chromosome{best, 0.125, -1}
		if err := store.SaveGeneration(ctx, runID, stats, chrom); err != nil {
			t.Fatalf("SaveGeneration: %v", err)
		}
	}

	gens, err := store.Generations(ctx, runID)
	if err != nil {
		t.Fatalf("Generations: %v", err)
	}
	if len(gens) != len(bests) {
		t.Fatalf("got %d generations, want %d", len(gens), len(bests))
	}
	for i, g := range gens {
		if g.Generation != i || g.Best != bests[i] {
			t.Errorf("generation %d: %+v", i, g)
		}
	}

	c, fitness, ok, err := store.BestChromosome(ctx, runID)
	if err != nil || !ok {
		t.Fatalf("BestChromosome: ok=%v err=%v", ok, err)
	}
	if fitness != 7 || len(c) != 3 || c[0] != 7 || c[1] != 0.125 {
		t.Errorf("best = %v (%v)", c, fitness)
	}

	if _, _, ok, err := store.BestChromosome(ctx, "unknown"); ok || err != nil {
		t.Errorf("unknown run: ok=%v err=%v", ok, err)
	}
}

func TestHistoryStoreRequiresInit(t *testing.T) {
	store := NewHistoryStore("")
	if err := store.Init(context.Background()); err == nil {
		t.Error("expected error for empty path")
	}
	if _, err := store.StartRun(context.Background(), 1, config.Default()); err == nil {
		t.Error("expected error before Init")
	}
}
