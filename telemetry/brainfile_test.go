package telemetry

import (
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/neural"
)

func TestBrainFileRoundTrip(t *testing.T) {
	cfg := config.Default()
	brain := neural.RandomBrain(cfg, rand.New(rand.NewSource(42)))
	want := brain.Chromosome()

	path := filepath.Join(t.TempDir(), "brains", "best.json")
	if err := SaveBrain(path, NewBrainFile(cfg, 12, 34.5, want)); err != nil {
		t.Fatalf("SaveBrain: %v", err)
	}

	bf, err := LoadBrain(path)
	if err != nil {
		t.Fatalf("LoadBrain: %v", err)
	}
	if bf.Generation != 12 || bf.Fitness != 34.5 {
		t.Errorf("unexpected metadata %+v", bf)
	}

	loaded, err := bf.Brain(cfg)
	if err != nil {
		t.Fatalf("Brain: %v", err)
	}
	got := loaded.Chromosome()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("gene %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBrainFileTopologyMismatch(t *testing.T) {
	cfg := config.Default()
	bf := NewBrainFile(cfg, 0, 0, make(neural.Chromosome, cfg.Derived.ChromosomeLen))

	other := config.Default()
	other.Neural.Hidden = 4
	if _, err := bf.Brain(other); err == nil {
		t.Error("expected topology mismatch error")
	}
}

func TestLoadBrainMissing(t *testing.T) {
	if _, err := LoadBrain(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
