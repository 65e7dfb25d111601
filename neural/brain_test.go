package neural

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/pthm-cable/pong/config"
)

func TestBrainChromosomeRoundTrip(t *testing.T) {
	cfg := config.Default()
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 20; i++ {
		b := RandomBrain(cfg, rng)
		c := b.Chromosome()
		if len(c) != cfg.Derived.ChromosomeLen {
			t.Fatalf("chromosome length %d, want %d", len(c), cfg.Derived.ChromosomeLen)
		}

		rebuilt, err := BrainFromChromosome(cfg, c)
		if err != nil {
			t.Fatalf("BrainFromChromosome: %v", err)
		}
		got := rebuilt.Chromosome()
		for j := range c {
			if got[j] != c[j] {
				t.Fatalf("gene %d: got %v, want %v", j, got[j], c[j])
			}
		}
	}
}

func TestBrainFromChromosomeLengthMismatch(t *testing.T) {
	cfg := config.Default()
	for _, n := range []int{0, cfg.Derived.ChromosomeLen - 1, cfg.Derived.ChromosomeLen + 1} {
		_, err := BrainFromChromosome(cfg, make(Chromosome, n))
		if !errors.Is(err, ErrChromosomeLength) {
			t.Errorf("length %d: err = %v, want ErrChromosomeLength", n, err)
		}
	}
}

func TestBrainStepMatchesRebuilt(t *testing.T) {
	cfg := config.Default()
	b := RandomBrain(cfg, rand.New(rand.NewSource(3)))
	rebuilt, err := BrainFromChromosome(cfg, b.Chromosome())
	if err != nil {
		t.Fatalf("BrainFromChromosome: %v", err)
	}

	perception := []float64{0.4, 0.5, 0.6, -2.2, 2.7}
	if a, c := b.Step(perception), rebuilt.Step(perception); a != c {
		t.Errorf("Step differs after round trip: %v vs %v", a, c)
	}
}

func TestChromosomeClone(t *testing.T) {
	c := Chromosome{1, 2, 3}
	d := c.Clone()
	d[0] = 9
	if c[0] != 1 {
		t.Error("Clone shares storage")
	}
}
