package neural

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/pthm-cable/pong/config"
)

// ErrChromosomeLength is returned when a chromosome does not fit the configured topology.
var ErrChromosomeLength = errors.New("chromosome length does not match brain topology")

// Chromosome is the flat, ordered list of every weight and bias of a brain.
type Chromosome []float64

// Clone returns an independent copy.
func (c Chromosome) Clone() Chromosome {
	return append(Chromosome(nil), c...)
}

// Brain wraps the network that turns a perception vector into a move decision.
type Brain struct {
	network *FFNN
}

// Topology returns the layer sizes for the configured brain:
// perception inputs, one hidden layer, outputs.
func Topology(cfg *config.Config) []int {
	return []int{cfg.Neural.Inputs, cfg.Neural.Hidden, cfg.Neural.Outputs}
}

// RandomBrain creates a brain with a freshly initialized network.
func RandomBrain(cfg *config.Config, rng *rand.Rand) *Brain {
	return &Brain{network: NewFFNN(rng, Topology(cfg))}
}

// BrainFromChromosome rebuilds a brain from its chromosome.
func BrainFromChromosome(cfg *config.Config, c Chromosome) (*Brain, error) {
	network, err := NewFFNNFromWeights(Topology(cfg), c)
	if err != nil {
		if errors.Is(err, ErrWeightCount) {
			return nil, fmt.Errorf("%w: got %d, want %d", ErrChromosomeLength, len(c), cfg.Derived.ChromosomeLen)
		}
		return nil, fmt.Errorf("building brain: %w", err)
	}
	return &Brain{network: network}, nil
}

// Chromosome flattens the brain for genetic recombination.
func (b *Brain) Chromosome() Chromosome {
	return b.network.Weights()
}

// Step runs the perception vector through the network and returns the first output.
func (b *Brain) Step(perception []float64) float64 {
	return b.network.Forward(perception)[0]
}

// Network returns the underlying network.
func (b *Brain) Network() *FFNN {
	return b.network
}
