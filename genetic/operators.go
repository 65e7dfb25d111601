package genetic

import (
	"math/rand"

	"github.com/pthm-cable/pong/neural"
)

// Selector picks a parent from an evaluated population.
type Selector interface {
	Select(pop []Individual, rng *rand.Rand) Individual
}

// Roulette selects with probability proportional to fitness. Fitness is
// shifted so the worst individual has weight zero; scores can be negative.
// A population where everyone scored the same is sampled uniformly.
type Roulette struct{}

func (Roulette) Select(pop []Individual, rng *rand.Rand) Individual {
	lowest := pop[0].Fitness
	for _, ind := range pop[1:] {
		lowest = min(lowest, ind.Fitness)
	}

	total := 0.0
	for _, ind := range pop {
		total += ind.Fitness - lowest
	}
	if total <= 0 {
		return pop[rng.Intn(len(pop))]
	}

	spin := rng.Float64() * total
	for _, ind := range pop {
		spin -= ind.Fitness - lowest
		if spin < 0 {
			return ind
		}
	}
	return pop[len(pop)-1]
}

// Tournament samples Size individuals with replacement and returns the fittest.
type Tournament struct {
	Size int
}

func (t Tournament) Select(pop []Individual, rng *rand.Rand) Individual {
	size := t.Size
	if size < 1 {
		size = 2
	}
	winner := pop[rng.Intn(len(pop))]
	for i := 1; i < size; i++ {
		c := pop[rng.Intn(len(pop))]
		if c.Fitness > winner.Fitness {
			winner = c
		}
	}
	return winner
}

// UniformCrossover builds a child taking each gene from either parent with
// equal probability. Parents must have the same length.
func UniformCrossover(a, b neural.Chromosome, rng *rand.Rand) neural.Chromosome {
	child := make(neural.Chromosome, len(a))
	for i := range child {
		if rng.Intn(2) == 0 {
			child[i] = a[i]
		} else {
			child[i] = b[i]
		}
	}
	return child
}

// GaussianMutation perturbs each gene with probability Chance by a normally
// distributed amount scaled by Coeff.
type GaussianMutation struct {
	Chance float64
	Coeff  float64
}

// Mutate modifies c in place and returns the number of genes changed.
func (m GaussianMutation) Mutate(c neural.Chromosome, rng *rand.Rand) int {
	changed := 0
	for i := range c {
		if rng.Float64() < m.Chance {
			c[i] += rng.NormFloat64() * m.Coeff
			changed++
		}
	}
	return changed
}
