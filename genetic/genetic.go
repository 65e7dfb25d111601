// Package genetic evolves brain chromosomes from one generation to the next.
package genetic

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/neural"
)

// ErrEmptyPopulation is returned when Evolve is given no individuals.
var ErrEmptyPopulation = errors.New("population is empty")

// Individual is a chromosome paired with the fitness it earned.
type Individual struct {
	Chromosome neural.Chromosome
	Fitness    float64
}

// Statistics summarizes the fitness of one evaluated generation.
type Statistics struct {
	Best   float64
	Worst  float64
	Mean   float64
	StdDev float64
	// BestIndex is the position of the fittest individual in the evaluated population.
	BestIndex int
}

// Summarize computes fitness statistics for a population.
func Summarize(pop []Individual) Statistics {
	if len(pop) == 0 {
		return Statistics{}
	}
	fitness := make([]float64, len(pop))
	for i, ind := range pop {
		fitness[i] = ind.Fitness
	}

	s := Statistics{
		Best:      floats.Max(fitness),
		Worst:     floats.Min(fitness),
		BestIndex: floats.MaxIdx(fitness),
	}
	if len(fitness) == 1 {
		s.Mean = fitness[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(fitness, nil)
	return s
}

// GeneticAlgorithm produces a new generation with elitism, parent selection,
// uniform crossover and gaussian mutation.
type GeneticAlgorithm struct {
	Selector   Selector
	Mutation   GaussianMutation
	EliteCount int
}

// New builds a GeneticAlgorithm from the genetic config section.
func New(cfg *config.Config) (*GeneticAlgorithm, error) {
	sel, err := NewSelector(cfg.Genetic.Selection, cfg.Genetic.TournamentSize)
	if err != nil {
		return nil, err
	}
	return &GeneticAlgorithm{
		Selector: sel,
		Mutation: GaussianMutation{
			Chance: cfg.Genetic.MutationChance,
			Coeff:  cfg.Genetic.MutationCoeff,
		},
		EliteCount: cfg.Genetic.EliteCount,
	}, nil
}

// NewSelector returns the selector registered under name.
func NewSelector(name string, tournamentSize int) (Selector, error) {
	switch name {
	case "", "roulette":
		return Roulette{}, nil
	case "tournament":
		return Tournament{Size: tournamentSize}, nil
	default:
		return nil, fmt.Errorf("unknown selection %q", name)
	}
}

// Evolve returns one child chromosome per individual in pop, along with the
// statistics of the evaluated generation. The fittest EliteCount chromosomes
// are carried over unchanged.
func (ga *GeneticAlgorithm) Evolve(rng *rand.Rand, pop []Individual) ([]neural.Chromosome, Statistics, error) {
	if len(pop) == 0 {
		return nil, Statistics{}, ErrEmptyPopulation
	}
	stats := Summarize(pop)

	order := make([]int, len(pop))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return pop[order[a]].Fitness > pop[order[b]].Fitness
	})

	next := make([]neural.Chromosome, 0, len(pop))
	elite := min(max(ga.EliteCount, 0), len(pop))
	for _, idx := range order[:elite] {
		next = append(next, pop[idx].Chromosome.Clone())
	}

	for len(next) < len(pop) {
		a := ga.Selector.Select(pop, rng)
		b := ga.Selector.Select(pop, rng)
		if len(a.Chromosome) != len(b.Chromosome) {
			return nil, stats, fmt.Errorf("parents differ in length: %d vs %d", len(a.Chromosome), len(b.Chromosome))
		}
		child := UniformCrossover(a.Chromosome, b.Chromosome, rng)
		ga.Mutation.Mutate(child, rng)
		next = append(next, child)
	}

	return next, stats, nil
}

// SeedPopulation returns n chromosomes for a first generation grown from a
// saved one: c itself followed by mutated copies.
func (ga *GeneticAlgorithm) SeedPopulation(rng *rand.Rand, c neural.Chromosome, n int) []neural.Chromosome {
	pop := make([]neural.Chromosome, 0, n)
	for len(pop) < n {
		child := c.Clone()
		if len(pop) > 0 {
			ga.Mutation.Mutate(child, rng)
		}
		pop = append(pop, child)
	}
	return pop
}
