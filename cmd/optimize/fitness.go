package main

import (
	"context"
	"math"
	"math/rand"
	"sync"

	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/genetic"
	"github.com/pthm-cable/pong/neural"
	"github.com/pthm-cable/pong/telemetry"
	"github.com/pthm-cable/pong/trainer"
)

// FitnessEvaluator trains short headless runs and scores the parameters by
// the fitness the population reaches.
type FitnessEvaluator struct {
	params      *ParamVector
	generations int
	seeds       []int64
	baseConfig  *config.Config

	// Best run tracking
	mu          sync.Mutex
	bestFitness float64
	bestBrain   *telemetry.BrainFile
	lastBest    float64 // mean best fitness from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, generations int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		generations: generations,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// BestBrain returns the best brain from the best evaluation.
func (fe *FitnessEvaluator) BestBrain() *telemetry.BrainFile {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestBrain
}

// LastBest returns the mean best fitness from the most recent evaluation.
func (fe *FitnessEvaluator) LastBest() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastBest
}

// runResult holds the results from a single training run.
type runResult struct {
	meanTail  float64 // mean fitness averaged over the last quarter of generations
	best      float64 // best fitness of the last generation
	bestGen   int
	bestBrain neural.Chromosome
	err       error
}

// Evaluate computes the objective for a parameter vector (lower = better):
// the negated mean fitness over the tail of each run, averaged across seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, fe.params.Denormalize(x))

	// Run all seeds in parallel
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runTraining(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var totalTail, totalBest float64
	bestSeed := -1
	for i, r := range results {
		if r.err != nil {
			return math.Inf(1)
		}
		totalTail += r.meanTail
		totalBest += r.best
		if bestSeed < 0 || r.best > results[bestSeed].best {
			bestSeed = i
		}
	}

	n := float64(len(fe.seeds))
	objective := -totalTail / n

	fe.mu.Lock()
	if objective < fe.bestFitness && bestSeed >= 0 {
		fe.bestFitness = objective
		r := results[bestSeed]
		fe.bestBrain = telemetry.NewBrainFile(cfg, r.bestGen, r.best, r.bestBrain)
	}
	fe.lastBest = totalBest / n
	fe.mu.Unlock()

	return objective
}

// runTraining trains one population for fe.generations generations.
func (fe *FitnessEvaluator) runTraining(cfg *config.Config, seed int64) runResult {
	ga, err := genetic.New(cfg)
	if err != nil {
		return runResult{err: err}
	}

	// Seeds already run in parallel.
	runCfg := *cfg
	runCfg.Training.Workers = 1

	sim := trainer.NewSimulation(&runCfg, rand.New(rand.NewSource(seed)), ga)
	defer sim.Close()

	tailFrom := fe.generations - max(fe.generations/4, 1)
	var res runResult
	var tailSum float64
	var tailN int
	err = sim.Run(context.Background(), fe.generations, nil, func(r *trainer.GenerationReport) error {
		if r.Generation >= tailFrom {
			tailSum += r.Stats.Mean
			tailN++
		}
		res.best = r.Stats.Best
		res.bestGen = r.Generation
		res.bestBrain = r.Best
		return nil
	})
	if err != nil {
		return runResult{err: err}
	}
	if tailN > 0 {
		res.meanTail = tailSum / float64(tailN)
	}
	return res
}

// copyConfig returns an independent copy of the base config. Config holds
// no reference fields, so a value copy is enough.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}
