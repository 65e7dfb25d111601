// Package main trains paddle brains headlessly and evaluates saved ones.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/genetic"
	"github.com/pthm-cable/pong/player"
	"github.com/pthm-cable/pong/telemetry"
	"github.com/pthm-cable/pong/trainer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml or config.toml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	generations := flag.Int("generations", -1, "Generations to train (0 = until interrupted, -1 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config snapshot and best brain")
	dbPath := flag.String("db", "", "SQLite file recording the run history (empty = disabled)")
	from := flag.String("from", "", "Brain file seeding the first generation")
	evaluate := flag.String("evaluate", "", "Score a saved brain instead of training")
	trials := flag.Int("trials", 10, "Games per evaluation")
	logPerf := flag.Bool("log-perf", false, "Log tick timing every generation")

	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *generations >= 0 {
		cfg.Training.Generations = *generations
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *evaluate != "" {
		if err := runEvaluate(cfg, rng, *evaluate, *trials); err != nil {
			slog.Error("evaluation failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := runTrain(ctx, cfg, rng, rngSeed, *outputDir, *dbPath, *from, *logPerf); err != nil {
		slog.Error("training failed", "error", err)
		os.Exit(1)
	}
}

func runTrain(ctx context.Context, cfg *config.Config, rng *rand.Rand, seed int64, outputDir, dbPath, from string, logPerf bool) error {
	ga, err := genetic.New(cfg)
	if err != nil {
		return fmt.Errorf("configuring genetic algorithm: %w", err)
	}

	out, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	var history *telemetry.HistoryStore
	var runID string
	if dbPath != "" {
		history = telemetry.NewHistoryStore(dbPath)
		if err := history.Init(ctx); err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer history.Close()
		if runID, err = history.StartRun(ctx, seed, cfg); err != nil {
			return fmt.Errorf("starting run: %w", err)
		}
	}

	var sim *trainer.Simulation
	if from != "" {
		bf, err := telemetry.LoadBrain(from)
		if err != nil {
			return err
		}
		if _, err := bf.Brain(cfg); err != nil {
			return fmt.Errorf("seed brain %s: %w", from, err)
		}
		pop := ga.SeedPopulation(rng, bf.Chromosome, cfg.Training.Population)
		if sim, err = trainer.NewSimulationFrom(cfg, rng, ga, pop); err != nil {
			return err
		}
		slog.Info("seeded population", "from", from, "generation", bf.Generation, "fitness", bf.Fitness)
	} else {
		sim = trainer.NewSimulation(cfg, rng, ga)
	}
	defer sim.Close()

	slog.Info("starting training",
		"seed", seed,
		"run_id", runID,
		"population", cfg.Training.Population,
		"generations", cfg.Training.Generations,
		"output_dir", out.Dir(),
	)

	perf := telemetry.NewPerfCollector(cfg.Physics.TicksPerSecond * 10)
	best := math.Inf(-1)
	err = sim.Run(ctx, cfg.Training.Generations, perf, func(r *trainer.GenerationReport) error {
		stats := telemetry.NewGenerationStats(r.Generation, r.Stats, r.Ticks, r.Duration)
		if err := out.WriteGeneration(stats); err != nil {
			return err
		}
		ps := perf.Stats()
		if err := out.WritePerf(ps, r.Generation); err != nil {
			return err
		}
		if logPerf {
			ps.LogStats()
		}
		if history != nil {
			if err := history.SaveGeneration(ctx, runID, stats, r.Best); err != nil {
				return err
			}
		}
		if r.Stats.Best > best {
			best = r.Stats.Best
			if err := out.WriteBestBrain(telemetry.NewBrainFile(cfg, r.Generation, best, r.Best)); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, context.Canceled) {
		slog.Info("training interrupted", "generation", sim.Generation())
		err = nil
	}
	if err != nil {
		return err
	}

	slog.Info("training complete", "generations", sim.Generation(), "best", best)
	return nil
}

// runEvaluate plays trials single-player training games with a saved brain.
func runEvaluate(cfg *config.Config, rng *rand.Rand, path string, trials int) error {
	bf, err := telemetry.LoadBrain(path)
	if err != nil {
		return err
	}
	brain, err := bf.Brain(cfg)
	if err != nil {
		return fmt.Errorf("brain %s: %w", path, err)
	}

	var total float64
	for i := 0; i < trials; i++ {
		g := trainer.NewSimGameFrom(cfg, player.NewAiPlayer(cfg, brain), rand.New(rand.NewSource(rng.Int63())))
		for !g.Finished() {
			g.Step()
		}
		total += g.Fitness()
		slog.Info("trial", "trial", i, "fitness", g.Fitness(), "ticks", g.Ticks())
	}

	mean := 0.0
	if trials > 0 {
		mean = total / float64(trials)
	}
	slog.Info("evaluation complete", "brain", path, "trials", trials, "mean_fitness", mean)
	return nil
}
