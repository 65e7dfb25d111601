package trainer

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/genetic"
	"github.com/pthm-cable/pong/neural"
	"github.com/pthm-cable/pong/player"
	"github.com/pthm-cable/pong/telemetry"
)

// Evolver turns an evaluated population into the next generation's
// chromosomes, one per individual.
type Evolver interface {
	Evolve(rng *rand.Rand, pop []genetic.Individual) ([]neural.Chromosome, genetic.Statistics, error)
}

// GenerationReport summarizes a finished generation.
type GenerationReport struct {
	Generation int
	Stats      genetic.Statistics
	Best       neural.Chromosome
	Ticks      int
	Duration   time.Duration
}

// Simulation runs a population of SimGames in lockstep and evolves them once
// every game has finished.
type Simulation struct {
	cfg     *config.Config
	rng     *rand.Rand
	evolver Evolver

	world    *ecs.World
	games    *ecs.Map1[SimGame]
	filter   *ecs.Filter1[SimGame]
	entities []ecs.Entity // creation order

	active []*SimGame
	pool   *workerPool

	generation int
	ticks      int
	started    time.Time
}

// NewSimulation creates a simulation with training.population random brains.
func NewSimulation(cfg *config.Config, rng *rand.Rand, evolver Evolver) *Simulation {
	s := newSimulation(cfg, rng, evolver)
	for i := 0; i < cfg.Training.Population; i++ {
		s.spawn(NewSimGame(cfg, rng))
	}
	return s
}

// NewSimulationFrom seeds the first generation with the given chromosomes.
func NewSimulationFrom(cfg *config.Config, rng *rand.Rand, evolver Evolver, chromosomes []neural.Chromosome) (*Simulation, error) {
	s := newSimulation(cfg, rng, evolver)
	if err := s.populate(chromosomes); err != nil {
		return nil, err
	}
	return s, nil
}

func newSimulation(cfg *config.Config, rng *rand.Rand, evolver Evolver) *Simulation {
	world := ecs.NewWorld()
	return &Simulation{
		cfg:     cfg,
		rng:     rng,
		evolver: evolver,
		world:   world,
		games:   ecs.NewMap1[SimGame](world),
		filter:  ecs.NewFilter1[SimGame](world),
		pool:    newWorkerPool(cfg.Training.Workers),
		started: time.Now(),
	}
}

func (s *Simulation) spawn(g *SimGame) {
	s.entities = append(s.entities, s.games.NewEntity(g))
}

func (s *Simulation) populate(chromosomes []neural.Chromosome) error {
	for i, c := range chromosomes {
		brain, err := neural.BrainFromChromosome(s.cfg, c)
		if err != nil {
			return fmt.Errorf("individual %d: %w", i, err)
		}
		gameRng := rand.New(rand.NewSource(s.rng.Int63()))
		s.spawn(NewSimGameFrom(s.cfg, player.NewAiPlayer(s.cfg, brain), gameRng))
	}
	return nil
}

// Step advances every unfinished game by one tick. When all games are
// finished it evolves the population, starts the next generation and
// returns the report for the one that ended.
func (s *Simulation) Step() (*GenerationReport, error) {
	if s.stepGames() > 0 {
		return nil, nil
	}
	return s.evolve()
}

// stepGames ticks the unfinished games and returns how many are still playing.
func (s *Simulation) stepGames() int {
	s.active = s.active[:0]
	for _, e := range s.entities {
		if g := s.games.Get(e); !g.Finished() {
			s.active = append(s.active, g)
		}
	}
	if len(s.active) > 0 {
		s.pool.step(s.active)
		s.ticks++
	}
	return s.Unfinished()
}

// Train steps until the current generation ends.
func (s *Simulation) Train() (*GenerationReport, error) {
	for {
		report, err := s.Step()
		if err != nil || report != nil {
			return report, err
		}
	}
}

// Run trains for the given number of generations, or until ctx is done when
// generations is 0. Each report is passed to onReport; its error stops the
// run. perf may be nil.
func (s *Simulation) Run(ctx context.Context, generations int, perf *telemetry.PerfCollector, onReport func(*GenerationReport) error) error {
	for done := 0; generations <= 0 || done < generations; {
		if err := ctx.Err(); err != nil {
			return err
		}

		if perf != nil {
			perf.StartTick()
			perf.StartPhase(telemetry.PhaseStep)
		}
		var report *GenerationReport
		var err error
		if s.stepGames() == 0 {
			if perf != nil {
				perf.StartPhase(telemetry.PhaseEvolve)
			}
			report, err = s.evolve()
		}
		if err == nil && report != nil && onReport != nil {
			if perf != nil {
				perf.StartPhase(telemetry.PhaseTelemetry)
			}
			err = onReport(report)
		}
		if perf != nil {
			perf.EndTick()
		}

		if err != nil {
			return err
		}
		if report != nil {
			done++
		}
	}
	return nil
}

func (s *Simulation) evolve() (*GenerationReport, error) {
	pop := make([]genetic.Individual, len(s.entities))
	for i, e := range s.entities {
		g := s.games.Get(e)
		pop[i] = genetic.Individual{Chromosome: g.Chromosome(), Fitness: g.Fitness()}
	}

	next, stats, err := s.evolver.Evolve(s.rng, pop)
	if err != nil {
		return nil, fmt.Errorf("evolving generation %d: %w", s.generation, err)
	}

	report := &GenerationReport{
		Generation: s.generation,
		Stats:      stats,
		Ticks:      s.ticks,
		Duration:   time.Since(s.started),
	}
	if len(pop) > 0 {
		report.Best = pop[stats.BestIndex].Chromosome
	}

	for _, e := range s.entities {
		s.world.RemoveEntity(e)
	}
	s.entities = s.entities[:0]
	if err := s.populate(next); err != nil {
		return nil, fmt.Errorf("building generation %d: %w", s.generation+1, err)
	}

	if s.generation%s.cfg.Telemetry.LogEvery == 0 {
		slog.Info("generation complete",
			"generation", s.generation,
			"best", stats.Best,
			"mean", stats.Mean,
			"worst", stats.Worst,
			"ticks", s.ticks,
			"duration", report.Duration,
		)
	}

	s.generation++
	s.ticks = 0
	s.started = time.Now()
	return report, nil
}

// Unfinished counts games still playing.
func (s *Simulation) Unfinished() int {
	n := 0
	query := s.filter.Query()
	for query.Next() {
		if !query.Get().Finished() {
			n++
		}
	}
	return n
}

// Games returns the current population in creation order. The pointers are
// valid until the next generation starts.
func (s *Simulation) Games() []*SimGame {
	games := make([]*SimGame, len(s.entities))
	for i, e := range s.entities {
		games[i] = s.games.Get(e)
	}
	return games
}

// Generation returns the index of the generation being played.
func (s *Simulation) Generation() int { return s.generation }

// Ticks returns the ticks played in the current generation.
func (s *Simulation) Ticks() int { return s.ticks }

// Close stops the worker goroutines.
func (s *Simulation) Close() {
	s.pool.stop()
}
