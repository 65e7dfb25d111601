// Package trainer evaluates AI paddles in batches of headless games and
// evolves their brains between generations.
package trainer

import (
	"math/rand"

	"github.com/pthm-cable/pong/components"
	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/game"
	"github.com/pthm-cable/pong/neural"
	"github.com/pthm-cable/pong/player"
)

// SimGame is one headless AI-vs-wall game. It runs TrainAi rules without the
// serve pause and ends after a fixed number of misses.
type SimGame struct {
	cfg   *config.Config
	rng   *rand.Rand
	ai    *player.AiPlayer
	court game.Court
	score components.Score

	serves   int
	ticks    int
	finished bool
}

// NewSimGame creates a game with a random brain. The game draws its own
// generator from rng so games can be stepped concurrently.
func NewSimGame(cfg *config.Config, rng *rand.Rand) *SimGame {
	gameRng := rand.New(rand.NewSource(rng.Int63()))
	return NewSimGameFrom(cfg, player.RandomAiPlayer(cfg, gameRng), gameRng)
}

// NewSimGameFrom creates a game around an existing AI player. rng must not
// be shared with another game that is stepped concurrently.
func NewSimGameFrom(cfg *config.Config, ai *player.AiPlayer, rng *rand.Rand) *SimGame {
	ai.Score = 0
	return &SimGame{
		cfg:    cfg,
		rng:    rng,
		ai:     ai,
		court:  game.NewCourt(cfg, game.TrainAi, rng),
		serves: cfg.Training.GenerationLength,
	}
}

// Step runs one tick. A game with no serves left, or past the tick limit,
// becomes finished and is never mutated again.
func (g *SimGame) Step() {
	if g.finished {
		return
	}
	if g.serves == 0 || (g.cfg.Training.MaxTicks > 0 && g.ticks >= g.cfg.Training.MaxTicks) {
		g.finished = true
		return
	}
	g.ticks++

	d := &g.cfg.Derived
	delta := g.ai.Step(player.Snapshot{Paddle: g.court.Left, Ball: g.court.Ball})
	g.court.MovePaddles(delta, 0, d.ScreenH32)

	contact := g.court.Advance(g.cfg)
	if contact.Paddle == game.SideLeft {
		g.score.P1++
	}
	if contact.HitWall && contact.Wall == components.WallLeft {
		g.score.P1--
		g.serves--
		g.court.Reset(g.cfg, g.rng)
	}
	g.ai.Score = g.score.P1
}

// Fitness is the accumulated score: one per return, minus one per miss.
func (g *SimGame) Fitness() float64 {
	return float64(g.score.P1)
}

// Chromosome returns the AI's brain as a chromosome.
func (g *SimGame) Chromosome() neural.Chromosome {
	return g.ai.Brain.Chromosome()
}

func (g *SimGame) Finished() bool          { return g.finished }
func (g *SimGame) Serves() int             { return g.serves }
func (g *SimGame) Ticks() int              { return g.ticks }
func (g *SimGame) Score() components.Score { return g.score }
func (g *SimGame) Court() game.Court       { return g.court }
func (g *SimGame) AI() *player.AiPlayer    { return g.ai }
