// Package game runs a single Pong match: player moves, ball physics,
// scoring and the serve pause.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/pong/components"
	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/neural"
	"github.com/pthm-cable/pong/player"
)

// Event flags what happened during a tick. Front-ends use them for sound
// and effects.
type Event uint8

const (
	EventPaddleHit Event = 1 << iota
	EventWallBounce
	EventPoint // a score changed
	EventMiss  // ball left the court, serve pause started
	EventServe // pause ended, new ball in play
)

// Has reports whether all flags in f are set.
func (e Event) Has(f Event) bool {
	return e&f == f
}

// Match is one game between two paddles.
type Match struct {
	cfg  *config.Config
	mode Mode
	rng  *rand.Rand

	players [2]player.Player
	court   Court
	score   components.Score

	pauseFor int
	clock    Timestep
	tick     uint64
}

// NewMatch sets up a match for mode. Computer players take their brains from
// brains in left-to-right order; missing brains are generated from rng.
func NewMatch(cfg *config.Config, mode Mode, rng *rand.Rand, brains ...*neural.Brain) *Match {
	m := &Match{
		cfg:   cfg,
		mode:  mode,
		rng:   rng,
		clock: NewTimestep(cfg.Derived.TickDuration, cfg.Physics.MaxCatchUp),
	}

	kinds := [2]player.Kind{mode.Left, mode.Right}
	controls := [2]player.Controls{player.LeftControls, player.RightControls}
	slots := 2
	if mode.Kind.Solo() {
		slots = 1
	}
	for i := 0; i < slots; i++ {
		if kinds[i] == player.Human {
			m.players[i] = player.NewHuman(controls[i])
			continue
		}
		var brain *neural.Brain
		if len(brains) > 0 {
			brain, brains = brains[0], brains[1:]
		}
		if brain == nil {
			brain = neural.RandomBrain(cfg, rng)
		}
		m.players[i] = player.NewComputer(player.NewAiPlayer(cfg, brain))
	}

	m.court = NewCourt(cfg, mode.Kind, rng)
	return m
}

// Update advances the match by a frame of dt seconds. Rendered modes run as
// many fixed ticks as the accumulator allows; TrainAi runs exactly one.
func (m *Match) Update(dt float64, in player.Input) Event {
	if m.mode.Kind == TrainAi {
		return m.Step(in)
	}
	var ev Event
	for n := m.clock.Advance(dt); n > 0; n-- {
		ev |= m.Step(in)
	}
	return ev
}

// Step runs one tick of the state machine.
func (m *Match) Step(in player.Input) Event {
	m.tick++
	switch {
	case m.pauseFor == 0:
		return m.play(in)
	case m.pauseFor == 1:
		m.pauseFor = 0
		m.court.Reset(m.cfg, m.rng)
		slog.Debug("serve", "tick", m.tick, "p1", m.score.P1, "p2", m.score.P2)
		return EventServe
	default:
		m.pauseFor--
		return 0
	}
}

func (m *Match) play(in player.Input) Event {
	d := &m.cfg.Derived

	left := m.players[0].Decide(player.Snapshot{Paddle: m.court.Left, Ball: m.court.Ball}, in, d.PaddleSpeed32)
	var right float32
	if !m.mode.Kind.Solo() {
		right = m.players[1].Decide(player.Snapshot{Paddle: m.court.Right, Ball: m.court.Ball}, in, d.PaddleSpeed32)
	}
	m.court.MovePaddles(left, right, d.ScreenH32)

	var ev Event
	contact := m.court.Advance(m.cfg)

	switch contact.Paddle {
	case SideLeft:
		ev |= EventPaddleHit
		if m.mode.Kind.Solo() {
			m.addScore(1, 0)
			ev |= EventPoint
		}
	case SideRight:
		ev |= EventPaddleHit
	case SideNone:
	}

	if !contact.HitWall {
		return ev
	}
	switch contact.Wall {
	case components.WallTop, components.WallBottom:
		ev |= EventWallBounce
	case components.WallLeft:
		if m.mode.Kind.Solo() {
			m.addScore(-1, 0)
		} else {
			m.addScore(0, 1)
		}
		m.pauseFor = m.cfg.Physics.TicksPerSecond
		ev |= EventPoint | EventMiss
	case components.WallRight:
		if !m.mode.Kind.Solo() {
			m.addScore(1, 0)
			m.pauseFor = m.cfg.Physics.TicksPerSecond
			ev |= EventPoint | EventMiss
		}
	}
	return ev
}

func (m *Match) addScore(p1, p2 int16) {
	m.score.P1 += p1
	m.score.P2 += p2
	if ai := m.players[0].AI; ai != nil {
		ai.Score = m.score.P1
	}
	if ai := m.players[1].AI; ai != nil {
		ai.Score = m.score.P2
	}
}

func (m *Match) Mode() Mode                   { return m.mode }
func (m *Match) Score() components.Score      { return m.score }
func (m *Match) Ball() components.Ball        { return m.court.Ball }
func (m *Match) LeftPaddle() components.Rect  { return m.court.Left }
func (m *Match) RightPaddle() components.Rect { return m.court.Right }
func (m *Match) Player(s Side) player.Player  { return m.players[sideIndex(s)] }
func (m *Match) Paused() bool                 { return m.pauseFor > 0 }
func (m *Match) PauseFor() int                { return m.pauseFor }
func (m *Match) Tick() uint64                 { return m.tick }
func (m *Match) Config() *config.Config       { return m.cfg }
func (m *Match) Interpolation() float64       { return m.clock.Alpha() }

func sideIndex(s Side) int {
	if s == SideRight {
		return 1
	}
	return 0
}
