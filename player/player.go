// Package player resolves each paddle's per-tick move, from keyboard input
// for humans or from a brain for computer players.
package player

import (
	"math/rand"

	"github.com/pthm-cable/pong/components"
	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/neural"
)

// Key identifies a control the front-end can report as held.
type Key uint8

const (
	KeyW Key = iota
	KeyS
	KeyUp
	KeyDown
)

func (k Key) String() string {
	switch k {
	case KeyW:
		return "W"
	case KeyS:
		return "S"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	default:
		return "?"
	}
}

// Input reports which controls are held during the current tick.
type Input interface {
	IsDown(k Key) bool
}

// NoInput is an Input with nothing held. Headless games use it.
type NoInput struct{}

func (NoInput) IsDown(Key) bool { return false }

// KeySet is an Input backed by a set of held keys.
type KeySet map[Key]bool

func (s KeySet) IsDown(k Key) bool { return s[k] }

// Controls binds a human paddle to its up and down keys.
type Controls struct {
	Up, Down Key
}

var (
	LeftControls  = Controls{Up: KeyW, Down: KeyS}
	RightControls = Controls{Up: KeyUp, Down: KeyDown}
)

// Snapshot is the by-value view of the court a player decides from.
type Snapshot struct {
	Paddle components.Rect
	Ball   components.Ball
}

// Kind selects how a Player decides.
type Kind uint8

const (
	Human Kind = iota
	Computer
)

func (k Kind) String() string {
	if k == Computer {
		return "Computer"
	}
	return "Human"
}

// Player is either a human bound to Controls or a computer driven by AI.
type Player struct {
	Kind     Kind
	Controls Controls
	AI       *AiPlayer
}

// NewHuman creates a human player bound to the given controls.
func NewHuman(c Controls) Player {
	return Player{Kind: Human, Controls: c}
}

// NewComputer creates a computer player around an AI.
func NewComputer(ai *AiPlayer) Player {
	return Player{Kind: Computer, AI: ai}
}

// Decide returns the vertical paddle delta for this tick.
func (p Player) Decide(snap Snapshot, in Input, speed float32) float32 {
	switch p.Kind {
	case Computer:
		return p.AI.Step(snap)
	default:
		switch {
		case in.IsDown(p.Controls.Up):
			return -speed
		case in.IsDown(p.Controls.Down):
			return speed
		}
		return 0
	}
}

// Name returns a display name.
func (p Player) Name() string {
	if p.Kind == Computer {
		return "Computer"
	}
	return "Human (" + p.Controls.Up.String() + "/" + p.Controls.Down.String() + ")"
}

// AiPlayer moves a paddle using a brain fed by an eye.
type AiPlayer struct {
	Brain *neural.Brain
	Eye   neural.Eye
	Score int16

	// Output is the raw brain output of the last Step.
	Output float64

	speed      float32
	perception []float64
}

// NewAiPlayer wraps brain with an eye configured from cfg.
func NewAiPlayer(cfg *config.Config, brain *neural.Brain) *AiPlayer {
	eye := neural.NewEye(cfg)
	return &AiPlayer{
		Brain:      brain,
		Eye:        eye,
		speed:      cfg.Derived.PaddleSpeed32,
		perception: make([]float64, eye.Len()),
	}
}

// RandomAiPlayer creates an AI with a freshly initialized brain.
func RandomAiPlayer(cfg *config.Config, rng *rand.Rand) *AiPlayer {
	return NewAiPlayer(cfg, neural.RandomBrain(cfg, rng))
}

// Step maps the brain's output to a full-speed move by its sign.
func (a *AiPlayer) Step(snap Snapshot) float32 {
	a.perception = a.Eye.StepInto(a.perception, snap.Paddle, snap.Ball)
	out := a.Brain.Step(a.perception)
	a.Output = out
	switch {
	case out < 0:
		return -a.speed
	case out > 0:
		return a.speed
	default:
		return 0
	}
}
