package game

import (
	"fmt"

	"github.com/pthm-cable/pong/player"
)

// ModeKind is the shape of a match.
type ModeKind uint8

const (
	// OnePlayer: the left paddle plays against a full-height wall.
	OnePlayer ModeKind = iota
	// TwoPlayer: left and right paddles score against each other.
	TwoPlayer
	// TrainAi: OnePlayer rules, stepped once per update and never rendered.
	TrainAi
)

func (k ModeKind) String() string {
	switch k {
	case OnePlayer:
		return "OnePlayer"
	case TwoPlayer:
		return "TwoPlayer"
	case TrainAi:
		return "TrainAi"
	default:
		return fmt.Sprintf("ModeKind(%d)", k)
	}
}

// Solo reports whether the right side is a wall rather than a player.
func (k ModeKind) Solo() bool {
	return k != TwoPlayer
}

// Mode selects the match shape and who controls each paddle. Right is only
// meaningful for TwoPlayer.
type Mode struct {
	Kind  ModeKind
	Left  player.Kind
	Right player.Kind
}

var (
	PlayerVsPlayer = Mode{Kind: TwoPlayer, Left: player.Human, Right: player.Human}
	PlayerVsAI     = Mode{Kind: TwoPlayer, Left: player.Human, Right: player.Computer}
	AIVsPlayer     = Mode{Kind: TwoPlayer, Left: player.Computer, Right: player.Human}
	AIVsAI         = Mode{Kind: TwoPlayer, Left: player.Computer, Right: player.Computer}
	PlayerVsSelf   = Mode{Kind: OnePlayer, Left: player.Human}
	AIVsSelf       = Mode{Kind: OnePlayer, Left: player.Computer}
	TrainAI        = Mode{Kind: TrainAi, Left: player.Computer}
)

// DefaultMode is used when mode selection fails.
var DefaultMode = PlayerVsPlayer

func (m Mode) String() string {
	if m.Kind.Solo() {
		return fmt.Sprintf("%s(%s)", m.Kind, m.Left)
	}
	return fmt.Sprintf("%s(%s, %s)", m.Kind, m.Left, m.Right)
}

// ModeError reports an unknown mode numeral.
type ModeError struct {
	Value int
}

func (e *ModeError) Error() string {
	return fmt.Sprintf("invalid game mode %d (want 1-6), defaulting to 2 player (Human vs Human)", e.Value)
}

// ParseMode maps the command line mode numeral to a Mode.
func ParseMode(n int) (Mode, error) {
	switch n {
	case 1:
		return PlayerVsPlayer, nil
	case 2:
		return PlayerVsAI, nil
	case 3:
		return AIVsPlayer, nil
	case 4:
		return AIVsAI, nil
	case 5:
		return PlayerVsSelf, nil
	case 6:
		return AIVsSelf, nil
	default:
		return DefaultMode, &ModeError{Value: n}
	}
}
