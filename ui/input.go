package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pong/player"
)

// KeyboardInput reports held keys from the raylib window.
type KeyboardInput struct{}

var rlKeys = map[player.Key]int32{
	player.KeyW:    rl.KeyW,
	player.KeyS:    rl.KeyS,
	player.KeyUp:   rl.KeyUp,
	player.KeyDown: rl.KeyDown,
}

func (KeyboardInput) IsDown(k player.Key) bool {
	key, ok := rlKeys[k]
	return ok && rl.IsKeyDown(key)
}
