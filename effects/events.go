package effects

import (
	"github.com/pthm-cable/pong/components"
	"github.com/pthm-cable/pong/game"
)

// React emits the particles for a frame's match events at the ball.
func (s *ParticleSystem) React(ev game.Event, ball components.Ball) {
	c := ball.Rect.Center()
	if ev.Has(game.EventPaddleHit) {
		dir := float32(1)
		if ball.Vel.X < 0 {
			dir = -1
		}
		s.EmitHit(c.X, c.Y, dir)
	}
	if ev.Has(game.EventWallBounce) {
		y := ball.Rect.Top()
		if ball.Vel.Y < 0 {
			y = ball.Rect.Bottom()
		}
		s.EmitBounce(c.X, y)
	}
	if ev.Has(game.EventMiss) {
		s.EmitMiss(c.X, c.Y)
	}
}
