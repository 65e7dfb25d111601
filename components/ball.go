package components

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/pong/config"
)

// Wall identifies one of the four court edges.
type Wall uint8

const (
	WallTop Wall = iota
	WallBottom
	WallLeft
	WallRight
)

func (w Wall) String() string {
	switch w {
	case WallTop:
		return "top"
	case WallBottom:
		return "bottom"
	case WallLeft:
		return "left"
	case WallRight:
		return "right"
	}
	return "unknown"
}

// Ball is the square ball with its per-tick velocity.
// Speed is the Euclidean norm of Vel and is refreshed whenever Vel changes.
type Ball struct {
	Rect  Rect
	Vel   Vec2
	Speed float32
}

// NewBall creates a ball at (x, y) with the given velocity.
func NewBall(x, y, size float32, vel Vec2) Ball {
	b := Ball{Rect: NewRect(x, y, size, size), Vel: vel}
	b.updateSpeed()
	return b
}

// RandomBall serves a new ball from the center of the court. Each velocity
// component has a magnitude drawn uniformly from [min_vel, max_vel] and a
// random sign.
func RandomBall(cfg *config.Config, rng *rand.Rand) Ball {
	d := &cfg.Derived
	vx := randomVelocity(rng, d.BallMinVel32, d.BallMaxVel32)
	vy := randomVelocity(rng, d.BallMinVel32, d.BallMaxVel32)

	return NewBall(
		d.ScreenW32/2-d.BallSize32/2,
		d.ScreenH32/2-d.BallSize32/2,
		d.BallSize32,
		Vec2{X: vx, Y: vy},
	)
}

// randomVelocity draws one signed velocity component.
func randomVelocity(rng *rand.Rand, min, max float32) float32 {
	flip := rng.Intn(2) == 0
	v := min + rng.Float32()*(max-min)
	if flip {
		return -v
	}
	return v
}

// Move translates the ball by its velocity.
func (b *Ball) Move() {
	b.Rect.Translate(b.Vel)
}

// BounceOff reflects the ball off a horizontal wall. The vertical velocity
// changes sign and its magnitude is scaled by the wall acceleration, then
// clamped to [min_vel, max_vel]. Left and right walls are scoring edges and
// leave the ball untouched.
func (b *Ball) BounceOff(wall Wall, cfg *config.Config) {
	switch wall {
	case WallTop, WallBottom:
		mag := clamp32(abs32(b.Vel.Y)*float32(cfg.Ball.Acceleration), cfg.Derived.BallMinVel32, cfg.Derived.BallMaxVel32)
		if b.Vel.Y > 0 {
			b.Vel.Y = -mag
		} else {
			b.Vel.Y = mag
		}
		b.updateSpeed()
	case WallLeft, WallRight:
	}
}

// BounceOffPaddle reverses the horizontal velocity and grows it by
// paddle_growth. The result is only capped when max_paddle_vel is set.
func (b *Ball) BounceOffPaddle(cfg *config.Config) {
	b.Vel.X *= -float32(cfg.Ball.PaddleGrowth)
	if limit := float32(cfg.Ball.MaxPaddleVel); limit > 0 {
		b.Vel.X = clamp32(b.Vel.X, -limit, limit)
	}
	b.updateSpeed()
}

func (b *Ball) updateSpeed() {
	b.Speed = float32(math.Hypot(float64(b.Vel.X), float64(b.Vel.Y)))
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp32 clamps x to [min, max].
func clamp32(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
