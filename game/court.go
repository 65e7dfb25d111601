package game

import (
	"math/rand"

	"github.com/pthm-cable/pong/components"
	"github.com/pthm-cable/pong/config"
)

// Side identifies a paddle.
type Side uint8

const (
	SideNone Side = iota
	SideLeft
	SideRight
)

// Contact describes what the ball touched during one Advance.
type Contact struct {
	Paddle  Side
	Wall    components.Wall
	HitWall bool
}

// Court holds the two paddles and the ball.
type Court struct {
	Left  components.Rect
	Right components.Rect
	Ball  components.Ball

	solo bool
}

// NewCourt lays out paddles for the mode and serves a random ball.
func NewCourt(cfg *config.Config, kind ModeKind, rng *rand.Rand) Court {
	c := Court{solo: kind.Solo()}
	c.Reset(cfg, rng)
	return c
}

// Reset restores the starting paddle layout and serves a new ball.
func (c *Court) Reset(cfg *config.Config, rng *rand.Rand) {
	c.ResetPaddles(cfg)
	c.Ball = components.RandomBall(cfg, rng)
}

// ResetPaddles centers the left paddle. The right paddle is centered in two
// player matches and spans the full court height otherwise.
func (c *Court) ResetPaddles(cfg *config.Config) {
	d := &cfg.Derived
	c.Left = components.NewRect(d.XOffset32, d.ScreenH32/2-d.PaddleH32/2, d.PaddleW32, d.PaddleH32)

	rightX := d.ScreenW32 - d.XOffset32 - d.PaddleW32
	if c.solo {
		c.Right = components.NewRect(rightX, 0, d.PaddleW32, d.ScreenH32)
	} else {
		c.Right = components.NewRect(rightX, d.ScreenH32/2-d.PaddleH32/2, d.PaddleW32, d.PaddleH32)
	}
}

// MovePaddles applies both paddle deltas. The right paddle is fixed in solo modes.
func (c *Court) MovePaddles(left, right, courtHeight float32) {
	components.MovePaddle(&c.Left, left, courtHeight)
	if !c.solo {
		components.MovePaddle(&c.Right, right, courtHeight)
	}
}

// Advance moves the ball one tick and resolves collisions. Paddle hits and
// top/bottom walls bounce the ball; left and right walls are reported for
// the caller to score.
func (c *Court) Advance(cfg *config.Config) Contact {
	var contact Contact
	b := &c.Ball
	prev := b.Rect
	b.Move()

	switch {
	case b.Vel.X < 0 && b.Rect.Overlaps(c.Left):
		contact.Paddle = SideLeft
		b.BounceOffPaddle(cfg)
	case b.Vel.X < 0 && crossed(prev.Left(), b.Rect.Left(), c.Left.Right(), prev, b.Rect, c.Left):
		// Passed through the paddle within one tick.
		contact.Paddle = SideLeft
		b.Rect.X = c.Left.Right()
		b.BounceOffPaddle(cfg)
	case b.Vel.X > 0 && b.Rect.Overlaps(c.Right):
		contact.Paddle = SideRight
		b.BounceOffPaddle(cfg)
	case b.Vel.X > 0 && crossed(prev.Right(), b.Rect.Right(), c.Right.Left(), prev, b.Rect, c.Right):
		contact.Paddle = SideRight
		b.Rect.X = c.Right.Left() - b.Rect.Width
		b.BounceOffPaddle(cfg)
	}

	if wall, ok := c.wallContact(cfg); ok {
		contact.Wall, contact.HitWall = wall, true
		switch wall {
		case components.WallTop, components.WallBottom:
			b.BounceOff(wall, cfg)
		case components.WallLeft, components.WallRight:
			// scoring edges
		}
	}
	return contact
}

// crossed reports whether a leading edge moving from prevEdge to curEdge
// passed the paddle face while the ball overlapped the paddle vertically.
func crossed(prevEdge, curEdge, face float32, prev, cur, paddle components.Rect) bool {
	if prevEdge == curEdge {
		return false
	}
	if (prevEdge-face)*(curEdge-face) > 0 {
		return false
	}
	t := (prevEdge - face) / (prevEdge - curEdge)
	top := prev.Y + (cur.Y-prev.Y)*t
	return top <= paddle.Bottom() && paddle.Top() <= top+cur.Height
}

// wallContact checks walls in order top, bottom, left, right.
func (c *Court) wallContact(cfg *config.Config) (components.Wall, bool) {
	b := &c.Ball
	d := &cfg.Derived
	switch {
	case b.Vel.Y < 0 && b.Rect.Top() < 0:
		return components.WallTop, true
	case b.Vel.Y > 0 && b.Rect.Bottom() > d.ScreenH32-d.BallSize32:
		return components.WallBottom, true
	case b.Rect.Left() < 0:
		return components.WallLeft, true
	case b.Rect.Right() > d.ScreenW32-d.BallSize32:
		return components.WallRight, true
	}
	return 0, false
}
