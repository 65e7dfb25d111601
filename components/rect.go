// Package components defines the data model shared by matches and training games.
package components

// Vec2 is a 2D vector in court units per tick.
type Vec2 struct {
	X, Y float32
}

// Rect is an axis-aligned rectangle positioned by its top-left corner.
// Y grows downwards, so Top is the smaller Y.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// NewRect creates a rectangle. Negative sizes are clamped to zero.
func NewRect(x, y, w, h float32) Rect {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: x, Y: y, Width: w, Height: h}
}

func (r Rect) Top() float32    { return r.Y }
func (r Rect) Bottom() float32 { return r.Y + r.Height }
func (r Rect) Left() float32   { return r.X }
func (r Rect) Right() float32  { return r.X + r.Width }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Overlaps reports whether the two rectangles intersect with positive area
// or touch along an edge.
func (r Rect) Overlaps(o Rect) bool {
	return r.Left() <= o.Right() && o.Left() <= r.Right() &&
		r.Top() <= o.Bottom() && o.Top() <= r.Bottom()
}

// Translate moves the rectangle by v.
func (r *Rect) Translate(v Vec2) {
	r.X += v.X
	r.Y += v.Y
}

// MovePaddle moves a paddle vertically by delta without leaving the court.
// Either the whole delta applies or the paddle snaps flush to the edge it
// would have crossed.
func MovePaddle(paddle *Rect, delta, courtHeight float32) {
	switch {
	case paddle.Top()+delta < 0:
		paddle.Y = 0
	case paddle.Bottom()+delta > courtHeight:
		paddle.Y = courtHeight - paddle.Height
	default:
		paddle.Y += delta
	}
}
