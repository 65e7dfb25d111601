package neural

import (
	"github.com/pthm-cable/pong/components"
	"github.com/pthm-cable/pong/config"
)

// Perception vector layout. Slots past InputBallVelY are left at zero when
// the configured input count is larger.
const (
	InputPaddleY  = iota // paddle center y / (court height - paddle height)
	InputBallX           // ball center x / (court width - ball width)
	InputBallY           // ball center y / (court height - ball height)
	InputBallVelX        // raw vx
	InputBallVelY        // raw vy

	numPerceptionFeatures
)

// Eye turns paddle and ball state into the brain's perception vector.
// It holds no per-tick state.
type Eye struct {
	inputs         int
	courtW, courtH float32
}

// NewEye creates an eye producing cfg.Neural.Inputs values.
func NewEye(cfg *config.Config) Eye {
	return Eye{
		inputs: cfg.Neural.Inputs,
		courtW: cfg.Derived.ScreenW32,
		courtH: cfg.Derived.ScreenH32,
	}
}

// Len returns the perception vector length.
func (e Eye) Len() int {
	return e.inputs
}

// Step computes a fresh perception vector.
func (e Eye) Step(paddle components.Rect, ball components.Ball) []float64 {
	return e.StepInto(make([]float64, e.inputs), paddle, ball)
}

// StepInto fills dst (resized to the input count) and returns it.
func (e Eye) StepInto(dst []float64, paddle components.Rect, ball components.Ball) []float64 {
	if cap(dst) < e.inputs {
		dst = make([]float64, e.inputs)
	}
	dst = dst[:e.inputs]
	clear(dst)

	var features [numPerceptionFeatures]float64
	bc := ball.Rect.Center()
	features[InputPaddleY] = normalize(paddle.Center().Y, e.courtH-paddle.Height)
	features[InputBallX] = normalize(bc.X, e.courtW-ball.Rect.Width)
	features[InputBallY] = normalize(bc.Y, e.courtH-ball.Rect.Height)
	features[InputBallVelX] = float64(ball.Vel.X)
	features[InputBallVelY] = float64(ball.Vel.Y)

	copy(dst, features[:])
	return dst
}

// normalize divides v by span. A span of zero or less (an object as tall as
// the court) has no room to move and reads as 0.
func normalize(v, span float32) float64 {
	if span <= 0 {
		return 0
	}
	return float64(v / span)
}
