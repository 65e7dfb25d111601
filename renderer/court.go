// Package renderer draws matches and training games with raylib.
package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pong/components"
	"github.com/pthm-cable/pong/game"
)

// CourtRenderer draws the paddles, ball, net and scoreboard.
type CourtRenderer struct {
	width, height int32

	Background rl.Color
	Foreground rl.Color
	Net        rl.Color
	Dim        rl.Color
}

// NewCourtRenderer creates a renderer for a court of the given size.
func NewCourtRenderer(width, height int32) *CourtRenderer {
	return &CourtRenderer{
		width:      width,
		height:     height,
		Background: rl.Black,
		Foreground: rl.White,
		Net:        rl.Color{R: 90, G: 90, B: 90, A: 255},
		Dim:        rl.Color{R: 255, G: 255, B: 255, A: 40},
	}
}

// DrawMatch renders a match. alpha in [0, 1) interpolates the ball between
// the last tick and the next one.
func (r *CourtRenderer) DrawMatch(m *game.Match, alpha float32) {
	rl.ClearBackground(r.Background)
	r.drawNet()

	ball := m.Ball()
	if !m.Paused() {
		ball.Rect.X += ball.Vel.X * alpha
		ball.Rect.Y += ball.Vel.Y * alpha
	}

	r.drawRect(m.LeftPaddle(), r.Foreground)
	r.drawRect(m.RightPaddle(), r.Foreground)
	r.drawRect(ball.Rect, r.Foreground)
	r.drawScore(m.Mode(), m.Score())

	if m.Paused() {
		text := "SERVE"
		w := rl.MeasureText(text, 30)
		rl.DrawText(text, r.width/2-w/2, r.height/2-60, 30, rl.Yellow)
	}
}

// DrawCourts renders many training courts on top of each other, each dimmed
// so crowded areas read brighter. highlight is drawn at full brightness; pass
// a negative index for none.
func (r *CourtRenderer) DrawCourts(courts []game.Court, highlight int) {
	rl.ClearBackground(r.Background)
	r.drawNet()

	for i, c := range courts {
		if i == highlight {
			continue
		}
		r.drawRect(c.Left, r.Dim)
		r.drawRect(c.Ball.Rect, r.Dim)
	}
	if len(courts) > 0 {
		r.drawRect(courts[0].Right, r.Net)
	}
	if highlight >= 0 && highlight < len(courts) {
		c := courts[highlight]
		r.drawRect(c.Left, r.Foreground)
		r.drawRect(c.Ball.Rect, rl.Yellow)
	}
}

// DrawDebug renders the frame rate and ball velocity at the bottom left.
func (r *CourtRenderer) DrawDebug(fps int32, ball components.Ball) {
	text := fmt.Sprintf("FPS: %d  vel: (%.2f, %.2f)  speed: %.2f", fps, ball.Vel.X, ball.Vel.Y, ball.Speed)
	rl.DrawText(text, 10, r.height-20, 14, rl.Gray)
}

func (r *CourtRenderer) drawNet() {
	for y := int32(0); y < r.height; y += 30 {
		rl.DrawRectangle(r.width/2-1, y, 2, 15, r.Net)
	}
}

func (r *CourtRenderer) drawScore(mode game.Mode, score components.Score) {
	if mode.Kind.Solo() {
		text := fmt.Sprintf("Score: %d", score.P1)
		w := rl.MeasureText(text, 30)
		rl.DrawText(text, r.width/2-w/2, 20, 30, r.Foreground)
		return
	}
	left := fmt.Sprintf("%d", score.P1)
	right := fmt.Sprintf("%d", score.P2)
	rl.DrawText(left, r.width/2-40-rl.MeasureText(left, 40), 20, 40, r.Foreground)
	rl.DrawText(right, r.width/2+40, 20, 40, r.Foreground)
}

func (r *CourtRenderer) drawRect(rect components.Rect, color rl.Color) {
	rl.DrawRectangleRec(rl.Rectangle{X: rect.X, Y: rect.Y, Width: rect.Width, Height: rect.Height}, color)
}
