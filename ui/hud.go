// Package ui draws the raylib overlays: HUD text, metric panels and the
// raygui training controls.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pong/game"
	"github.com/pthm-cable/pong/telemetry"
)

// MatchHUDData holds what the HUD shows during a rendered match.
type MatchHUDData struct {
	Match     *game.Match
	FPS       int32
	Paused    bool
	ShowDebug bool
}

// TrainingHUDData holds what the HUD shows while training on screen.
type TrainingHUDData struct {
	Generation int
	Population int
	Unfinished int
	Ticks      int
	LastBest   float64
	LastMean   float64
	HasLast    bool
	Perf       telemetry.PerfStats
}

// HUD renders the heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// DrawMatch renders player names, status and, in debug mode, the AI outputs.
func (h *HUD) DrawMatch(data MatchHUDData, screenWidth, screenHeight int32) {
	m := data.Match
	left := m.Player(game.SideLeft)
	rl.DrawText(left.Name(), 10, 10, 14, rl.LightGray)
	if !m.Mode().Kind.Solo() {
		right := m.Player(game.SideRight).Name()
		w := rl.MeasureText(right, 14)
		rl.DrawText(right, screenWidth-w-10, 10, 14, rl.LightGray)
	}

	if data.Paused {
		text := "PAUSED"
		w := rl.MeasureText(text, 30)
		rl.DrawText(text, (screenWidth-w)/2, screenHeight/2-15, 30, rl.Yellow)
	}

	if data.ShowDebug {
		h.drawBrains(m, screenHeight)
	}
}

func (h *HUD) drawBrains(m *game.Match, screenHeight int32) {
	r := h.renderer
	x, y := int32(10), screenHeight-110
	const width = 240

	r.DrawPanel(x, y, width, 70)
	y = r.DrawSectionHeader(x+r.Theme.Padding, y+6, fmt.Sprintf("Brains  tick %d", m.Tick()))
	for _, side := range []game.Side{game.SideLeft, game.SideRight} {
		p := m.Player(side)
		if p.AI == nil {
			continue
		}
		label := "Left"
		if side == game.SideRight {
			label = "Right"
		}
		y = r.DrawCenteredBar(x+r.Theme.Padding, y, label, float32(p.AI.Output), 1, width-2*r.Theme.Padding)
	}
}

// DrawTraining renders generation progress and throughput.
func (h *HUD) DrawTraining(data TrainingHUDData) {
	r := h.renderer
	x, y := int32(10), int32(10)
	const width = 260

	r.DrawPanel(x, y, width, 130)
	x += r.Theme.Padding
	y = r.DrawSectionHeader(x, y+6, fmt.Sprintf("Generation %d", data.Generation))

	done := float32(0)
	if data.Population > 0 {
		done = float32(data.Population-data.Unfinished) / float32(data.Population)
	}
	y = r.DrawBar(x, y, "Finished", done, width-2*r.Theme.Padding)
	y = r.DrawLabelValue(x, y, "Ticks", fmt.Sprintf("%d", data.Ticks))
	y = r.DrawLabelValue(x, y, "Ticks/s", fmt.Sprintf("%.0f", data.Perf.TicksPerSecond))
	if data.HasLast {
		y = r.DrawLabelValue(x, y, "Last best", fmt.Sprintf("%.0f", data.LastBest))
		r.DrawLabelValue(x, y, "Last mean", fmt.Sprintf("%.2f", data.LastMean))
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
