package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// TrainingAction is what the user asked for through the training panel.
type TrainingAction uint8

const (
	ActionNone TrainingAction = iota
	ActionTogglePause
	ActionSaveBest
	ActionToggleView
)

// TrainingPanel holds the on-screen controls for a training run.
type TrainingPanel struct {
	// StepsPerFrame is how many simulation ticks run per rendered frame.
	StepsPerFrame int
	MaxSteps      int

	x, y float32
}

// NewTrainingPanel places the panel with its top-left corner at (x, y).
func NewTrainingPanel(x, y float32, maxSteps int) *TrainingPanel {
	return &TrainingPanel{StepsPerFrame: 1, MaxSteps: max(maxSteps, 1), x: x, y: y}
}

// Draw renders the controls and returns the action triggered this frame.
func (p *TrainingPanel) Draw(paused, showAll bool) TrainingAction {
	action := ActionNone

	rl.DrawText("Steps/frame", int32(p.x), int32(p.y), 12, rl.LightGray)
	steps := gui.SliderBar(
		rl.Rectangle{X: p.x + 80, Y: p.y, Width: 140, Height: 14},
		"", fmt.Sprintf("%d", p.StepsPerFrame),
		float32(p.StepsPerFrame), 1, float32(p.MaxSteps),
	)
	p.StepsPerFrame = max(int(steps), 1)

	row := p.y + 24
	if gui.Button(rl.Rectangle{X: p.x, Y: row, Width: 70, Height: 26}, toggleText(paused, "Resume", "Pause")) {
		action = ActionTogglePause
	}
	if gui.Button(rl.Rectangle{X: p.x + 80, Y: row, Width: 70, Height: 26}, "Save best") {
		action = ActionSaveBest
	}
	if gui.Button(rl.Rectangle{X: p.x + 160, Y: row, Width: 70, Height: 26}, toggleText(showAll, "Best only", "Show all")) {
		action = ActionToggleView
	}
	return action
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
