// Package app wires the core packages to a raylib window: a playable match
// view and a live training view.
package app

import (
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pong/audio"
	"github.com/pthm-cable/pong/effects"
	"github.com/pthm-cable/pong/game"
	"github.com/pthm-cable/pong/renderer"
	"github.com/pthm-cable/pong/ui"
)

// MatchView plays one match in the window.
type MatchView struct {
	match *game.Match
	input ui.KeyboardInput

	court     *renderer.CourtRenderer
	particles *effects.ParticleSystem
	sparks    *renderer.ParticleRenderer
	hud       *ui.HUD
	sound     *audio.SoundManager

	paused    bool
	showDebug bool
}

// NewMatchView creates the view. sound may be nil.
func NewMatchView(m *game.Match, sound *audio.SoundManager, rng *rand.Rand) *MatchView {
	cfg := m.Config()
	return &MatchView{
		match:     m,
		court:     renderer.NewCourtRenderer(int32(cfg.Screen.Width), int32(cfg.Screen.Height)),
		particles: effects.NewParticleSystem(rng),
		sparks:    renderer.NewParticleRenderer(),
		hud:       ui.NewHUD(),
		sound:     sound,
	}
}

// Update handles view keys and advances the match by the frame time.
func (v *MatchView) Update() {
	if rl.IsKeyPressed(rl.KeyP) || rl.IsKeyPressed(rl.KeySpace) {
		v.paused = !v.paused
	}
	if rl.IsKeyPressed(rl.KeyF3) {
		v.showDebug = !v.showDebug
	}

	if !v.paused {
		ev := v.match.Update(float64(rl.GetFrameTime()), v.input)
		v.particles.React(ev, v.match.Ball())
		v.sound.Play(ev)
	}
	v.particles.Update()
}

// Draw renders the frame.
func (v *MatchView) Draw() {
	cfg := v.match.Config()
	rl.BeginDrawing()

	alpha := float32(v.match.Interpolation())
	if v.paused {
		alpha = 0
	}
	v.court.DrawMatch(v.match, alpha)
	v.sparks.Draw(v.particles.Particles)
	if v.showDebug {
		v.court.DrawDebug(rl.GetFPS(), v.match.Ball())
	}
	v.hud.DrawMatch(ui.MatchHUDData{
		Match:     v.match,
		FPS:       rl.GetFPS(),
		Paused:    v.paused,
		ShowDebug: v.showDebug,
	}, int32(cfg.Screen.Width), int32(cfg.Screen.Height))
	if !v.showDebug {
		v.hud.DrawControls(int32(cfg.Screen.Height), "[W/S] left  [Up/Down] right  [P] pause  [F3] debug")
	}

	rl.EndDrawing()
}
