package app

import (
	"fmt"
	"log/slog"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/game"
	"github.com/pthm-cable/pong/renderer"
	"github.com/pthm-cable/pong/telemetry"
	"github.com/pthm-cable/pong/trainer"
	"github.com/pthm-cable/pong/ui"
)

// maxStepsPerFrame bounds the steps-per-frame slider.
const maxStepsPerFrame = 200

// TrainingView runs a simulation on screen, drawing every game's court
// overlaid.
type TrainingView struct {
	cfg *config.Config
	sim *trainer.Simulation

	court *renderer.CourtRenderer
	hud   *ui.HUD
	panel *ui.TrainingPanel
	perf  *telemetry.PerfCollector
	out   *telemetry.OutputManager

	saveDir string
	paused  bool
	showAll bool
	last    *trainer.GenerationReport
	courts  []game.Court
}

// NewTrainingView creates the view. Best brains are saved under saveDir;
// out may be nil.
func NewTrainingView(cfg *config.Config, sim *trainer.Simulation, out *telemetry.OutputManager, saveDir string) *TrainingView {
	panelX := float32(cfg.Screen.Width - 250)
	return &TrainingView{
		cfg:     cfg,
		sim:     sim,
		court:   renderer.NewCourtRenderer(int32(cfg.Screen.Width), int32(cfg.Screen.Height)),
		hud:     ui.NewHUD(),
		panel:   ui.NewTrainingPanel(panelX, 10, maxStepsPerFrame),
		perf:    telemetry.NewPerfCollector(120),
		out:     out,
		saveDir: saveDir,
		showAll: true,
	}
}

// Update advances the simulation by the panel's steps per frame.
func (v *TrainingView) Update() error {
	v.perf.RecordFrame()
	if rl.IsKeyPressed(rl.KeySpace) {
		v.paused = !v.paused
	}
	if v.paused {
		return nil
	}

	for i := 0; i < v.panel.StepsPerFrame; i++ {
		v.perf.StartTick()
		v.perf.StartPhase(telemetry.PhaseStep)
		report, err := v.sim.Step()
		if err != nil {
			return err
		}
		if report != nil {
			v.perf.StartPhase(telemetry.PhaseTelemetry)
			v.record(report)
		}
		v.perf.EndTick()
	}
	return nil
}

func (v *TrainingView) record(report *trainer.GenerationReport) {
	v.last = report
	stats := telemetry.NewGenerationStats(report.Generation, report.Stats, report.Ticks, report.Duration)
	if err := v.out.WriteGeneration(stats); err != nil {
		slog.Warn("failed to write generation", "error", err)
	}
	if err := v.out.WritePerf(v.perf.Stats(), report.Generation); err != nil {
		slog.Warn("failed to write perf", "error", err)
	}
}

// Draw renders the overlaid courts, HUD and panel, and applies the panel's
// action.
func (v *TrainingView) Draw() {
	games := v.sim.Games()
	v.courts = v.courts[:0]
	highlight, best := -1, 0.0
	for i, g := range games {
		v.courts = append(v.courts, g.Court())
		if f := g.Fitness(); !g.Finished() && (highlight < 0 || f > best) {
			highlight, best = i, f
		}
	}

	rl.BeginDrawing()
	if v.showAll || highlight < 0 {
		v.court.DrawCourts(v.courts, highlight)
	} else {
		v.court.DrawCourts(v.courts[highlight:highlight+1], 0)
	}

	data := ui.TrainingHUDData{
		Generation: v.sim.Generation(),
		Population: len(games),
		Unfinished: v.sim.Unfinished(),
		Ticks:      v.sim.Ticks(),
		Perf:       v.perf.Stats(),
	}
	if v.last != nil {
		data.HasLast = true
		data.LastBest = v.last.Stats.Best
		data.LastMean = v.last.Stats.Mean
	}
	v.hud.DrawTraining(data)
	v.hud.DrawControls(int32(v.cfg.Screen.Height), "[Space] pause")

	switch v.panel.Draw(v.paused, v.showAll) {
	case ui.ActionTogglePause:
		v.paused = !v.paused
	case ui.ActionToggleView:
		v.showAll = !v.showAll
	case ui.ActionSaveBest:
		v.saveBest()
	case ui.ActionNone:
	}

	rl.EndDrawing()
}

func (v *TrainingView) saveBest() {
	if v.last == nil || len(v.last.Best) == 0 {
		slog.Info("no finished generation to save")
		return
	}
	path := filepath.Join(v.saveDir, fmt.Sprintf("brain_gen%04d.json", v.last.Generation))
	bf := telemetry.NewBrainFile(v.cfg, v.last.Generation, v.last.Stats.Best, v.last.Best)
	if err := telemetry.SaveBrain(path, bf); err != nil {
		slog.Error("failed to save brain", "path", path, "error", err)
		return
	}
	slog.Info("saved best brain", "path", path, "generation", v.last.Generation, "fitness", v.last.Stats.Best)
}
