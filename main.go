package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pong/app"
	"github.com/pthm-cable/pong/audio"
	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/game"
	"github.com/pthm-cable/pong/genetic"
	"github.com/pthm-cable/pong/neural"
	"github.com/pthm-cable/pong/telemetry"
	"github.com/pthm-cable/pong/terminal"
	"github.com/pthm-cable/pong/trainer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml or config.toml (empty = use defaults)")
	modeFlag := flag.Int("mode", 1, "Game mode: 1 PvP, 2 PvAI, 3 AIvP, 4 AIvAI, 5 player alone, 6 AI alone")
	fps := flag.Int("fps", 0, "Target frames per second (0 = use config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	brainPath := flag.String("brain", "", "Brain file for computer players (empty = random brains)")
	train := flag.Bool("train", false, "Show a training run instead of a match")
	outputDir := flag.String("output-dir", "", "Output directory for training CSV logs and saved brains")
	term := flag.Bool("term", false, "Play in the terminal instead of a window")
	logPath := flag.String("log", "", "Log file (terminal mode logs nowhere by default)")
	mute := flag.Bool("mute", false, "Disable sound")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *fps > 0 {
		cfg.Screen.TargetFPS = *fps
	}
	if *mute {
		cfg.Audio.Enabled = false
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))

	// Set up slog. The terminal front-end owns stdout.
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	var logOut io.Writer = os.Stderr
	if *term {
		logOut = io.Discard
	}
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			slog.Error("failed to open log file", "path", *logPath, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level})))

	mode, err := game.ParseMode(*modeFlag)
	if err != nil {
		var modeErr *game.ModeError
		if errors.As(err, &modeErr) {
			slog.Warn(modeErr.Error(), "mode", modeErr.Value)
		}
	}

	var brains []*neural.Brain
	if *brainPath != "" {
		bf, err := telemetry.LoadBrain(*brainPath)
		if err != nil {
			slog.Error("failed to load brain", "path", *brainPath, "error", err)
			os.Exit(1)
		}
		brain, err := bf.Brain(cfg)
		if err != nil {
			slog.Error("brain does not fit config", "path", *brainPath, "error", err)
			os.Exit(1)
		}
		// Both computer slots share the loaded brain.
		brains = []*neural.Brain{brain, brain}
		slog.Info("loaded brain", "path", *brainPath, "generation", bf.Generation, "fitness", bf.Fitness)
	}

	slog.Info("starting",
		"seed", rngSeed,
		"mode", *modeFlag,
		"train", *train,
		"term", *term,
	)

	switch {
	case *term:
		runTerminal(cfg, mode, rng, brains)
	case *train:
		runTraining(cfg, rng, *outputDir)
	default:
		runWindow(cfg, mode, rng, brains)
	}
}

func runWindow(cfg *config.Config, mode game.Mode, rng *rand.Rand, brains []*neural.Brain) {
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	sound, err := audio.NewSoundManager(cfg.Audio)
	if err != nil {
		// Non-fatal, the game runs without sound
		slog.Warn("audio unavailable", "error", err)
	}
	defer sound.Close()

	m := game.NewMatch(cfg, mode, rng, brains...)
	view := app.NewMatchView(m, sound, rng)
	for !rl.WindowShouldClose() {
		view.Update()
		view.Draw()
	}
	score := m.Score()
	slog.Info("match over", "p1", score.P1, "p2", score.P2, "ticks", m.Tick())
}

func runTraining(cfg *config.Config, rng *rand.Rand, outputDir string) {
	ga, err := genetic.New(cfg)
	if err != nil {
		slog.Error("failed to configure genetic algorithm", "error", err)
		os.Exit(1)
	}

	var out *telemetry.OutputManager
	saveDir := "."
	if outputDir != "" {
		out, err = telemetry.NewOutputManager(outputDir)
		if err != nil {
			slog.Error("failed to create output directory", "error", err)
			os.Exit(1)
		}
		defer out.Close()
		if err := out.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config", "error", err)
		}
		saveDir = out.Dir()
	}

	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title+" - training")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	sim := trainer.NewSimulation(cfg, rng, ga)
	defer sim.Close()

	view := app.NewTrainingView(cfg, sim, out, saveDir)
	for !rl.WindowShouldClose() {
		if err := view.Update(); err != nil {
			slog.Error("training failed", "error", err)
			return
		}
		view.Draw()
	}
}

func runTerminal(cfg *config.Config, mode game.Mode, rng *rand.Rand, brains []*neural.Brain) {
	screen, err := tcell.NewScreen()
	if err != nil {
		slog.Error("failed to create screen", "error", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		slog.Error("failed to initialize screen", "error", err)
		os.Exit(1)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := game.NewMatch(cfg, mode, rng, brains...)
	front := terminal.New(screen, m, cfg.Screen.TargetFPS)
	if cfg.Audio.Enabled {
		sound, err := audio.NewSoundManager(cfg.Audio)
		if err != nil {
			slog.Warn("audio unavailable", "error", err)
		} else {
			defer sound.Close()
			front.OnEvent = sound.Play
		}
	}

	if err := front.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("terminal front-end failed", "error", err)
	}
	score := m.Score()
	slog.Info("match over", "p1", score.P1, "p2", score.P2, "ticks", m.Tick())
}
