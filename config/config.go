// Package config provides configuration loading and access for the game and trainer.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game and training configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen" toml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics" toml:"physics"`
	Paddle    PaddleConfig    `yaml:"paddle" toml:"paddle"`
	Ball      BallConfig      `yaml:"ball" toml:"ball"`
	Neural    NeuralConfig    `yaml:"neural" toml:"neural"`
	Training  TrainingConfig  `yaml:"training" toml:"training"`
	Genetic   GeneticConfig   `yaml:"genetic" toml:"genetic"`
	Telemetry TelemetryConfig `yaml:"telemetry" toml:"telemetry"`
	Audio     AudioConfig     `yaml:"audio" toml:"audio"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-" toml:"-"`
}

// ScreenConfig holds display settings. Width and height are also the court size.
type ScreenConfig struct {
	Title     string `yaml:"title" toml:"title"`
	Width     int    `yaml:"width" toml:"width"`
	Height    int    `yaml:"height" toml:"height"`
	TargetFPS int    `yaml:"target_fps" toml:"target_fps"` // 0 = unlimited
}

// PhysicsConfig holds fixed-timestep parameters.
type PhysicsConfig struct {
	TicksPerSecond int `yaml:"ticks_per_second" toml:"ticks_per_second"` // also the serve pause length
	MaxCatchUp     int `yaml:"max_catch_up" toml:"max_catch_up"`         // max ticks run for one long frame
}

// PaddleConfig holds paddle geometry and movement.
type PaddleConfig struct {
	Width   float64 `yaml:"width" toml:"width"`
	Height  float64 `yaml:"height" toml:"height"`
	Speed   float64 `yaml:"speed" toml:"speed"`       // pixels per tick
	XOffset float64 `yaml:"x_offset" toml:"x_offset"` // distance from each paddle to its wall
}

// BallConfig holds ball size and velocity limits.
type BallConfig struct {
	Size         float64 `yaml:"size" toml:"size"`
	MinVel       float64 `yaml:"min_vel" toml:"min_vel"`
	MaxVel       float64 `yaml:"max_vel" toml:"max_vel"`
	Acceleration float64 `yaml:"acceleration" toml:"acceleration"`     // wall bounce scale on |vy|
	PaddleGrowth float64 `yaml:"paddle_growth" toml:"paddle_growth"`   // paddle bounce scale on |vx|
	MaxPaddleVel float64 `yaml:"max_paddle_vel" toml:"max_paddle_vel"` // cap on |vx| after a paddle bounce, 0 = uncapped
}

// NeuralConfig holds brain topology.
type NeuralConfig struct {
	Inputs  int `yaml:"inputs" toml:"inputs"` // perception vector length
	Hidden  int `yaml:"hidden" toml:"hidden"`
	Outputs int `yaml:"outputs" toml:"outputs"`
}

// TrainingConfig holds batch simulation parameters.
type TrainingConfig struct {
	Population       int `yaml:"population" toml:"population"`
	GenerationLength int `yaml:"generation_length" toml:"generation_length"` // serves per game
	Generations      int `yaml:"generations" toml:"generations"`             // 0 = unlimited
	MaxTicks         int `yaml:"max_ticks" toml:"max_ticks"`                 // per game, 0 = unlimited
	Workers          int `yaml:"workers" toml:"workers"`                     // 0 = GOMAXPROCS
}

// GeneticConfig holds evolution operator parameters.
type GeneticConfig struct {
	Selection      string  `yaml:"selection" toml:"selection"` // "roulette" or "tournament"
	TournamentSize int     `yaml:"tournament_size" toml:"tournament_size"`
	EliteCount     int     `yaml:"elite_count" toml:"elite_count"`
	MutationChance float64 `yaml:"mutation_chance" toml:"mutation_chance"`
	MutationCoeff  float64 `yaml:"mutation_coeff" toml:"mutation_coeff"`
}

// TelemetryConfig holds training output parameters.
type TelemetryConfig struct {
	LogEvery int `yaml:"log_every" toml:"log_every"` // log every N generations
}

// AudioConfig holds sound effect parameters.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled" toml:"enabled"`
	SampleRate int     `yaml:"sample_rate" toml:"sample_rate"`
	Volume     float64 `yaml:"volume" toml:"volume"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32     float32 // Screen.Width as float32
	ScreenH32     float32 // Screen.Height as float32
	PaddleW32     float32
	PaddleH32     float32
	PaddleSpeed32 float32
	XOffset32     float32
	BallSize32    float32
	BallMinVel32  float32
	BallMaxVel32  float32
	TickDuration  float64 // seconds per tick
	ChromosomeLen int     // weights + biases for the configured topology
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults. Panics if the embedded file is broken.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML or TOML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Decode into the same struct so only fields present in the file are overwritten
		if strings.EqualFold(filepath.Ext(path), ".toml") {
			if _, err := toml.Decode(string(data), cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the simulation cannot run with.
func (c *Config) validate() error {
	switch {
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	case c.Physics.TicksPerSecond <= 0:
		return fmt.Errorf("physics.ticks_per_second must be positive, got %d", c.Physics.TicksPerSecond)
	case c.Ball.MinVel < 0 || c.Ball.MaxVel < c.Ball.MinVel:
		return fmt.Errorf("ball velocity range [%g, %g] is invalid", c.Ball.MinVel, c.Ball.MaxVel)
	case c.Neural.Inputs <= 0 || c.Neural.Hidden <= 0 || c.Neural.Outputs <= 0:
		return fmt.Errorf("neural topology %d-%d-%d is invalid", c.Neural.Inputs, c.Neural.Hidden, c.Neural.Outputs)
	case c.Training.Population <= 0:
		return fmt.Errorf("training.population must be positive, got %d", c.Training.Population)
	case c.Training.GenerationLength <= 0:
		return fmt.Errorf("training.generation_length must be positive, got %d", c.Training.GenerationLength)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.PaddleW32 = float32(c.Paddle.Width)
	c.Derived.PaddleH32 = float32(c.Paddle.Height)
	c.Derived.PaddleSpeed32 = float32(c.Paddle.Speed)
	c.Derived.XOffset32 = float32(c.Paddle.XOffset)
	c.Derived.BallSize32 = float32(c.Ball.Size)
	c.Derived.BallMinVel32 = float32(c.Ball.MinVel)
	c.Derived.BallMaxVel32 = float32(c.Ball.MaxVel)
	c.Derived.TickDuration = 1.0 / float64(c.Physics.TicksPerSecond)

	n := c.Neural
	c.Derived.ChromosomeLen = n.Hidden*(n.Inputs+1) + n.Outputs*(n.Hidden+1)

	if c.Physics.MaxCatchUp <= 0 {
		c.Physics.MaxCatchUp = 5
	}
	if c.Telemetry.LogEvery <= 0 {
		c.Telemetry.LogEvery = 1
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
