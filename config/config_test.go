package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults failed: %v", err)
	}

	if cfg.Screen.Width != 800 || cfg.Screen.Height != 600 {
		t.Errorf("expected 800x600 court, got %dx%d", cfg.Screen.Width, cfg.Screen.Height)
	}
	if cfg.Neural.Inputs != 5 {
		t.Errorf("expected 5 perception inputs, got %d", cfg.Neural.Inputs)
	}
	if cfg.Training.GenerationLength != 10 {
		t.Errorf("expected 10 serves per generation, got %d", cfg.Training.GenerationLength)
	}

	// 15*(5+1) + 1*(15+1)
	if cfg.Derived.ChromosomeLen != 106 {
		t.Errorf("expected chromosome length 106, got %d", cfg.Derived.ChromosomeLen)
	}
	if cfg.Derived.TickDuration != 1.0/60.0 {
		t.Errorf("unexpected tick duration %v", cfg.Derived.TickDuration)
	}
}

func TestLoadYAMLOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte("ball:\n  paddle_growth: 1.25\ntraining:\n  population: 8\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Ball.PaddleGrowth != 1.25 {
		t.Errorf("expected paddle growth 1.25, got %v", cfg.Ball.PaddleGrowth)
	}
	if cfg.Training.Population != 8 {
		t.Errorf("expected population 8, got %d", cfg.Training.Population)
	}
	// Untouched fields keep defaults
	if cfg.Ball.MaxVel != 3.0 {
		t.Errorf("expected default max vel 3.0, got %v", cfg.Ball.MaxVel)
	}
}

func TestLoadTOMLOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.toml")
	data := []byte("[neural]\nhidden = 4\n\n[genetic]\nselection = \"tournament\"\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Neural.Hidden != 4 {
		t.Errorf("expected 4 hidden neurons, got %d", cfg.Neural.Hidden)
	}
	if cfg.Genetic.Selection != "tournament" {
		t.Errorf("expected tournament selection, got %q", cfg.Genetic.Selection)
	}
	// 4*(5+1) + 1*(4+1)
	if cfg.Derived.ChromosomeLen != 29 {
		t.Errorf("expected chromosome length 29, got %d", cfg.Derived.ChromosomeLen)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero ticks", "physics:\n  ticks_per_second: 0\n"},
		{"inverted velocity", "ball:\n  min_vel: 4\n  max_vel: 3\n"},
		{"empty hidden layer", "neural:\n  hidden: 0\n"},
		{"no serves", "training:\n  generation_length: 0\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Training.Population = 33

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Training.Population != 33 {
		t.Errorf("expected population 33 after round trip, got %d", loaded.Training.Population)
	}
}
