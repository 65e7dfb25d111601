package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/neural"
)

// BrainFile is a saved chromosome with the topology it was trained for.
type BrainFile struct {
	Topology   []int             `json:"topology"`
	Generation int               `json:"generation"`
	Fitness    float64           `json:"fitness"`
	Chromosome neural.Chromosome `json:"chromosome"`
}

// NewBrainFile records a chromosome trained under cfg.
func NewBrainFile(cfg *config.Config, generation int, fitness float64, c neural.Chromosome) *BrainFile {
	return &BrainFile{
		Topology:   neural.Topology(cfg),
		Generation: generation,
		Fitness:    fitness,
		Chromosome: c.Clone(),
	}
}

// Brain rebuilds the brain. The saved topology must match cfg.
func (bf *BrainFile) Brain(cfg *config.Config) (*neural.Brain, error) {
	want := neural.Topology(cfg)
	if len(bf.Topology) != len(want) {
		return nil, fmt.Errorf("brain topology %v does not match config %v", bf.Topology, want)
	}
	for i := range want {
		if bf.Topology[i] != want[i] {
			return nil, fmt.Errorf("brain topology %v does not match config %v", bf.Topology, want)
		}
	}
	return neural.BrainFromChromosome(cfg, bf.Chromosome)
}

// SaveBrain writes a brain file as indented JSON.
func SaveBrain(path string, bf *BrainFile) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create brain dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(bf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal brain: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write brain: %w", err)
	}
	return nil
}

// LoadBrain reads a brain file from disk.
func LoadBrain(path string) (*BrainFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read brain: %w", err)
	}

	var bf BrainFile
	if err := json.Unmarshal(data, &bf); err != nil {
		return nil, fmt.Errorf("unmarshal brain: %w", err)
	}
	return &bf, nil
}
