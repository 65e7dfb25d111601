package telemetry

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"

	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/neural"
)

// HistoryStore keeps every training run and its generations in SQLite so
// runs can be compared after the output directory is gone.
type HistoryStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewHistoryStore(path string) *HistoryStore {
	return &HistoryStore{path: path}
}

// Init opens the database and creates the schema.
func (s *HistoryStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}
	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			seed INTEGER NOT NULL,
			config TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS generations (
			run_id TEXT NOT NULL REFERENCES runs(id),
			generation INTEGER NOT NULL,
			best REAL NOT NULL,
			worst REAL NOT NULL,
			mean REAL NOT NULL,
			stddev REAL NOT NULL,
			ticks INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			best_chromosome BLOB NOT NULL,
			PRIMARY KEY (run_id, generation)
		);
	`)
	if err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

func (s *HistoryStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, errors.New("history store not initialized")
	}
	return s.db, nil
}

// StartRun records a new run and returns its id.
func (s *HistoryStore) StartRun(ctx context.Context, seed int64, cfg *config.Config) (string, error) {
	db, err := s.getDB()
	if err != nil {
		return "", err
	}

	cfgYAML, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}

	id := uuid.NewString()
	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, seed, config) VALUES (?, ?, ?, ?)
	`, id, time.Now().UTC().Format(time.RFC3339), seed, string(cfgYAML))
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// SaveGeneration stores a generation's statistics and best chromosome.
func (s *HistoryStore) SaveGeneration(ctx context.Context, runID string, stats GenerationStats, best neural.Chromosome) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := json.Marshal(best)
	if err != nil {
		return fmt.Errorf("encode chromosome: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO generations (run_id, generation, best, worst, mean, stddev, ticks, duration_ms, best_chromosome)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, generation) DO UPDATE SET
			best = excluded.best,
			worst = excluded.worst,
			mean = excluded.mean,
			stddev = excluded.stddev,
			ticks = excluded.ticks,
			duration_ms = excluded.duration_ms,
			best_chromosome = excluded.best_chromosome
	`, runID, stats.Generation, stats.Best, stats.Worst, stats.Mean, stats.StdDev, stats.Ticks, stats.DurationMS, payload)
	if err != nil {
		return fmt.Errorf("save generation %d: %w", stats.Generation, err)
	}
	return nil
}

// Generations returns a run's generations in order.
func (s *HistoryStore) Generations(ctx context.Context, runID string) ([]GenerationStats, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT generation, best, worst, mean, stddev, ticks, duration_ms
		FROM generations WHERE run_id = ? ORDER BY generation
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GenerationStats
	for rows.Next() {
		var g GenerationStats
		if err := rows.Scan(&g.Generation, &g.Best, &g.Worst, &g.Mean, &g.StdDev, &g.Ticks, &g.DurationMS); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// BestChromosome returns the fittest chromosome recorded for a run.
func (s *HistoryStore) BestChromosome(ctx context.Context, runID string) (neural.Chromosome, float64, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, 0, false, err
	}

	var (
		payload []byte
		fitness float64
	)
	err = db.QueryRowContext(ctx, `
		SELECT best_chromosome, best FROM generations
		WHERE run_id = ? ORDER BY best DESC, generation DESC LIMIT 1
	`, runID).Scan(&payload, &fitness)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, false, nil
		}
		return nil, 0, false, err
	}

	var c neural.Chromosome
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, 0, false, fmt.Errorf("decode chromosome for run %s: %w", runID, err)
	}
	return c, fitness, true, nil
}

// Close closes the database.
func (s *HistoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
