// Package storage persists prediction runs to postgres. The engine itself is
// stateless; persistence is fire-and-forget plumbing for later review.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/Tranv-IA/ContenAI/internal/config"
	"github.com/Tranv-IA/ContenAI/internal/model"
)

type Storage struct {
	db *sql.DB
}

func NewStorage(cfg config.DBConfig) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Storage{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS prediction_runs (
			id SERIAL PRIMARY KEY,
			niche TEXT NOT NULL,
			keywords TEXT,
			confidence_score INTEGER,
			fallback BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS prediction_details (
			id SERIAL PRIMARY KEY,
			run_id INTEGER REFERENCES prediction_runs(id),
			keyword TEXT NOT NULL,
			current_value DOUBLE PRECISION,
			predicted_values TEXT,
			explanation TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS intervention_points (
			id SERIAL PRIMARY KEY,
			run_id INTEGER REFERENCES prediction_runs(id),
			scheduled_at TIMESTAMP,
			action TEXT,
			keywords TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS next_actions (
			id SERIAL PRIMARY KEY,
			run_id INTEGER REFERENCES prediction_runs(id),
			action TEXT
		)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query %s: %w", query, err)
		}
	}

	return nil
}

// SavePredictionRun stores one result with its details, schedule and actions.
func (s *Storage) SavePredictionRun(result *model.PredictionResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	keywords, _ := json.Marshal(result.Keywords)

	var runID int
	err = tx.QueryRow(`
		INSERT INTO prediction_runs (niche, keywords, confidence_score, fallback)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		result.Niche, string(keywords), result.ConfidenceScore, result.Fallback).Scan(&runID)
	if err != nil {
		return fmt.Errorf("failed to insert prediction run: %w", err)
	}

	for _, d := range result.Predictions {
		values, _ := json.Marshal(d.PredictedValues)
		_, err = tx.Exec(`
			INSERT INTO prediction_details (run_id, keyword, current_value, predicted_values, explanation)
			VALUES ($1, $2, $3, $4, $5)`,
			runID, d.Keyword, d.CurrentValue, string(values), d.Explanation)
		if err != nil {
			return fmt.Errorf("failed to insert prediction detail: %w", err)
		}
	}

	for _, p := range result.InterventionPoints {
		kws, _ := json.Marshal(p.Keywords)
		_, err = tx.Exec(`
			INSERT INTO intervention_points (run_id, scheduled_at, action, keywords)
			VALUES ($1, $2, $3, $4)`,
			runID, p.Timestamp, p.Action, string(kws))
		if err != nil {
			return fmt.Errorf("failed to insert intervention point: %w", err)
		}
	}

	for _, action := range result.NextActions {
		_, err = tx.Exec(`
			INSERT INTO next_actions (run_id, action)
			VALUES ($1, $2)`,
			runID, action)
		if err != nil {
			return fmt.Errorf("failed to insert next action: %w", err)
		}
	}

	return tx.Commit()
}
