// Package storage persists batch results to SQLite for later inspection.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"nudge/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Run describes one persisted batch.
type Run struct {
	CreatedAt time.Time
	ID        string
	Clients   int
}

// SQLiteStore writes recommendation batches to a SQLite file. Each batch
// becomes one run row plus its recommendation rows.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore opens (and migrates) a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath must not be empty")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db, dbPath: dbPath}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at TIMESTAMP NOT NULL,
	clients INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS recommendations (
	run_id TEXT NOT NULL REFERENCES runs(id),
	client_code TEXT NOT NULL,
	product TEXT NOT NULL,
	push_notification TEXT NOT NULL,
	PRIMARY KEY (run_id, client_code)
);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// SaveBatch persists one batch of recommendations atomically and returns
// the generated run ID.
func (s *SQLiteStore) SaveBatch(ctx context.Context, recommendations []model.Recommendation) (string, error) {
	runID := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO runs (id, created_at, clients) VALUES (?, ?, ?)",
		runID, time.Now().UTC(), len(recommendations)); err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO recommendations (run_id, client_code, product, push_notification) VALUES (?, ?, ?, ?)")
	if err != nil {
		return "", fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range recommendations {
		if _, err := stmt.ExecContext(ctx, runID, rec.ClientCode, rec.Product, rec.Push); err != nil {
			return "", fmt.Errorf("failed to insert recommendation for %s: %w", rec.ClientCode, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit batch: %w", err)
	}
	return runID, nil
}

// GetRun loads one run's metadata.
func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, created_at, clients FROM runs WHERE id = ?", runID)

	var run Run
	if err := row.Scan(&run.ID, &run.CreatedAt, &run.Clients); err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", runID, err)
	}
	return &run, nil
}

// GetRecommendations loads one run's recommendations in client code order.
func (s *SQLiteStore) GetRecommendations(ctx context.Context, runID string) ([]model.Recommendation, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT client_code, product, push_notification FROM recommendations WHERE run_id = ? ORDER BY client_code",
		runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	defer rows.Close()

	var recommendations []model.Recommendation
	for rows.Next() {
		var rec model.Recommendation
		if err := rows.Scan(&rec.ClientCode, &rec.Product, &rec.Push); err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		recommendations = append(recommendations, rec)
	}
	return recommendations, rows.Err()
}
