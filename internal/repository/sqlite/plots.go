// Package sqlite stores archived plot metadata in a local SQLite file. It
// backs the archive when no PostgreSQL server is configured.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/RMahshie/titrant/internal/repository"
	"github.com/RMahshie/titrant/pkg/models"
)

// timeLayout keeps a fixed width so text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLitePlotRepository implements PlotRepository on a single SQLite file
type SQLitePlotRepository struct {
	db *sql.DB
}

// Open opens or creates the database at path and creates the schema.
func Open(ctx context.Context, path string) (*SQLitePlotRepository, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	repo := &SQLitePlotRepository{db: db}
	if err := repo.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return repo, nil
}

func (r *SQLitePlotRepository) createTables(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS plots (
			id            TEXT PRIMARY KEY,
			acid          TEXT NOT NULL,
			concentration REAL NOT NULL,
			pka           TEXT NOT NULL,
			storage_key   TEXT NOT NULL,
			size_bytes    INTEGER NOT NULL,
			created_at    TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_plots_created_at ON plots (created_at)`,
	}

	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Create inserts a new plot record
func (r *SQLitePlotRepository) Create(ctx context.Context, plot *models.PlotRecord) error {
	pka, err := json.Marshal(plot.PKa)
	if err != nil {
		return fmt.Errorf("failed to marshal pka values: %w", err)
	}

	query := `
		INSERT INTO plots (id, acid, concentration, pka, storage_key, size_bytes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, query,
		plot.ID,
		plot.Acid,
		plot.Concentration,
		string(pka),
		plot.StorageKey,
		plot.SizeBytes,
		plot.CreatedAt.UTC().Format(timeLayout))

	return err
}

// GetByID retrieves a plot record by ID
func (r *SQLitePlotRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.PlotRecord, error) {
	query := `
		SELECT id, acid, concentration, pka, storage_key, size_bytes, created_at
		FROM plots
		WHERE id = ?`

	plot, err := scanPlot(r.db.QueryRowContext(ctx, query, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return plot, err
}

// ListRecent retrieves the newest plot records
func (r *SQLitePlotRepository) ListRecent(ctx context.Context, limit int) ([]*models.PlotRecord, error) {
	query := `
		SELECT id, acid, concentration, pka, storage_key, size_bytes, created_at
		FROM plots
		ORDER BY created_at DESC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plots []*models.PlotRecord
	for rows.Next() {
		plot, err := scanPlot(rows)
		if err != nil {
			return nil, err
		}
		plots = append(plots, plot)
	}

	return plots, rows.Err()
}

// Close closes the database connection
func (r *SQLitePlotRepository) Close() error {
	return r.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlot(row scanner) (*models.PlotRecord, error) {
	var plot models.PlotRecord
	var pka, createdAt string

	err := row.Scan(
		&plot.ID,
		&plot.Acid,
		&plot.Concentration,
		&pka,
		&plot.StorageKey,
		&plot.SizeBytes,
		&createdAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(pka), &plot.PKa); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pka values: %w", err)
	}
	plot.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return &plot, nil
}

var _ repository.PlotRepository = (*SQLitePlotRepository)(nil)
