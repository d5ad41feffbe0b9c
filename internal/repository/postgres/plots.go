package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/RMahshie/titrant/internal/repository"
	"github.com/RMahshie/titrant/pkg/models"
)

// PostgresPlotRepository implements PlotRepository for PostgreSQL
type PostgresPlotRepository struct {
	db *sql.DB
}

// Open connects to PostgreSQL and verifies the connection
func Open(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// NewPostgresPlotRepository creates a new PostgreSQL plot repository
func NewPostgresPlotRepository(db *sql.DB) repository.PlotRepository {
	return &PostgresPlotRepository{db: db}
}

// Create inserts a new plot record
func (r *PostgresPlotRepository) Create(ctx context.Context, plot *models.PlotRecord) error {
	pka, err := json.Marshal(plot.PKa)
	if err != nil {
		return fmt.Errorf("failed to marshal pka values: %w", err)
	}

	query := `
		INSERT INTO plots (id, acid, concentration, pka, storage_key, size_bytes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.db.ExecContext(ctx, query,
		plot.ID,
		plot.Acid,
		plot.Concentration,
		string(pka),
		plot.StorageKey,
		plot.SizeBytes,
		plot.CreatedAt)

	return err
}

// GetByID retrieves a plot record by ID
func (r *PostgresPlotRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.PlotRecord, error) {
	query := `
		SELECT id, acid, concentration, pka, storage_key, size_bytes, created_at
		FROM plots
		WHERE id = $1`

	plot, err := scanPlot(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return plot, err
}

// ListRecent retrieves the newest plot records
func (r *PostgresPlotRepository) ListRecent(ctx context.Context, limit int) ([]*models.PlotRecord, error) {
	query := `
		SELECT id, acid, concentration, pka, storage_key, size_bytes, created_at
		FROM plots
		ORDER BY created_at DESC
		LIMIT $1`

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

// Close closes the underlying connection pool
func (r *PostgresPlotRepository) Close() error {
	return r.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlot(row scanner) (*models.PlotRecord, error) {
	var plot models.PlotRecord
	var pka []byte

	err := row.Scan(
		&plot.ID,
		&plot.Acid,
		&plot.Concentration,
		&pka,
		&plot.StorageKey,
		&plot.SizeBytes,
		&plot.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(pka, &plot.PKa); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pka values: %w", err)
	}

	return &plot, nil
}
