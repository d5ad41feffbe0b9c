package repository

import (
	"context"
	"errors"

	"github.com/RMahshie/titrant/pkg/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned when no plot record matches the lookup
var ErrNotFound = errors.New("plot record not found")

// PlotRepository defines the interface for archived plot metadata
type PlotRepository interface {
	Create(ctx context.Context, plot *models.PlotRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.PlotRecord, error)
	ListRecent(ctx context.Context, limit int) ([]*models.PlotRecord, error)
	Close() error
}
