package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/RMahshie/titrant/internal/render"
	"github.com/RMahshie/titrant/internal/speciation"
	"github.com/RMahshie/titrant/pkg/models"
)

// MockRenderer implements render.Renderer for testing
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(ctx context.Context, fig render.Figure) ([]byte, error) {
	args := m.Called(ctx, fig)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

// MockArchiver implements archive.Archiver for testing
type MockArchiver struct {
	mock.Mock
}

func (m *MockArchiver) Archive(ctx context.Context, profile *speciation.Profile, png []byte) (*models.PlotRecord, error) {
	args := m.Called(ctx, profile, png)
	record, _ := args.Get(0).(*models.PlotRecord)
	return record, args.Error(1)
}

func (m *MockArchiver) Get(ctx context.Context, id uuid.UUID) (*models.PlotRecord, string, error) {
	args := m.Called(ctx, id)
	record, _ := args.Get(0).(*models.PlotRecord)
	return record, args.String(1), args.Error(2)
}

func (m *MockArchiver) ListRecent(ctx context.Context, limit int) ([]*models.PlotRecord, error) {
	args := m.Called(ctx, limit)
	plots, _ := args.Get(0).([]*models.PlotRecord)
	return plots, args.Error(1)
}
