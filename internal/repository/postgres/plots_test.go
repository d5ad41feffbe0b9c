package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgContainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/RMahshie/titrant/internal/repository"
	"github.com/RMahshie/titrant/pkg/models"
)

// setupPostgres starts a PostgreSQL container with the plots schema applied
func setupPostgres(t *testing.T) repository.PlotRepository {
	t.Helper()
	ctx := context.Background()

	container, err := pgContainer.Run(ctx,
		"postgres:15-alpine",
		pgContainer.WithDatabase("titrant_test"),
		pgContainer.WithUsername("testuser"),
		pgContainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, container.Terminate(ctx))
	})

	dbURL, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := Open(ctx, dbURL)
	require.NoError(t, err)

	schema, err := os.ReadFile("../../../migrations/000001_create_plots.up.sql")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, string(schema))
	require.NoError(t, err)

	repo := NewPostgresPlotRepository(db)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestPostgresPlotRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	repo := setupPostgres(t)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Millisecond)

	older := &models.PlotRecord{
		ID:            uuid.New().String(),
		Acid:          "monoprotic",
		Concentration: 0.1,
		PKa:           []float64{4.76},
		StorageKey:    "plots/older.png",
		SizeBytes:     1024,
		CreatedAt:     base.Add(-time.Minute),
	}
	newer := &models.PlotRecord{
		ID:            uuid.New().String(),
		Acid:          "diprotic",
		Concentration: 0.05,
		PKa:           []float64{1.25, 4.27},
		StorageKey:    "plots/newer.png",
		SizeBytes:     2048,
		CreatedAt:     base,
	}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetByID(ctx, uuid.MustParse(newer.ID))
		require.NoError(t, err)
		assert.Equal(t, newer.Acid, got.Acid)
		assert.Equal(t, newer.PKa, got.PKa)
		assert.Equal(t, newer.StorageKey, got.StorageKey)
		assert.True(t, newer.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := repo.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("newest first", func(t *testing.T) {
		plots, err := repo.ListRecent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, plots, 2)
		assert.Equal(t, newer.ID, plots[0].ID)
		assert.Equal(t, older.ID, plots[1].ID)
	})

	t.Run("limit", func(t *testing.T) {
		plots, err := repo.ListRecent(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, plots, 1)
	})
}
