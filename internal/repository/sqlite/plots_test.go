package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RMahshie/titrant/internal/repository"
	"github.com/RMahshie/titrant/pkg/models"
)

func openTestRepo(t *testing.T) *SQLitePlotRepository {
	t.Helper()
	repo, err := Open(context.Background(), filepath.Join(t.TempDir(), "archive", "plots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func newRecord(acid string, createdAt time.Time, pka ...float64) *models.PlotRecord {
	id := uuid.New().String()
	return &models.PlotRecord{
		ID:            id,
		Acid:          acid,
		Concentration: 0.1,
		PKa:           pka,
		StorageKey:    "plots/" + id + ".png",
		SizeBytes:     4096,
		CreatedAt:     createdAt,
	}
}

func TestSQLitePlotRepository_CreateAndGet(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	created := time.Date(2026, 10, 19, 12, 30, 0, 123456789, time.UTC)
	rec := newRecord("diprotic", created, 1.25, 4.27)

	require.NoError(t, repo.Create(ctx, rec))

	got, err := repo.GetByID(ctx, uuid.MustParse(rec.ID))
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, "diprotic", got.Acid)
	assert.Equal(t, 0.1, got.Concentration)
	assert.Equal(t, []float64{1.25, 4.27}, got.PKa)
	assert.Equal(t, rec.StorageKey, got.StorageKey)
	assert.Equal(t, int64(4096), got.SizeBytes)
	assert.True(t, created.Equal(got.CreatedAt))
}

func TestSQLitePlotRepository_NotFound(t *testing.T) {
	repo := openTestRepo(t)

	_, err := repo.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSQLitePlotRepository_ListRecent(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	// sub-second offsets exercise the text ordering of created_at
	first := newRecord("monoprotic", base.Add(100*time.Millisecond), 4.76)
	second := newRecord("monoprotic", base.Add(120*time.Millisecond), 3.75)
	third := newRecord("diprotic", base.Add(time.Second), 2.15, 7.2)
	for _, rec := range []*models.PlotRecord{second, third, first} {
		require.NoError(t, repo.Create(ctx, rec))
	}

	plots, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, plots, 3)
	assert.Equal(t, third.ID, plots[0].ID)
	assert.Equal(t, second.ID, plots[1].ID)
	assert.Equal(t, first.ID, plots[2].ID)

	limited, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestSQLitePlotRepository_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "plots.db")

	repo, err := Open(ctx, path)
	require.NoError(t, err)
	rec := newRecord("monoprotic", time.Now(), 4.76)
	require.NoError(t, repo.Create(ctx, rec))
	require.NoError(t, repo.Close())

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetByID(ctx, uuid.MustParse(rec.ID))
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
}
