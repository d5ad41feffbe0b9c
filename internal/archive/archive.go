package archive

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/titrant/internal/repository"
	"github.com/RMahshie/titrant/internal/speciation"
	"github.com/RMahshie/titrant/internal/storage"
	"github.com/RMahshie/titrant/pkg/models"
)

// ErrNotArchivable is returned for inputs that cannot be indexed, such as
// NaN or infinite concentrations.
var ErrNotArchivable = errors.New("plot inputs are not archivable")

const pngContentType = "image/png"

// Archiver stores rendered charts and looks them up again
type Archiver interface {
	Archive(ctx context.Context, profile *speciation.Profile, png []byte) (*models.PlotRecord, error)
	Get(ctx context.Context, id uuid.UUID) (*models.PlotRecord, string, error)
	ListRecent(ctx context.Context, limit int) ([]*models.PlotRecord, error)
}

type archiveService struct {
	store      storage.BlobStore
	repository repository.PlotRepository
	now        func() time.Time
}

// NewArchiveService wires a blob store and a metadata repository together
func NewArchiveService(store storage.BlobStore, repo repository.PlotRepository) Archiver {
	return &archiveService{
		store:      store,
		repository: repo,
		now:        time.Now,
	}
}

// Archive uploads the PNG first and records it afterwards, so every indexed
// record points at an existing object. A failed insert removes the upload.
func (s *archiveService) Archive(ctx context.Context, profile *speciation.Profile, png []byte) (*models.PlotRecord, error) {
	if !archivable(profile) {
		return nil, ErrNotArchivable
	}

	id := uuid.New()
	record := &models.PlotRecord{
		ID:            id.String(),
		Acid:          string(profile.Kind),
		Concentration: profile.Concentration,
		PKa:           append([]float64(nil), profile.PKa...),
		StorageKey:    storageKey(id),
		SizeBytes:     int64(len(png)),
		CreatedAt:     s.now().UTC(),
	}

	if err := s.store.Upload(ctx, record.StorageKey, png, pngContentType); err != nil {
		return nil, fmt.Errorf("failed to store plot image: %w", err)
	}

	if err := s.repository.Create(ctx, record); err != nil {
		if delErr := s.store.DeleteFile(ctx, record.StorageKey); delErr != nil {
			log.Warn().Err(delErr).Str("key", record.StorageKey).Msg("Failed to remove orphaned plot image")
		}
		return nil, fmt.Errorf("failed to record plot: %w", err)
	}

	log.Info().Str("plotID", record.ID).Str("acid", record.Acid).Int64("bytes", record.SizeBytes).Msg("Plot archived")
	return record, nil
}

// Get returns the record and a presigned download URL for it
func (s *archiveService) Get(ctx context.Context, id uuid.UUID) (*models.PlotRecord, string, error) {
	record, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	url, err := s.store.GenerateDownloadURL(ctx, record.StorageKey)
	if err != nil {
		return nil, "", err
	}
	return record, url, nil
}

// ListRecent returns the newest records first
func (s *archiveService) ListRecent(ctx context.Context, limit int) ([]*models.PlotRecord, error) {
	return s.repository.ListRecent(ctx, limit)
}

func storageKey(id uuid.UUID) string {
	return fmt.Sprintf("plots/%s.png", id)
}

func archivable(p *speciation.Profile) bool {
	if p == nil || !isFinite(p.Concentration) {
		return false
	}
	for _, v := range p.PKa {
		if !isFinite(v) {
			return false
		}
	}
	return true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
