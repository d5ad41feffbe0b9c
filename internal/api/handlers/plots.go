package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/titrant/internal/archive"
	"github.com/RMahshie/titrant/internal/repository"
	"github.com/RMahshie/titrant/pkg/models"
)

// PlotsHandler exposes archived charts
type PlotsHandler struct {
	archiver archive.Archiver
}

// NewPlotsHandler creates a new plots handler. archiver may be nil when
// archiving is disabled.
func NewPlotsHandler(archiver archive.Archiver) *PlotsHandler {
	return &PlotsHandler{archiver: archiver}
}

// ListPlots returns the most recently archived charts
func (h *PlotsHandler) ListPlots(ctx context.Context, req *models.ListPlotsRequest) (*models.ListPlotsResponse, error) {
	if h.archiver == nil {
		return nil, huma.Error503ServiceUnavailable("Plot archive is disabled")
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 20
	}

	plots, err := h.archiver.ListRecent(ctx, limit)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list plots", err)
	}
	if plots == nil {
		plots = []*models.PlotRecord{}
	}

	resp := &models.ListPlotsResponse{}
	resp.Body.Plots = plots
	return resp, nil
}

// GetPlot returns one archived chart with a download URL
func (h *PlotsHandler) GetPlot(ctx context.Context, req *models.GetPlotRequest) (*models.GetPlotResponse, error) {
	if h.archiver == nil {
		return nil, huma.Error503ServiceUnavailable("Plot archive is disabled")
	}

	plotID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid plot ID", err)
	}

	plot, url, err := h.archiver.Get(ctx, plotID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, huma.Error404NotFound("Plot not found", err)
	}
	if err != nil {
		log.Error().Err(err).Str("plotID", req.ID).Msg("Failed to load plot")
		return nil, huma.Error500InternalServerError("Failed to load plot", err)
	}

	return &models.GetPlotResponse{
		Body: models.GetPlotResponseBody{
			Plot:        plot,
			DownloadURL: url,
		},
	}, nil
}
