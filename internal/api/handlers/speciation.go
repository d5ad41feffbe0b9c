package handlers

import (
	"bytes"
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/titrant/internal/report"
	"github.com/RMahshie/titrant/internal/speciation"
	"github.com/RMahshie/titrant/pkg/models"
)

// SpeciationHandler serves speciation series as JSON and Markdown
type SpeciationHandler struct{}

// NewSpeciationHandler creates a new speciation handler
func NewSpeciationHandler() *SpeciationHandler {
	return &SpeciationHandler{}
}

// Monoprotic computes the series for a monoprotic acid
func (h *SpeciationHandler) Monoprotic(ctx context.Context, req *models.MonoproticRequest) (*models.SpeciationResponse, error) {
	acid := speciation.MonoproticAcid{Concentration: req.Body.Concentration, PKa: req.Body.PKa}
	return profileResponse(acid.Profile(speciation.PHDomain())), nil
}

// Diprotic computes the series for a diprotic acid
func (h *SpeciationHandler) Diprotic(ctx context.Context, req *models.DiproticRequest) (*models.SpeciationResponse, error) {
	acid := speciation.DiproticAcid{Concentration: req.Body.Concentration, PKa1: req.Body.PKa1, PKa2: req.Body.PKa2}
	return profileResponse(acid.Profile(speciation.PHDomain())), nil
}

// Summary returns a Markdown table of alpha fractions and buffer intensity
func (h *SpeciationHandler) Summary(ctx context.Context, req *models.SummaryRequest) (*models.SummaryResponse, error) {
	var acid speciation.Acid
	switch speciation.Kind(req.Acid) {
	case speciation.Monoprotic:
		if req.Body.PKa == nil {
			return nil, huma.Error400BadRequest("pka is required for a monoprotic acid")
		}
		acid = speciation.MonoproticAcid{Concentration: req.Body.Concentration, PKa: *req.Body.PKa}
	case speciation.Diprotic:
		if req.Body.PKa1 == nil || req.Body.PKa2 == nil {
			return nil, huma.Error400BadRequest("pka1 and pka2 are required for a diprotic acid")
		}
		acid = speciation.DiproticAcid{Concentration: req.Body.Concentration, PKa1: *req.Body.PKa1, PKa2: *req.Body.PKa2}
	default:
		return nil, huma.Error400BadRequest("Unknown acid type " + req.Acid)
	}

	var buf bytes.Buffer
	if err := report.WriteSummary(&buf, acid.Profile(speciation.PHDomain())); err != nil {
		log.Error().Err(err).Str("acid", req.Acid).Msg("Failed to build summary")
		return nil, huma.Error500InternalServerError("Failed to build summary", err)
	}

	return &models.SummaryResponse{
		ContentType: "text/markdown; charset=utf-8",
		Body:        buf.Bytes(),
	}, nil
}

func profileResponse(p *speciation.Profile) *models.SpeciationResponse {
	body := models.SpeciationBody{
		Acid:            string(p.Kind),
		Concentration:   p.Concentration,
		PKa:             p.PKa,
		PH:              p.PH,
		H:               p.H,
		OH:              p.OH,
		LogH:            p.LogH,
		LogOH:           p.LogOH,
		BufferIntensity: p.BufferIntensity,
	}
	for s := range p.Alpha {
		body.Alpha = append(body.Alpha, p.Alpha[s])
		body.LogC = append(body.LogC, p.LogC[s])
	}
	return &models.SpeciationResponse{Body: body}
}
