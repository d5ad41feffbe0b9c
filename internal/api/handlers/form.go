package handlers

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/RMahshie/titrant/internal/archive"
	"github.com/RMahshie/titrant/internal/render"
	"github.com/RMahshie/titrant/internal/speciation"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexPage = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// maxFormMemory bounds the in-memory part of multipart submissions
const maxFormMemory = 1 << 20

// FormHandler serves the index form and turns submissions into chart downloads
type FormHandler struct {
	renderer render.Renderer
	archiver archive.Archiver
}

// NewFormHandler creates a new form handler. archiver may be nil, in which
// case rendered charts are not archived.
func NewFormHandler(renderer render.Renderer, archiver archive.Archiver) *FormHandler {
	return &FormHandler{
		renderer: renderer,
		archiver: archiver,
	}
}

// ServeForm renders the index page
func (h *FormHandler) ServeForm(w http.ResponseWriter, r *http.Request) {
	domain := speciation.PHDomain()
	data := struct {
		Title string
		PHMin string
		PHMax string
	}{
		Title: "Acid-Base Speciation",
		PHMin: strconv.FormatFloat(domain[0], 'f', 1, 64),
		PHMax: strconv.FormatFloat(domain[len(domain)-1], 'f', 1, 64),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexPage.Execute(w, data); err != nil {
		log.Error().Err(err).Msg("Failed to render index page")
	}
}

// Submit parses a form submission, computes the profile and returns the
// chart as a plot.png download. Failures answer with {"error": "..."}.
func (h *FormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	acid, err := parseSubmission(r.PostForm)
	if err != nil {
		log.Info().Err(err).Msg("Rejected form submission")
		writeError(w, http.StatusBadRequest, err)
		return
	}

	profile := acid.Profile(speciation.PHDomain())
	log.Info().Str("acid", string(profile.Kind)).Float64("concentration", profile.Concentration).Floats64("pka", profile.PKa).Msg("Rendering speciation chart")

	png, err := h.renderer.Render(r.Context(), render.SpeciationFigure(profile))
	if err != nil {
		log.Error().Err(err).Str("acid", string(profile.Kind)).Msg("Chart rendering failed")
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if h.archiver != nil {
		if _, err := h.archiver.Archive(r.Context(), profile, png); err != nil {
			log.Warn().Err(err).Str("acid", string(profile.Kind)).Msg("Failed to archive chart")
		}
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename="plot.png"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		log.Warn().Err(err).Msg("Failed to write chart response")
	}
}

// errorPayload is the body of every failed form submission
type errorPayload struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorPayload{Error: err.Error()})
}
