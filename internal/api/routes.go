package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	"github.com/RMahshie/titrant/internal/api/handlers"
	"github.com/RMahshie/titrant/internal/archive"
	"github.com/RMahshie/titrant/internal/render"
)

// RegisterRoutes sets up the form routes and all API routes. archiver may be
// nil when archiving is disabled.
func RegisterRoutes(router chi.Router, api huma.API, renderer render.Renderer, archiver archive.Archiver) {
	// Initialize handlers
	formHandler := handlers.NewFormHandler(renderer, archiver)
	speciationHandler := handlers.NewSpeciationHandler()
	plotsHandler := handlers.NewPlotsHandler(archiver)

	// The index form posts back to itself and downloads plot.png
	router.Get("/", formHandler.ServeForm)
	router.Post("/", formHandler.Submit)

	// Register speciation routes
	huma.Register(api, huma.Operation{
		OperationID: "monoproticSpeciation",
		Method:      http.MethodPost,
		Path:        "/api/speciation/monoprotic",
		Summary:     "Monoprotic speciation",
		Description: "Returns alpha fractions, log concentrations and buffer intensity over pH 0 to 13.9",
		Tags:        []string{"Speciation"},
	}, speciationHandler.Monoprotic)

	huma.Register(api, huma.Operation{
		OperationID: "diproticSpeciation",
		Method:      http.MethodPost,
		Path:        "/api/speciation/diprotic",
		Summary:     "Diprotic speciation",
		Description: "Returns alpha fractions, log concentrations and buffer intensity over pH 0 to 13.9",
		Tags:        []string{"Speciation"},
	}, speciationHandler.Diprotic)

	huma.Register(api, huma.Operation{
		OperationID: "speciationSummary",
		Method:      http.MethodPost,
		Path:        "/api/speciation/{acid}/summary",
		Summary:     "Speciation summary",
		Description: "Returns a Markdown table of alpha fractions at integer pH and the buffer maximum",
		Tags:        []string{"Speciation"},
	}, speciationHandler.Summary)

	// Register archive routes
	huma.Register(api, huma.Operation{
		OperationID: "listPlots",
		Method:      http.MethodGet,
		Path:        "/api/plots",
		Summary:     "List archived plots",
		Description: "Returns the most recently archived charts, newest first",
		Tags:        []string{"Plots"},
	}, plotsHandler.ListPlots)

	huma.Register(api, huma.Operation{
		OperationID: "getPlot",
		Method:      http.MethodGet,
		Path:        "/api/plots/{id}",
		Summary:     "Get archived plot",
		Description: "Returns archived chart metadata and a pre-signed download URL",
		Tags:        []string{"Plots"},
	}, plotsHandler.GetPlot)
}
