package models

import (
	"time"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Archive bool      `json:"archive" doc:"Whether rendered charts are archived"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// MonoproticInput is the body of a monoprotic speciation request
type MonoproticInput struct {
	Concentration float64 `json:"concentration" example:"0.1" doc:"Total analyte concentration in mol/L"`
	PKa           float64 `json:"pka" example:"4.76" doc:"Acid dissociation constant exponent"`
}

// DiproticInput is the body of a diprotic speciation request
type DiproticInput struct {
	Concentration float64 `json:"concentration" example:"0.1" doc:"Total analyte concentration in mol/L"`
	PKa1          float64 `json:"pka1" example:"1.25" doc:"First dissociation constant exponent"`
	PKa2          float64 `json:"pka2" example:"4.27" doc:"Second dissociation constant exponent"`
}

// MonoproticRequest represents a request to compute a monoprotic profile
type MonoproticRequest struct {
	Body MonoproticInput
}

// DiproticRequest represents a request to compute a diprotic profile
type DiproticRequest struct {
	Body DiproticInput
}

// SpeciationBody carries every derived series of a profile. Non-finite
// samples are encoded as null.
type SpeciationBody struct {
	Acid            string    `json:"acid" enum:"monoprotic,diprotic" doc:"Acid type"`
	Concentration   float64   `json:"concentration" doc:"Total analyte concentration in mol/L"`
	PKa             []float64 `json:"pka" doc:"Dissociation constant exponents"`
	PH              Series    `json:"ph" doc:"pH domain"`
	H               Series    `json:"h" doc:"Hydrogen ion concentration"`
	OH              Series    `json:"oh" doc:"Hydroxide ion concentration"`
	LogH            Series    `json:"log_h" doc:"log10 of the hydrogen ion concentration"`
	LogOH           Series    `json:"log_oh" doc:"log10 of the hydroxide ion concentration"`
	Alpha           []Series  `json:"alpha" doc:"Alpha fraction per protonation state"`
	LogC            []Series  `json:"log_c" doc:"log10 of alpha times concentration per protonation state"`
	BufferIntensity Series    `json:"buffer_intensity" doc:"Buffer intensity"`
}

// SpeciationResponse represents the computed speciation series
type SpeciationResponse struct {
	Body SpeciationBody
}

// SummaryRequest represents a request for a Markdown speciation table
type SummaryRequest struct {
	Acid string `path:"acid" enum:"monoprotic,diprotic" doc:"Acid type"`
	Body struct {
		Concentration float64  `json:"concentration" example:"0.1" doc:"Total analyte concentration in mol/L"`
		PKa           *float64 `json:"pka,omitempty" doc:"Dissociation constant exponent (monoprotic)"`
		PKa1          *float64 `json:"pka1,omitempty" doc:"First dissociation constant exponent (diprotic)"`
		PKa2          *float64 `json:"pka2,omitempty" doc:"Second dissociation constant exponent (diprotic)"`
	}
}

// SummaryResponse carries a Markdown document
type SummaryResponse struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// ListPlotsRequest represents a request for recently archived plots
type ListPlotsRequest struct {
	Limit int `query:"limit" minimum:"1" maximum:"100" default:"20" doc:"Maximum number of plots"`
}

// ListPlotsResponse represents a list of archived plots
type ListPlotsResponse struct {
	Body struct {
		Plots []*PlotRecord `json:"plots" doc:"Archived plots, newest first"`
	}
}

// GetPlotRequest represents a request for one archived plot
type GetPlotRequest struct {
	ID string `path:"id" doc:"Plot ID"`
}

// GetPlotResponseBody is the body of the plot lookup response
type GetPlotResponseBody struct {
	Plot        *PlotRecord `json:"plot" doc:"Archived plot metadata"`
	DownloadURL string      `json:"download_url" doc:"Pre-signed URL for the PNG image"`
}

// GetPlotResponse represents an archived plot with a download URL
type GetPlotResponse struct {
	Body GetPlotResponseBody
}
