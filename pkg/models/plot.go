package models

import "time"

// PlotRecord describes an archived chart image
type PlotRecord struct {
	ID            string    `json:"id" doc:"Plot unique identifier"`
	Acid          string    `json:"acid" enum:"monoprotic,diprotic" doc:"Acid type"`
	Concentration float64   `json:"concentration" doc:"Total analyte concentration in mol/L"`
	PKa           []float64 `json:"pka" doc:"Dissociation constant exponents"`
	StorageKey    string    `json:"storage_key" doc:"Object key of the PNG image"`
	SizeBytes     int64     `json:"size_bytes" doc:"Size of the PNG image in bytes"`
	CreatedAt     time.Time `json:"created_at" doc:"When the plot was rendered"`
}
