package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/RMahshie/titrant/internal/speciation"
)

// ErrUnknownSubmission is returned when a form carries neither the
// monoprotic nor the diprotic fields
var ErrUnknownSubmission = errors.New("Unknown form submission")

// Form field names posted by the index page
const (
	fieldMonoproticConcentration = "monoprotic_concentration"
	fieldMonoproticPKa           = "monoprotic_pka"
	fieldDiproticConcentration   = "diprotic_concentration"
	fieldDiproticPKa1            = "diprotic_pka1"
	fieldDiproticPKa2            = "diprotic_pka2"
)

// parseSubmission selects the acid type from the fields present in form and
// parses its numeric inputs. The monoprotic form wins when both are present.
func parseSubmission(form url.Values) (speciation.Acid, error) {
	switch {
	case has(form, fieldMonoproticConcentration):
		c, err := floatField(form, fieldMonoproticConcentration)
		if err != nil {
			return nil, err
		}
		pka, err := floatField(form, fieldMonoproticPKa)
		if err != nil {
			return nil, err
		}
		return speciation.MonoproticAcid{Concentration: c, PKa: pka}, nil

	case has(form, fieldDiproticConcentration):
		c, err := floatField(form, fieldDiproticConcentration)
		if err != nil {
			return nil, err
		}
		pka1, err := floatField(form, fieldDiproticPKa1)
		if err != nil {
			return nil, err
		}
		pka2, err := floatField(form, fieldDiproticPKa2)
		if err != nil {
			return nil, err
		}
		return speciation.DiproticAcid{Concentration: c, PKa1: pka1, PKa2: pka2}, nil
	}

	return nil, ErrUnknownSubmission
}

func has(form url.Values, field string) bool {
	_, ok := form[field]
	return ok
}

func floatField(form url.Values, field string) (float64, error) {
	if !has(form, field) {
		return 0, fmt.Errorf("missing form field %q", field)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(form.Get(field)), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return v, nil
}
