package speciation

import "math"

const (
	// pKw is the ion product exponent of water at 25 C.
	pKw = 14.0

	// bufferFactor is ln(10), rounded the way the buffer intensity formula uses it.
	bufferFactor = 2.303

	// DomainPoints is the number of samples in the default pH domain.
	DomainPoints = 140

	// DomainStep is the spacing of the default pH domain.
	DomainStep = 0.1
)

// Kind identifies the acid type a profile was computed for
type Kind string

const (
	Monoprotic Kind = "monoprotic"
	Diprotic   Kind = "diprotic"
)

// Acid is anything that can produce a speciation profile over a pH domain
type Acid interface {
	Kind() Kind
	Profile(ph []float64) *Profile
}

// Profile holds every derived series for one acid, one value per pH sample.
// Alpha and LogC are indexed by protonation state: index 0 is the fully
// protonated species.
type Profile struct {
	Kind            Kind
	Concentration   float64
	PKa             []float64
	PH              []float64
	H               []float64
	OH              []float64
	LogH            []float64
	LogOH           []float64
	Alpha           [][]float64
	LogC            [][]float64
	BufferIntensity []float64
}

// PHDomain returns the fixed pH domain [0, 14) sampled every 0.1.
func PHDomain() []float64 {
	ph := make([]float64, DomainPoints)
	for i := range ph {
		ph[i] = float64(i) * DomainStep
	}
	return ph
}

// newProfile allocates a profile and fills the water-related series.
func newProfile(kind Kind, concentration float64, pka []float64, ph []float64) *Profile {
	n := len(ph)
	species := len(pka) + 1

	p := &Profile{
		Kind:            kind,
		Concentration:   concentration,
		PKa:             append([]float64(nil), pka...),
		PH:              append([]float64(nil), ph...),
		H:               make([]float64, n),
		OH:              make([]float64, n),
		LogH:            make([]float64, n),
		LogOH:           make([]float64, n),
		Alpha:           make([][]float64, species),
		LogC:            make([][]float64, species),
		BufferIntensity: make([]float64, n),
	}
	for s := 0; s < species; s++ {
		p.Alpha[s] = make([]float64, n)
		p.LogC[s] = make([]float64, n)
	}

	for i, v := range ph {
		p.H[i] = math.Pow(10, -v)
		p.OH[i] = math.Pow(10, -(pKw - v))
		p.LogH[i] = math.Log10(p.H[i])
		p.LogOH[i] = math.Log10(p.OH[i])
	}
	return p
}

// fillLogC derives log10(alpha * C) for every species. Zero or negative
// products yield -Inf or NaN and are kept as is.
func (p *Profile) fillLogC() {
	for s, alpha := range p.Alpha {
		for i, a := range alpha {
			p.LogC[s][i] = math.Log10(a * p.Concentration)
		}
	}
}

// Len returns the number of pH samples.
func (p *Profile) Len() int {
	return len(p.PH)
}

// Species returns the number of protonation states.
func (p *Profile) Species() int {
	return len(p.Alpha)
}
