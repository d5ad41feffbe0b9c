package speciation

import "math"

// Sample is a single row of a profile.
type Sample struct {
	PH              float64
	Alpha           []float64
	BufferIntensity float64
}

// BufferMaximum returns the sample with the largest finite buffer
// intensity. ok is false when no sample is finite.
func (p *Profile) BufferMaximum() (s Sample, ok bool) {
	best := -1
	for i, b := range p.BufferIntensity {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			continue
		}
		if best < 0 || b > p.BufferIntensity[best] {
			best = i
		}
	}
	if best < 0 {
		return Sample{}, false
	}
	return p.sample(best), true
}

// IntegerSamples returns the rows that fall on whole pH units.
func (p *Profile) IntegerSamples() []Sample {
	var out []Sample
	for i, ph := range p.PH {
		if math.Abs(ph-math.Round(ph)) < DomainStep/10 {
			out = append(out, p.sample(i))
		}
	}
	return out
}

func (p *Profile) sample(i int) Sample {
	alpha := make([]float64, len(p.Alpha))
	for s := range p.Alpha {
		alpha[s] = p.Alpha[s][i]
	}
	return Sample{
		PH:              p.PH[i],
		Alpha:           alpha,
		BufferIntensity: p.BufferIntensity[i],
	}
}
