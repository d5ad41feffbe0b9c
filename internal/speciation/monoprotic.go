package speciation

import "math"

// MonoproticAcid is a weak acid HA with a single dissociation constant.
type MonoproticAcid struct {
	Concentration float64
	PKa           float64
}

// Kind implements Acid.
func (MonoproticAcid) Kind() Kind { return Monoprotic }

// Profile computes the alpha fractions, log concentrations and buffer
// intensity at every pH in ph.
func (a MonoproticAcid) Profile(ph []float64) *Profile {
	p := newProfile(Monoprotic, a.Concentration, []float64{a.PKa}, ph)
	ka := math.Pow(10, -a.PKa)

	for i, h := range p.H {
		alpha0 := 1 / ((ka / h) + 1)
		alpha1 := 1 / (1 + (h / ka))

		p.Alpha[0][i] = alpha0
		p.Alpha[1][i] = alpha1
		p.BufferIntensity[i] = bufferFactor * a.Concentration * alpha0 * alpha1
	}

	p.fillLogC()
	return p
}
