package speciation

import "math"

// DiproticAcid is a weak acid H2A with two dissociation constants. PKa1 is
// expected to be below PKa2 but the ordering is not checked.
type DiproticAcid struct {
	Concentration float64
	PKa1          float64
	PKa2          float64
}

// Kind implements Acid.
func (DiproticAcid) Kind() Kind { return Diprotic }

// Profile computes the three alpha fractions, their log concentrations and
// the buffer intensity at every pH in ph.
//
// The alpha2 denominator is evaluated strictly left to right,
// h*h/Ka1*Ka2 == ((h*h)/Ka1)*Ka2, so the three fractions do not sum to one
// in general.
func (a DiproticAcid) Profile(ph []float64) *Profile {
	p := newProfile(Diprotic, a.Concentration, []float64{a.PKa1, a.PKa2}, ph)
	ka1 := math.Pow(10, -a.PKa1)
	ka2 := math.Pow(10, -a.PKa2)

	for i, h := range p.H {
		alpha0 := 1 / (1 + (ka1 / h) + (ka1 * ka2 / (h * h)))
		alpha1 := 1 / (1 + h/ka1 + ka2/h)
		alpha2 := 1 / (h*h/ka1*ka2 + h/ka2 + 1)

		p.Alpha[0][i] = alpha0
		p.Alpha[1][i] = alpha1
		p.Alpha[2][i] = alpha2
		p.BufferIntensity[i] = bufferFactor * a.Concentration * (alpha0*alpha1 + 4*alpha0*alpha2 + alpha2)
	}

	p.fillLogC()
	return p
}
