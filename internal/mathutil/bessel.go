// Package mathutil provides the special functions behind the Kaiser window.
package mathutil

import "math"

// Series limits for BesselI0.
const (
	besselRelEpsilon = 1e-17
	besselMaxTerms   = 500
)

// Kaiser & Schafer β formula breakpoints (dB) and coefficients.
const (
	kaiserAttHigh   = 50.0
	kaiserAttMedium = 21.0

	kaiserHighSlope  = 0.1102
	kaiserHighOffset = 8.7

	kaiserMediumCoeff = 0.5842
	kaiserMediumPower = 0.4
	kaiserMediumSlope = 0.07886
)

// BesselI0 computes the modified Bessel function of the first kind, order
// zero, by summing its power series
//
//	I₀(x) = Σ ((x/2)^k / k!)²
//
// until the terms stop contributing. The series converges for every x and
// stays accurate to full precision over the β range used for windows.
func BesselI0(x float64) float64 {
	half := x / 2
	q := half * half
	sum := 1.0
	term := 1.0
	for k := 1; k < besselMaxTerms; k++ {
		term *= q / float64(k*k)
		sum += term
		if term < besselRelEpsilon*sum {
			break
		}
	}
	return sum
}

// KaiserBeta returns the Kaiser window β for a stopband attenuation in dB.
func KaiserBeta(attenuation float64) float64 {
	switch {
	case attenuation > kaiserAttHigh:
		return kaiserHighSlope * (attenuation - kaiserHighOffset)
	case attenuation >= kaiserAttMedium:
		d := attenuation - kaiserAttMedium
		return kaiserMediumCoeff*math.Pow(d, kaiserMediumPower) + kaiserMediumSlope*d
	default:
		return 0
	}
}
