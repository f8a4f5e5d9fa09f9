package testutil

import "math"

// HaarLow returns the orthonormal Haar scaling filter.
func HaarLow() []float64 {
	return []float64{math.Sqrt2 / 2, math.Sqrt2 / 2}
}

// HaarHigh returns the orthonormal Haar wavelet filter.
func HaarHigh() []float64 {
	return QMF(HaarLow())
}

// DB2Low returns the 4-tap Daubechies scaling filter.
func DB2Low() []float64 {
	s3 := math.Sqrt(3)
	d := 4 * math.Sqrt2
	return []float64{(1 + s3) / d, (3 + s3) / d, (3 - s3) / d, (1 - s3) / d}
}

// DB2High returns the 4-tap Daubechies wavelet filter.
func DB2High() []float64 {
	return QMF(DB2Low())
}

// DB4Low returns the 8-tap Daubechies scaling filter.
func DB4Low() []float64 {
	return []float64{
		0.2303778133088964,
		0.7148465705529154,
		0.6308807679298587,
		-0.0279837694168599,
		-0.1870348117190931,
		0.0308413818355607,
		0.0328830116668852,
		-0.0105974017850690,
	}
}

// DB4High returns the 8-tap Daubechies wavelet filter.
func DB4High() []float64 {
	return QMF(DB4Low())
}

// QMF returns the quadrature mirror g[k] = (-1)^k h[L-1-k] of a scaling filter.
func QMF(h []float64) []float64 {
	g := make([]float64, len(h))
	for k := range g {
		v := h[len(h)-1-k]
		if k%2 == 1 {
			v = -v
		}
		g[k] = v
	}
	return g
}
