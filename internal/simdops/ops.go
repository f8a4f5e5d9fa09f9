// Package simdops binds the float64 SIMD kernels the transform code calls.
// Tiers and filter builders hold a pointer to the shared table instead of
// importing the SIMD package directly.
package simdops

import "github.com/tphakala/simd/f64"

// Ops is a table of SIMD-accelerated float64 operations.
type Ops struct {
	// DotProductUnsafe computes the dot product without bounds checking.
	// Use only when slices are guaranteed to have equal length.
	DotProductUnsafe func(a, b []float64) float64

	// ConvolveValid computes the valid correlation
	//   dst[i] = Σ signal[i+k] * kernel[k]
	// for len(dst) = len(signal) - len(kernel) + 1.
	ConvolveValid func(dst, signal, kernel []float64)

	// ConvolveValidMulti runs ConvolveValid for several kernels over one signal.
	ConvolveValidMulti func(dsts [][]float64, signal []float64, kernels [][]float64)

	// Interleave2 writes dst[2i]=a[i], dst[2i+1]=b[i].
	Interleave2 func(dst, a, b []float64)

	// Sum returns the sum of all elements.
	Sum func(a []float64) float64

	// Scale writes dst[i] = a[i] * s. dst may alias a.
	Scale func(dst, a []float64, s float64)
}

var ops64 = Ops{
	DotProductUnsafe:   f64.DotProductUnsafe,
	ConvolveValid:      f64.ConvolveValid,
	ConvolveValidMulti: f64.ConvolveValidMulti,
	Interleave2:        f64.Interleave2,
	Sum:                f64.Sum,
	Scale:              f64.Scale,
}

// Float64Ops returns the shared float64 table.
func Float64Ops() *Ops {
	return &ops64
}
