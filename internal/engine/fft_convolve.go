package engine

import (
	"github.com/tphakala/simd/c128"
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
)

// CircularConvolver computes dilated circular convolutions of length-N
// signals in the frequency domain. This is O(N log N) against O(N·L) for
// the direct kernels and wins for long filters on long signals.
//
// The dilated filter is folded onto the circle before transforming:
// tap k lands at bin (k·shift) mod N, so arbitrarily large dilations cost
// nothing extra.
type CircularConvolver struct {
	fft *fourier.FFT
	n   int

	// Precomputed filter spectrum
	filterFFT []complex128
	scale     float64 // 1/N; gonum's inverse transform is unnormalized

	// Working buffers, reused across calls
	signalFFT  []complex128
	productFFT []complex128
}

// NewCircularConvolver prepares a convolver for signals of length n.
// It returns nil when n or the filter is empty.
func NewCircularConvolver(n int, filter []float64, shift int) *CircularConvolver {
	if n <= 0 || len(filter) == 0 {
		return nil
	}

	fft := fourier.NewFFT(n)
	folded := make([]float64, n)
	for k, c := range filter {
		folded[(k*shift)%n] += c
	}

	bins := n/2 + 1
	return &CircularConvolver{
		fft:        fft,
		n:          n,
		filterFFT:  fft.Coefficients(nil, folded),
		scale:      1.0 / float64(n),
		signalFFT:  make([]complex128, bins),
		productFFT: make([]complex128, bins),
	}
}

// Len returns the signal length the convolver was built for.
func (c *CircularConvolver) Len() int {
	return c.n
}

// Convolve writes the circular convolution of signal with the filter to dst.
// Both must have length Len().
func (c *CircularConvolver) Convolve(dst, signal []float64) {
	c.signalFFT = c.fft.Coefficients(c.signalFFT, signal)
	c128.Mul(c.productFFT, c.signalFFT, c.filterFFT)
	c.fft.Sequence(dst, c.productFFT)
	f64.Scale(dst, dst, c.scale)
}

// useFFTForMODWT reports whether the frequency-domain path beats the
// direct kernels for this problem size.
func useFFTForMODWT(signalLen, filterLen int) bool {
	return filterLen >= minTapsForFFT && signalLen >= minSignalForFFT
}
