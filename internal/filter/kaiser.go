// Package filter designs Kaiser-windowed smoothing kernels for the 2D
// convolution path, in one dimension and as separable 2D matrices.
package filter

import (
	"fmt"
	"math"

	"github.com/tphakala/go-dwt/internal/mathutil"
	"github.com/tphakala/go-dwt/internal/simdops"
)

const (
	minKernelTaps = 1
	maxKernelTaps = 255

	// Cutoff is in cycles per sample; 0.5 is Nyquist.
	maxCutoff = 0.5

	sincZeroThreshold = 1e-10
)

// KaiserWindow generates a Kaiser window of the given length and β.
// The window is symmetric and peaks at 1 in the centre.
func KaiserWindow(length int, beta float64) []float64 {
	if length < 1 {
		return []float64{}
	}
	window := make([]float64, length)
	if length == 1 {
		window[0] = 1
		return window
	}

	// w[n] = I₀(β·sqrt(1 - ((n-α)/α)²)) / I₀(β), α = (N-1)/2
	alpha := float64(length-1) / 2
	norm := mathutil.BesselI0(beta)
	for n := range window {
		x := (float64(n) - alpha) / alpha
		window[n] = mathutil.BesselI0(beta*math.Sqrt(max(0, 1-x*x))) / norm
	}
	return window
}

// KernelParams describes a low-pass smoothing kernel.
type KernelParams struct {
	// Taps is the kernel length per dimension. Odd lengths keep the kernel centred.
	Taps int

	// Cutoff is the normalized cutoff frequency in (0, 0.5].
	Cutoff float64

	// Attenuation is the stopband attenuation in dB that sets the window β.
	Attenuation float64
}

// Validate checks the kernel parameters.
func (p KernelParams) Validate() error {
	if p.Taps < minKernelTaps || p.Taps > maxKernelTaps {
		return fmt.Errorf("kernel taps %d outside [%d, %d]", p.Taps, minKernelTaps, maxKernelTaps)
	}
	if p.Cutoff <= 0 || p.Cutoff > maxCutoff {
		return fmt.Errorf("invalid cutoff frequency: %f (must be in (0, 0.5])", p.Cutoff)
	}
	if p.Attenuation < 0 {
		return fmt.Errorf("invalid attenuation: %f dB (must be non-negative)", p.Attenuation)
	}
	return nil
}

// SmoothingKernel designs a windowed-sinc low-pass kernel normalized to
// unit DC gain, so smoothing preserves the mean of the input.
func SmoothingKernel(p KernelParams) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	window := KaiserWindow(p.Taps, mathutil.KaiserBeta(p.Attenuation))
	kernel := make([]float64, p.Taps)
	center := float64(p.Taps-1) / 2
	for n := range kernel {
		x := float64(n) - center
		var sinc float64
		if math.Abs(x) < sincZeroThreshold {
			sinc = 2 * p.Cutoff
		} else {
			sinc = math.Sin(2*math.Pi*p.Cutoff*x) / (math.Pi * x)
		}
		kernel[n] = sinc * window[n]
	}

	ops := simdops.Float64Ops()
	if sum := ops.Sum(kernel); math.Abs(sum) > sincZeroThreshold {
		ops.Scale(kernel, kernel, 1/sum)
	}
	return kernel, nil
}
