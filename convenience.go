package dwt

import "sync"

// defaultKernels is built on first use from DefaultConfig.
var defaultKernels = sync.OnceValues(func() (*Kernels, error) {
	return New(DefaultConfig())
})

// Default returns a process-wide Kernels value built from DefaultConfig.
func Default() *Kernels {
	k, err := defaultKernels()
	if err != nil {
		// DefaultConfig always validates.
		panic(err)
	}
	return k
}

// Downsample is a convenience function for one periodic analysis
// convolution. It allocates and returns the output.
func Downsample(signal, filter []float64) ([]float64, error) {
	out := make([]float64, len(signal)/2)
	if err := Default().ConvolveAndDownsamplePeriodic(signal, filter, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Upsample is a convenience function for one periodic synthesis
// convolution. It allocates and returns the output.
func Upsample(coeffs, filter []float64) ([]float64, error) {
	out := make([]float64, 2*len(coeffs))
	if err := Default().UpsampleAndConvolvePeriodic(coeffs, filter, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Forward is a convenience function for one periodic analysis step.
// It returns the approximation and detail bands.
func Forward(signal, low, high []float64) (approx, detail []float64, err error) {
	n := len(signal) / 2
	approx = make([]float64, n)
	detail = make([]float64, n)
	if err := Default().CombinedTransformPeriodic(signal, low, high, approx, detail); err != nil {
		return nil, nil, err
	}
	return approx, detail, nil
}

// Inverse is a convenience function for one periodic synthesis step.
// It returns up(approx, low) + up(detail, high).
func Inverse(approx, detail, low, high []float64) ([]float64, error) {
	out := make([]float64, 2*len(approx))
	if err := Default().InverseCombinedPeriodic(approx, detail, low, high, out); err != nil {
		return nil, err
	}
	return out, nil
}
