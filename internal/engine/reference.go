package engine

import "github.com/tphakala/go-dwt/internal/scratch"

// referenceTier evaluates every formula literally with modular indexing.
// It is the ground truth the other tiers are tested against.
type referenceTier struct{}

func (referenceTier) Kind() StrategyKind { return ScalarFallback }

func (referenceTier) DownsamplePeriodic(_ scratch.Allocator, dst, signal, filter []float64) {
	n := len(signal)
	for i := range dst {
		base := 2 * i
		var sum float64
		for k, c := range filter {
			sum += c * signal[(base+k)%n]
		}
		dst[i] = sum
	}
}

func (referenceTier) DownsampleZero(_ scratch.Allocator, dst, signal, filter []float64) {
	n := len(signal)
	for i := range dst {
		base := 2 * i
		var sum float64
		for k, c := range filter {
			if idx := base + k; idx < n {
				sum += c * signal[idx]
			}
		}
		dst[i] = sum
	}
}

func (referenceTier) UpsamplePeriodic(_ scratch.Allocator, dst, coeffs, filter []float64) {
	clear(dst)
	m := len(dst)
	for i, c := range coeffs {
		if c == 0 {
			continue
		}
		base := 2 * i
		for k, f := range filter {
			dst[(base+k)%m] += c * f
		}
	}
}

func (referenceTier) UpsampleZero(_ scratch.Allocator, dst, coeffs, filter []float64) {
	clear(dst)
	m := len(dst)
	for i, c := range coeffs {
		if c == 0 {
			continue
		}
		base := 2 * i
		for k, f := range filter {
			if idx := base + k; idx < m {
				dst[idx] += c * f
			}
		}
	}
}

func (referenceTier) CircularMODWT(_ scratch.Allocator, dst, signal, filter []float64, shift int) {
	modwtRange(dst, signal, filter, shift, 0, len(dst))
}

// modwtRange computes outputs [from, to) of a dilated circular convolution
// with modular indexing.
func modwtRange(dst, signal, filter []float64, shift, from, to int) {
	n := len(signal)
	for t := from; t < to; t++ {
		var sum float64
		for k, c := range filter {
			idx := t - (k*shift)%n
			if idx < 0 {
				idx += n
			}
			sum += c * signal[idx]
		}
		dst[t] = sum
	}
}
