package engine

import "github.com/tphakala/go-dwt/internal/scratch"

// scalarTier is the scalar-optimized tier: interior outputs index the
// signal directly through an unrolled dot product, boundary outputs wrap.
type scalarTier struct{}

func (scalarTier) Kind() StrategyKind { return ScalarOptimized }

// dotUnrolled is a 4-way unrolled dot product of equal-length slices.
func dotUnrolled(a, b []float64) float64 {
	b = b[:len(a)]
	var s0, s1, s2, s3 float64
	i := 0
	for ; i+unrollFactor <= len(a); i += unrollFactor {
		s0 += a[i] * b[i]
		s1 += a[i+1] * b[i+1]
		s2 += a[i+2] * b[i+2]
		s3 += a[i+3] * b[i+3]
	}
	for ; i < len(a); i++ {
		s0 += a[i] * b[i]
	}
	return (s0 + s1) + (s2 + s3)
}

func (scalarTier) downsample(dst, signal, filter []float64, periodic bool) {
	if downsampleSpecialized(dst, signal, filter, periodic) {
		return
	}
	l := len(filter)
	interior := interiorOutputs(len(signal), l, len(dst))
	for i := range interior {
		dst[i] = dotUnrolled(filter, signal[2*i:2*i+l])
	}
	downsampleBoundary(dst, signal, filter, interior, periodic)
}

func (t scalarTier) DownsamplePeriodic(_ scratch.Allocator, dst, signal, filter []float64) {
	t.downsample(dst, signal, filter, true)
}

func (t scalarTier) DownsampleZero(_ scratch.Allocator, dst, signal, filter []float64) {
	t.downsample(dst, signal, filter, false)
}

// upsample evaluates the polyphase form of the adjoint:
//
//	out[2m]   = Σ_p f[2p]   · c[(m-p) mod N]
//	out[2m+1] = Σ_p f[2p+1] · c[(m-p) mod N]
//
// Outputs with m ≥ P-1 never wrap and index the coefficients directly.
func (scalarTier) upsample(dst, coeffs, filter []float64, periodic bool) {
	n := len(coeffs)
	l := len(filter)
	phases := (l + 1) / 2
	head := min(phases-1, n)

	for m := range head {
		var even, odd float64
		for p := range phases {
			i := m - p
			if i < 0 {
				if !periodic {
					break
				}
				i %= n
				if i < 0 {
					i += n
				}
			}
			c := coeffs[i]
			even += filter[2*p] * c
			if 2*p+1 < l {
				odd += filter[2*p+1] * c
			}
		}
		dst[2*m] = even
		dst[2*m+1] = odd
	}

	for m := head; m < n; m++ {
		var even, odd float64
		for p := range phases {
			c := coeffs[m-p]
			even += filter[2*p] * c
			if 2*p+1 < l {
				odd += filter[2*p+1] * c
			}
		}
		dst[2*m] = even
		dst[2*m+1] = odd
	}
}

func (t scalarTier) UpsamplePeriodic(_ scratch.Allocator, dst, coeffs, filter []float64) {
	t.upsample(dst, coeffs, filter, true)
}

func (t scalarTier) UpsampleZero(_ scratch.Allocator, dst, coeffs, filter []float64) {
	t.upsample(dst, coeffs, filter, false)
}

func (scalarTier) CircularMODWT(_ scratch.Allocator, dst, signal, filter []float64, shift int) {
	n := len(signal)
	span := (len(filter) - 1) * shift
	start := min(span, n)

	modwtRange(dst, signal, filter, shift, 0, start)

	for t := start; t < n; t++ {
		var sum float64
		idx := t
		for _, c := range filter {
			sum += c * signal[idx]
			idx -= shift
		}
		dst[t] = sum
	}
}

// CombinedPeriodic fuses both analysis bands for 2-tap filters.
func (t scalarTier) CombinedPeriodic(a scratch.Allocator, approx, detail, signal, low, high []float64) {
	if len(low) == 2 && len(high) == 2 {
		combinedHaarPeriodic(approx, detail, signal, low, high)
		return
	}
	t.DownsamplePeriodic(a, approx, signal, low)
	t.DownsamplePeriodic(a, detail, signal, high)
}
