package engine

import (
	"github.com/tphakala/go-dwt/internal/scratch"
	"github.com/tphakala/go-dwt/internal/simdops"
	"gonum.org/v1/gonum/floats"
)

// genericTier runs the SIMD dot product over a boundary-extended copy of
// the input, one output per call. It works on every architecture the SIMD
// library supports.
type genericTier struct {
	ops *simdops.Ops
}

func newGenericTier() *genericTier {
	return &genericTier{ops: simdops.Float64Ops()}
}

func (genericTier) Kind() StrategyKind { return VectorGeneric }

func (t *genericTier) downsample(a scratch.Allocator, dst, signal, filter []float64, periodic bool) {
	l := len(filter)
	ext := a.Borrow(2*(len(dst)-1) + l)
	defer a.Release(ext)
	extendForward(ext, signal, 0, periodic)

	for i := range dst {
		dst[i] = t.ops.DotProductUnsafe(filter, ext[2*i:2*i+l])
	}
}

func (t *genericTier) DownsamplePeriodic(a scratch.Allocator, dst, signal, filter []float64) {
	t.downsample(a, dst, signal, filter, true)
}

func (t *genericTier) DownsampleZero(a scratch.Allocator, dst, signal, filter []float64) {
	t.downsample(a, dst, signal, filter, false)
}

func (t *genericTier) upsample(a scratch.Allocator, dst, coeffs, filter []float64, periodic bool) {
	n := len(coeffs)
	phases := (len(filter) + 1) / 2

	revEven := a.Borrow(phases)
	defer a.Release(revEven)
	revOdd := a.Borrow(phases)
	defer a.Release(revOdd)
	polyphaseReversed(revEven, revOdd, filter)

	ext := a.Borrow(n + phases - 1)
	defer a.Release(ext)
	extendBackward(ext, coeffs, phases-1, periodic)

	for m := range n {
		window := ext[m : m+phases]
		dst[2*m] = t.ops.DotProductUnsafe(revEven, window)
		dst[2*m+1] = t.ops.DotProductUnsafe(revOdd, window)
	}
}

func (t *genericTier) UpsamplePeriodic(a scratch.Allocator, dst, coeffs, filter []float64) {
	t.upsample(a, dst, coeffs, filter, true)
}

func (t *genericTier) UpsampleZero(a scratch.Allocator, dst, coeffs, filter []float64) {
	t.upsample(a, dst, coeffs, filter, false)
}

// CircularMODWT accumulates one shifted, scaled copy of the signal per tap.
// Lags are reduced modulo N, so cost does not grow with the dilation.
func (t *genericTier) CircularMODWT(_ scratch.Allocator, dst, signal, filter []float64, shift int) {
	circularAxpy(dst, signal, filter, shift)
}

// circularAxpy computes dst[t] = Σ_k f[k]·s[(t - k·shift) mod N] as a sum of
// contiguous AddScaled calls, two per tap.
func circularAxpy(dst, signal, filter []float64, shift int) {
	n := len(signal)
	clear(dst)
	for k, c := range filter {
		if c == 0 {
			continue
		}
		lag := (k * shift) % n
		floats.AddScaled(dst[lag:], c, signal[:n-lag])
		if lag > 0 {
			floats.AddScaled(dst[:lag], c, signal[n-lag:])
		}
	}
}
