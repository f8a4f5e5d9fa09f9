package engine

import (
	"github.com/tphakala/go-dwt/internal/scratch"
	"github.com/tphakala/go-dwt/internal/simdops"
	"gonum.org/v1/gonum/floats"
)

// platformTier targets narrow 128-bit lanes (NEON, SSE2). The stride-2
// convolution is rewritten as two unit-stride valid correlations over the
// even and odd phases of the signal, which map directly onto the SIMD
// library's convolution kernels.
type platformTier struct {
	ops   *simdops.Ops
	lanes int
}

func newPlatformTier(lanes int) *platformTier {
	return &platformTier{ops: simdops.Float64Ops(), lanes: max(lanes, lanes128)}
}

func (*platformTier) Kind() StrategyKind { return VectorPlatform }

func (t *platformTier) downsample(a scratch.Allocator, dst, signal, filter []float64, periodic bool) {
	m := len(dst)
	if m == 0 {
		return
	}
	l := len(filter)
	evenTaps := (l + 1) / 2
	oddTaps := l / 2

	ext := a.Borrow(2*(m-1) + l)
	defer a.Release(ext)
	extendForward(ext, signal, 0, periodic)

	fe := a.Borrow(evenTaps)
	defer a.Release(fe)
	se := a.Borrow(m + evenTaps - 1)
	defer a.Release(se)
	for p := range fe {
		fe[p] = filter[2*p]
	}
	for j := range se {
		se[j] = ext[2*j]
	}
	t.ops.ConvolveValid(dst, se, fe)

	if oddTaps == 0 {
		return
	}
	fo := a.Borrow(oddTaps)
	defer a.Release(fo)
	so := a.Borrow(m + oddTaps - 1)
	defer a.Release(so)
	for p := range fo {
		fo[p] = filter[2*p+1]
	}
	for j := range so {
		so[j] = ext[2*j+1]
	}
	odd := a.Borrow(m)
	defer a.Release(odd)
	t.ops.ConvolveValid(odd, so, fo)
	floats.Add(dst, odd)
}

func (t *platformTier) DownsamplePeriodic(a scratch.Allocator, dst, signal, filter []float64) {
	t.downsample(a, dst, signal, filter, true)
}

func (t *platformTier) DownsampleZero(a scratch.Allocator, dst, signal, filter []float64) {
	t.downsample(a, dst, signal, filter, false)
}

func (t *platformTier) upsample(a scratch.Allocator, dst, coeffs, filter []float64, periodic bool) {
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

	even := a.Borrow(n)
	defer a.Release(even)
	odd := a.Borrow(n)
	defer a.Release(odd)
	t.ops.ConvolveValidMulti([][]float64{even, odd}, ext, [][]float64{revEven, revOdd})
	t.ops.Interleave2(dst, even, odd)
}

func (t *platformTier) UpsamplePeriodic(a scratch.Allocator, dst, coeffs, filter []float64) {
	t.upsample(a, dst, coeffs, filter, true)
}

func (t *platformTier) UpsampleZero(a scratch.Allocator, dst, coeffs, filter []float64) {
	t.upsample(a, dst, coeffs, filter, false)
}

// CircularMODWT processes lanes outputs per block. Within a block each tap
// reads a contiguous run of the signal unless the run straddles the wrap
// point, in which case the lanes are indexed individually.
func (t *platformTier) CircularMODWT(_ scratch.Allocator, dst, signal, filter []float64, shift int) {
	n := len(signal)
	w := t.lanes
	clear(dst)

	block := 0
	for ; block+w <= n; block += w {
		out := dst[block : block+w : block+w]
		for k, c := range filter {
			src := block - (k*shift)%n
			if src < 0 {
				src += n
			}
			if src+w <= n {
				in := signal[src : src+w : src+w]
				for l := range out {
					out[l] += c * in[l]
				}
				continue
			}
			for l := range out {
				idx := src + l
				if idx >= n {
					idx -= n
				}
				out[l] += c * signal[idx]
			}
		}
	}

	modwtRange(dst, signal, filter, shift, block, n)
}
