package engine

import "github.com/tphakala/go-dwt/internal/scratch"

// GatherStrided returns count elements of signal starting at offset and
// spaced stride apart. Reads past the end of signal yield zero.
// Strides above 8 take the scalar path; results are identical either way.
func GatherStrided(signal []float64, offset, stride, count int) []float64 {
	if count <= 0 {
		return []float64{}
	}
	dst := make([]float64, count)
	gatherStridedInto(dst, signal, offset, stride)
	return dst
}

func gatherStridedInto(dst, signal []float64, offset, stride int) {
	n := len(signal)
	last := offset + stride*(len(dst)-1)
	if stride > maxHardwareGatherStride || offset < 0 || last >= n {
		for l := range dst {
			idx := offset + l*stride
			if idx >= 0 && idx < n {
				dst[l] = signal[idx]
			} else {
				dst[l] = 0
			}
		}
		return
	}
	// In-bounds, short stride: index vector walk with no per-lane checks.
	src := signal[offset : last+1]
	for l := range dst {
		dst[l] = src[l*stride]
	}
}

// GatherCompressed returns the elements of signal whose mask entry is set,
// in their original order. An all-false mask yields an empty slice and an
// all-true mask a copy of signal.
func GatherCompressed(signal []float64, mask []bool) []float64 {
	count := 0
	for i := range min(len(signal), len(mask)) {
		if mask[i] {
			count++
		}
	}
	dst := make([]float64, 0, count)
	for i := range min(len(signal), len(mask)) {
		if mask[i] {
			dst = append(dst, signal[i])
		}
	}
	return dst
}

// gatherTier blocks outputs into lanes and fills each lane vector with a
// strided gather. The upsample path compresses away zero coefficients
// before scattering, which pays off on sparse detail bands.
type gatherTier struct {
	lanes int
}

func newGatherTier(lanes int) *gatherTier {
	return &gatherTier{lanes: max(lanes, minGatherLanes)}
}

func (*gatherTier) Kind() StrategyKind { return VectorGatherScatter }

func (t *gatherTier) downsample(a scratch.Allocator, dst, signal, filter []float64, periodic bool) {
	n := len(signal)
	w := t.lanes
	lane := a.Borrow(w)
	defer a.Release(lane)
	acc := a.Borrow(w)
	defer a.Release(acc)

	block := 0
	for ; block+w <= len(dst); block += w {
		clear(acc)
		for k, c := range filter {
			offset := 2*block + k
			if offset+2*(w-1) < n || !periodic {
				gatherStridedInto(lane, signal, offset, 2)
			} else {
				for l := range lane {
					lane[l] = signal[(offset+2*l)%n]
				}
			}
			for l := range acc {
				acc[l] += c * lane[l]
			}
		}
		copy(dst[block:], acc)
	}
	downsampleBoundary(dst, signal, filter, block, periodic)
}

func (t *gatherTier) DownsamplePeriodic(a scratch.Allocator, dst, signal, filter []float64) {
	t.downsample(a, dst, signal, filter, true)
}

func (t *gatherTier) DownsampleZero(a scratch.Allocator, dst, signal, filter []float64) {
	t.downsample(a, dst, signal, filter, false)
}

// upsample scatters only the nonzero coefficients.
func (t *gatherTier) upsample(dst, coeffs, filter []float64, periodic bool) {
	m := len(dst)
	mask := make([]bool, len(coeffs))
	for i, c := range coeffs {
		mask[i] = c != 0
	}
	values := GatherCompressed(coeffs, mask)

	clear(dst)
	v := 0
	for i, keep := range mask {
		if !keep {
			continue
		}
		c := values[v]
		v++
		base := 2 * i
		for k, f := range filter {
			idx := base + k
			if idx >= m {
				if !periodic {
					break
				}
				idx %= m
			}
			dst[idx] += c * f
		}
	}
}

func (t *gatherTier) UpsamplePeriodic(_ scratch.Allocator, dst, coeffs, filter []float64) {
	t.upsample(dst, coeffs, filter, true)
}

func (t *gatherTier) UpsampleZero(_ scratch.Allocator, dst, coeffs, filter []float64) {
	t.upsample(dst, coeffs, filter, false)
}

func (t *gatherTier) CircularMODWT(a scratch.Allocator, dst, signal, filter []float64, shift int) {
	n := len(signal)
	w := t.lanes
	lane := a.Borrow(w)
	defer a.Release(lane)

	clear(dst)
	block := 0
	for ; block+w <= n; block += w {
		out := dst[block : block+w]
		for k, c := range filter {
			src := block - (k*shift)%n
			if src < 0 {
				src += n
			}
			if src+w <= n {
				gatherStridedInto(lane, signal, src, 1)
			} else {
				for l := range lane {
					lane[l] = signal[(src+l)%n]
				}
			}
			for l := range out {
				out[l] += c * lane[l]
			}
		}
	}
	modwtRange(dst, signal, filter, shift, block, n)
}
