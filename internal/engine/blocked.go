package engine

import (
	"github.com/tphakala/go-dwt/internal/scratch"
	"github.com/tphakala/go-dwt/internal/simdops"
	"gonum.org/v1/gonum/floats"
)

// blockedTier tiles very large signals so each tile's input and output stay
// cache resident. Output tiles of Blocks.L1 elements nest inside tiles of
// Blocks.L2, which nest inside tiles of Blocks.L3. Interior tiles read the caller's signal in place; only the few
// outputs whose window crosses the end of the signal go through a small
// scratch overlap buffer.
type blockedTier struct {
	blocks CacheBlocks
	ops    *simdops.Ops
}

func newBlockedTier(blocks CacheBlocks) *blockedTier {
	return &blockedTier{blocks: blocks, ops: simdops.Float64Ops()}
}

func (*blockedTier) Kind() StrategyKind { return CacheBlocked }

// forEachTile calls fn for consecutive [start, end) ranges covering
// [0, total) in order. Ranges are at most L1 long and never cross an L2 or
// L3 boundary measured from the start of their enclosing block.
func (t *blockedTier) forEachTile(total int, fn func(start, end int)) {
	b := t.blocks
	for l3 := 0; l3 < total; l3 += b.L3 {
		l3End := min(l3+b.L3, total)
		for l2 := l3; l2 < l3End; l2 += b.L2 {
			l2End := min(l2+b.L2, l3End)
			for start := l2; start < l2End; start += b.L1 {
				fn(start, min(start+b.L1, l2End))
			}
		}
	}
}

// downsampleValid computes dst[i] = Σ_k f[k]·seg[2i+k] with no boundary handling.
func (t *blockedTier) downsampleValid(dst, seg, filter []float64) {
	l := len(filter)
	for i := range dst {
		dst[i] = t.ops.DotProductUnsafe(filter, seg[2*i:2*i+l])
	}
}

// withBoundary runs fn over the overlap buffer covering outputs [from, m).
func (t *blockedTier) withBoundary(a scratch.Allocator, signal []float64, from, m, filterLen int, periodic bool, fn func(seg []float64)) {
	rest := m - from
	if rest <= 0 {
		return
	}
	buf := a.Borrow(2*(rest-1) + filterLen)
	defer a.Release(buf)
	extendForward(buf, signal, 2*from, periodic)
	fn(buf)
}

func (t *blockedTier) downsample(a scratch.Allocator, dst, signal, filter []float64, periodic bool) {
	l := len(filter)
	m := len(dst)
	interior := interiorOutputs(len(signal), l, m)

	t.forEachTile(interior, func(start, end int) {
		t.downsampleValid(dst[start:end], signal[2*start:2*(end-1)+l], filter)
	})
	t.withBoundary(a, signal, interior, m, l, periodic, func(seg []float64) {
		t.downsampleValid(dst[interior:], seg, filter)
	})
}

func (t *blockedTier) DownsamplePeriodic(a scratch.Allocator, dst, signal, filter []float64) {
	t.downsample(a, dst, signal, filter, true)
}

func (t *blockedTier) DownsampleZero(a scratch.Allocator, dst, signal, filter []float64) {
	t.downsample(a, dst, signal, filter, false)
}

// CombinedPeriodic computes both analysis bands tile by tile, so each input
// tile is read from cache twice instead of from memory twice.
func (t *blockedTier) CombinedPeriodic(a scratch.Allocator, approx, detail, signal, low, high []float64) {
	l := len(low)
	m := len(approx)
	interior := interiorOutputs(len(signal), l, m)

	t.forEachTile(interior, func(start, end int) {
		seg := signal[2*start : 2*(end-1)+l]
		t.downsampleValid(approx[start:end], seg, low)
		t.downsampleValid(detail[start:end], seg, high)
	})
	t.withBoundary(a, signal, interior, m, l, true, func(seg []float64) {
		t.downsampleValid(approx[interior:], seg, low)
		t.downsampleValid(detail[interior:], seg, high)
	})
}

// upsampleValid computes output pairs from a window-extended coefficient run:
// dst[2m] = revEven·seg[m:m+P], dst[2m+1] = revOdd·seg[m:m+P].
func (t *blockedTier) upsampleValid(dst, seg, revEven, revOdd []float64) {
	phases := len(revEven)
	for m := range len(dst) / 2 {
		window := seg[m : m+phases]
		dst[2*m] = t.ops.DotProductUnsafe(revEven, window)
		dst[2*m+1] = t.ops.DotProductUnsafe(revOdd, window)
	}
}

func (t *blockedTier) upsample(a scratch.Allocator, dst, coeffs, filter []float64, periodic bool) {
	n := len(coeffs)
	phases := (len(filter) + 1) / 2
	lead := phases - 1
	head := min(lead, n)

	revEven := a.Borrow(phases)
	defer a.Release(revEven)
	revOdd := a.Borrow(phases)
	defer a.Release(revOdd)
	polyphaseReversed(revEven, revOdd, filter)

	if head > 0 {
		buf := a.Borrow(head + lead)
		extendBackward(buf, coeffs, lead, periodic)
		t.upsampleValid(dst[:2*head], buf, revEven, revOdd)
		a.Release(buf)
	}

	t.forEachTile(n-head, func(start, end int) {
		start += head
		end += head
		t.upsampleValid(dst[2*start:2*end], coeffs[start-lead:end], revEven, revOdd)
	})
}

func (t *blockedTier) UpsamplePeriodic(a scratch.Allocator, dst, coeffs, filter []float64) {
	t.upsample(a, dst, coeffs, filter, true)
}

func (t *blockedTier) UpsampleZero(a scratch.Allocator, dst, coeffs, filter []float64) {
	t.upsample(a, dst, coeffs, filter, false)
}

// CircularMODWT accumulates every tap into one L1 output tile before moving
// on, so the tile stays resident while the signal streams past.
func (t *blockedTier) CircularMODWT(_ scratch.Allocator, dst, signal, filter []float64, shift int) {
	n := len(signal)
	clear(dst)
	t.forEachTile(n, func(start, end int) {
		out := dst[start:end]
		for k, c := range filter {
			if c == 0 {
				continue
			}
			lag := (k * shift) % n
			switch {
			case start >= lag:
				floats.AddScaled(out, c, signal[start-lag:end-lag])
			case end <= lag:
				floats.AddScaled(out, c, signal[start-lag+n:end-lag+n])
			default:
				split := lag - start
				floats.AddScaled(out[:split], c, signal[start-lag+n:])
				floats.AddScaled(out[split:], c, signal[:end-lag])
			}
		}
	})
}
