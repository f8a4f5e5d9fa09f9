package dwt

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-dwt/internal/testutil"
)

const scenarioTolerance = 1e-6

// smallBlocks makes the cache-blocked tier tile even short test signals.
var smallBlocks = CacheBlocks{L1: 16, L2: 64, L3: 256}

func newTestKernels(t *testing.T, override *StrategyKind) *Kernels {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Blocks = smallBlocks
	cfg.ForceGatherScatter = true
	cfg.Override = override
	k, err := New(cfg)
	require.NoError(t, err)
	return k
}

// =============================================================================
// Concrete scenarios
// =============================================================================

func TestKernels_HaarRampPeriodic(t *testing.T) {
	k := newTestKernels(t, nil)
	out := make([]float64, 4)
	require.NoError(t, k.ConvolveAndDownsamplePeriodic(
		[]float64{1, 2, 3, 4, 5, 6, 7, 8}, []float64{0.70710678, 0.70710678}, out))
	assert.InDeltaSlice(t, []float64{2.121320, 4.949747, 7.778175, 10.606602}, out, scenarioTolerance)
}

func TestKernels_HaarRampEveryTier(t *testing.T) {
	for _, kind := range StrategyKinds() {
		t.Run(kind.String(), func(t *testing.T) {
			k := newTestKernels(t, &kind)
			out := make([]float64, 4)
			require.NoError(t, k.ConvolveAndDownsamplePeriodic(
				testutil.Ramp(8), []float64{0.70710678, 0.70710678}, out))
			assert.InDeltaSlice(t, []float64{2.121320, 4.949747, 7.778175, 10.606602}, out, scenarioTolerance)
		})
	}
}

func TestKernels_ZeroPaddingDropsWrap(t *testing.T) {
	k := newTestKernels(t, nil)
	signal := []float64{1, 2, 3, 4}
	filter := []float64{1, 1, 1}

	periodic := make([]float64, 2)
	zero := make([]float64, 2)
	require.NoError(t, k.ConvolveAndDownsamplePeriodic(signal, filter, periodic))
	require.NoError(t, k.ConvolveAndDownsampleZeroPadding(signal, filter, zero))

	assert.Equal(t, []float64{6, 8}, periodic) // 3+4+1 wraps
	assert.Equal(t, []float64{6, 7}, zero)
}

func TestKernels_OddLengthOutput(t *testing.T) {
	for _, kind := range StrategyKinds() {
		t.Run(kind.String(), func(t *testing.T) {
			k := newTestKernels(t, &kind)

			out := make([]float64, 2)
			require.NoError(t, k.ConvolveAndDownsamplePeriodic([]float64{1, 2, 3, 4, 5}, []float64{1}, out))
			assert.Equal(t, []float64{1, 3}, out)

			out = make([]float64, 3)
			require.NoError(t, k.ConvolveAndDownsamplePeriodic(testutil.Ramp(7), []float64{0.5, 0.5}, out))
			assert.InDeltaSlice(t, []float64{1.5, 3.5, 5.5}, out, scenarioTolerance)

			// Output 1 reads s[2..5]; s[5] wraps to s[0] or reads as zero.
			periodic, zero := make([]float64, 2), make([]float64, 2)
			filter := []float64{1, 1, 1, 1}
			require.NoError(t, k.ConvolveAndDownsamplePeriodic([]float64{1, 2, 3, 4, 5}, filter, periodic))
			require.NoError(t, k.ConvolveAndDownsampleZeroPadding([]float64{1, 2, 3, 4, 5}, filter, zero))
			assert.Equal(t, []float64{10, 13}, periodic)
			assert.Equal(t, []float64{10, 12}, zero)

			err := k.ConvolveAndDownsamplePeriodic(testutil.Ramp(7), []float64{0.5, 0.5}, make([]float64, 4))
			assert.ErrorIs(t, err, ErrLengthMismatch)

			require.NoError(t, k.ConvolveAndDownsamplePeriodic([]float64{1}, []float64{1, 1}, []float64{}))
		})
	}
}

// =============================================================================
// Slices
// =============================================================================

func TestKernels_SliceMatchesCopy(t *testing.T) {
	k := newTestKernels(t, nil)
	signal := testutil.RandomSignal(100, 11)
	filter := testutil.DB4Low()

	window := append([]float64(nil), signal[10:74]...)
	want := make([]float64, 32)
	require.NoError(t, k.ConvolveAndDownsamplePeriodic(window, filter, want))

	got := make([]float64, 32)
	require.NoError(t, k.ConvolveAndDownsamplePeriodicSlice(signal, 10, 64, filter, got))
	assert.Equal(t, want, got)

	require.NoError(t, k.ConvolveAndDownsampleZeroPadding(window, filter, want))
	require.NoError(t, k.ConvolveAndDownsampleZeroPaddingSlice(signal, 10, 64, filter, got))
	assert.Equal(t, want, got)
}

func TestKernels_SliceBounds(t *testing.T) {
	k := newTestKernels(t, nil)
	signal := make([]float64, 10)
	filter := testutil.HaarLow()

	tests := []struct {
		name           string
		offset, length int
		err            error
	}{
		{"negative offset", -1, 4, ErrIndexOutOfBounds},
		{"negative length", 0, -2, ErrIndexOutOfBounds},
		{"past end", 8, 4, ErrIndexOutOfBounds},
		{"offset past end", 11, 0, ErrIndexOutOfBounds},
		{"empty at end", 10, 0, nil},
		{"whole signal", 0, 10, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := make([]float64, max(tt.length, 0)/2)
			err := k.ConvolveAndDownsamplePeriodicSlice(signal, tt.offset, tt.length, filter, out)
			if tt.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}

	err := k.ConvolveAndDownsampleZeroPaddingSlice(nil, 0, 0, filter, []float64{})
	assert.ErrorIs(t, err, ErrNullArgument)
}

// =============================================================================
// Validation
// =============================================================================

func TestKernels_Validation(t *testing.T) {
	k := newTestKernels(t, nil)
	sig := make([]float64, 8)
	f := testutil.HaarLow()
	half := make([]float64, 4)
	double := make([]float64, 16)

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"downsample nil signal", func() error { return k.ConvolveAndDownsamplePeriodic(nil, f, half) }, ErrNullArgument},
		{"downsample nil filter", func() error { return k.ConvolveAndDownsamplePeriodic(sig, nil, half) }, ErrNullArgument},
		{"downsample empty filter", func() error { return k.ConvolveAndDownsampleZeroPadding(sig, []float64{}, half) }, ErrInvalidArgument},
		{"downsample nil output", func() error { return k.ConvolveAndDownsamplePeriodic(sig, f, nil) }, ErrNullArgument},
		{"upsample short output", func() error { return k.UpsampleAndConvolvePeriodic(sig, f, half) }, ErrLengthMismatch},
		{"upsample nil coeffs", func() error { return k.UpsampleAndConvolveZeroPadding(nil, f, double) }, ErrNullArgument},
		{"combined filter lengths", func() error {
			return k.CombinedTransformPeriodic(sig, f, testutil.DB4High(), half, make([]float64, 4))
		}, ErrLengthMismatch},
		{"combined nil detail", func() error { return k.CombinedTransformZeroPadding(sig, f, f, half, nil) }, ErrNullArgument},
		{"inverse mismatched bands", func() error {
			return k.InverseCombinedPeriodic(half, make([]float64, 3), f, f, sig)
		}, ErrLengthMismatch},
		{"modwt level zero", func() error { return k.CircularConvolveMODWTLevel(sig, f, make([]float64, 8), 0) }, ErrInvalidArgument},
		{"modwt shift overflow", func() error {
			return k.CircularConvolveMODWTLevel(sig, f, make([]float64, 8), 40)
		}, ErrTooLarge},
		{"modwt output length", func() error { return k.CircularConvolveMODWT(sig, f, half) }, ErrLengthMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.call(), tt.want)
		})
	}
}

func TestKernels_EmptySignal(t *testing.T) {
	k := newTestKernels(t, nil)
	assert.NoError(t, k.ConvolveAndDownsamplePeriodic([]float64{}, testutil.HaarLow(), []float64{}))
	assert.NoError(t, k.UpsampleAndConvolvePeriodic([]float64{}, testutil.HaarLow(), []float64{}))
	assert.NoError(t, k.CircularConvolveMODWT([]float64{}, testutil.HaarLow(), []float64{}))
}

// =============================================================================
// Tier agreement through the public API
// =============================================================================

func TestKernels_TiersAgree(t *testing.T) {
	fallback := ScalarFallback
	ref := newTestKernels(t, &fallback)

	for _, n := range []int{7, 64, 301, 1024} {
		signal := testutil.RandomSignal(n, uint64(n))
		filter := testutil.DB4Low()
		m := n / 2

		wantP, wantZ := make([]float64, m), make([]float64, m)
		require.NoError(t, ref.ConvolveAndDownsamplePeriodic(signal, filter, wantP))
		require.NoError(t, ref.ConvolveAndDownsampleZeroPadding(signal, filter, wantZ))

		coeffs := signal[:m]
		wantUp, wantUz := make([]float64, 2*m), make([]float64, 2*m)
		require.NoError(t, ref.UpsampleAndConvolvePeriodic(coeffs, filter, wantUp))
		require.NoError(t, ref.UpsampleAndConvolveZeroPadding(coeffs, filter, wantUz))

		for _, kind := range StrategyKinds() {
			t.Run(fmt.Sprintf("%s/n=%d", kind, n), func(t *testing.T) {
				k := newTestKernels(t, &kind)

				got := make([]float64, m)
				require.NoError(t, k.ConvolveAndDownsamplePeriodic(signal, filter, got))
				testutil.AssertSlicesClose(t, wantP, got, testutil.TierTolerance, "periodic downsample")
				require.NoError(t, k.ConvolveAndDownsampleZeroPadding(signal, filter, got))
				testutil.AssertSlicesClose(t, wantZ, got, testutil.TierTolerance, "zero downsample")

				up := make([]float64, 2*m)
				require.NoError(t, k.UpsampleAndConvolvePeriodic(coeffs, filter, up))
				testutil.AssertSlicesClose(t, wantUp, up, testutil.TierTolerance, "periodic upsample")
				require.NoError(t, k.UpsampleAndConvolveZeroPadding(coeffs, filter, up))
				testutil.AssertSlicesClose(t, wantUz, up, testutil.TierTolerance, "zero upsample")
			})
		}
	}
}

func TestKernels_UpsampleClearsOutput(t *testing.T) {
	coeffs := make([]float64, 40)
	for _, kind := range StrategyKinds() {
		t.Run(kind.String(), func(t *testing.T) {
			k := newTestKernels(t, &kind)
			out := make([]float64, 80)
			for i := range out {
				out[i] = math.NaN()
			}
			require.NoError(t, k.UpsampleAndConvolvePeriodic(coeffs, testutil.DB4Low(), out))
			testutil.AssertAllZero(t, out)

			for i := range out {
				out[i] = math.Inf(1)
			}
			require.NoError(t, k.UpsampleAndConvolveZeroPadding(coeffs, testutil.DB4Low(), out))
			testutil.AssertAllZero(t, out)
		})
	}
}

// =============================================================================
// Round trip and energy
// =============================================================================

func TestKernels_RoundTripAndEnergy(t *testing.T) {
	filters := map[string][2][]float64{
		"haar": {testutil.HaarLow(), testutil.HaarHigh()},
		"db4":  {testutil.DB4Low(), testutil.DB4High()},
	}
	k := newTestKernels(t, nil)

	for name, f := range filters {
		for _, n := range []int{16, 128, 1000, 4096} {
			t.Run(fmt.Sprintf("%s/n=%d", name, n), func(t *testing.T) {
				signal := testutil.SineWave(n, 0.013)
				for i, v := range testutil.RandomSignal(n, 5) {
					signal[i] += 0.25 * v
				}

				approx, detail := make([]float64, n/2), make([]float64, n/2)
				require.NoError(t, k.CombinedTransformPeriodic(signal, f[0], f[1], approx, detail))

				energy := testutil.Energy(approx) + testutil.Energy(detail)
				testutil.AssertRelativeError(t, testutil.Energy(signal), energy, testutil.EnergyTolerance)

				rec := make([]float64, n)
				require.NoError(t, k.InverseCombinedPeriodic(approx, detail, f[0], f[1], rec))
				testutil.AssertSlicesClose(t, signal, rec, testutil.RoundTripTolerance)
			})
		}
	}
}

// =============================================================================
// MODWT
// =============================================================================

func directMODWT(signal, filter []float64, level int) []float64 {
	n := len(signal)
	shift := 1 << (level - 1)
	out := make([]float64, n)
	for t := range n {
		var sum float64
		for k, f := range filter {
			idx := ((t-k*shift)%n + n) % n
			sum += f * signal[idx]
		}
		out[t] = sum
	}
	return out
}

func TestKernels_CircularConvolveMODWT(t *testing.T) {
	k := newTestKernels(t, nil)
	signal := testutil.RandomSignal(96, 3)
	filter := testutil.DB4Low()

	out := make([]float64, len(signal))
	require.NoError(t, k.CircularConvolveMODWT(signal, filter, out))
	testutil.AssertSlicesClose(t, directMODWT(signal, filter, 1), out, testutil.TierTolerance)

	for _, level := range []int{2, 3, 5, 8} {
		t.Run(fmt.Sprintf("level=%d", level), func(t *testing.T) {
			require.NoError(t, k.CircularConvolveMODWTLevel(signal, filter, out, level))
			testutil.AssertSlicesClose(t, directMODWT(signal, filter, level), out, testutil.TierTolerance)
		})
	}
}

func TestKernels_CircularConvolveMODWTLongFilter(t *testing.T) {
	k := newTestKernels(t, nil)
	signal := testutil.RandomSignal(2048, 17)
	filter := testutil.RandomSignal(80, 18)

	out := make([]float64, len(signal))
	require.NoError(t, k.CircularConvolveMODWTLevel(signal, filter, out, 3))
	testutil.AssertSlicesClose(t, directMODWT(signal, filter, 3), out, testutil.TierTolerance)
}

func TestKernels_ScaleFilterForMODWT(t *testing.T) {
	k := newTestKernels(t, nil)
	filter := []float64{1, -2, 4}

	scaled, err := k.ScaleFilterForMODWT(filter, 2)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, -1, 2}, scaled, 1e-15)
	assert.Equal(t, []float64{1, -2, 4}, filter, "input must not change")

	scaled, err = k.ScaleFilterForMODWT(filter, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1/math.Sqrt2, scaled[0], 1e-15)

	_, err = k.ScaleFilterForMODWT(filter, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = k.ScaleFilterForMODWT(filter, 1024)
	assert.ErrorIs(t, err, ErrTooLarge)
	_, err = k.ScaleFilterForMODWT(nil, 1)
	assert.ErrorIs(t, err, ErrNullArgument)
}

// =============================================================================
// Strategy and info
// =============================================================================

func TestKernels_SelectStrategyScalarConfig(t *testing.T) {
	k, err := New(&Config{})
	require.NoError(t, err)

	assert.Equal(t, ScalarOptimized, k.SelectStrategy(1000, 8).Kind)
	assert.Equal(t, ScalarFallback, k.SelectStrategy(3, 8).Kind)
	assert.Equal(t, k.SelectStrategy(1000, 8), k.SelectStrategy(1000, 8))
}

func TestKernels_Info(t *testing.T) {
	kind := VectorGeneric
	cfg := DefaultConfig()
	cfg.Override = &kind
	cfg.EnableParallel = true
	k, err := New(cfg)
	require.NoError(t, err)

	info := k.Info()
	assert.Equal(t, k.Capabilities().Platform, info.Platform)
	assert.Equal(t, "vector-generic", info.Override)
	assert.True(t, info.Parallel)
	assert.Contains(t, info.Tiers, ScalarFallback)
	assert.Contains(t, info.Tiers, CacheBlocked)

	s := info.String()
	assert.Contains(t, s, "pinned to vector-generic")
	assert.Contains(t, s, "blocks: L1 4096")
}

func TestGatherHelpers(t *testing.T) {
	signal := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	assert.Equal(t, []float64{1, 3, 5, 7}, GatherCompressed(signal, []bool{true, false, true, false, true, false, true, false}))
	assert.Equal(t, []float64{2, 5, 8, 0}, GatherStrided(signal, 1, 3, 4))
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkConvolveAndDownsamplePeriodic(b *testing.B) {
	k, err := New(nil)
	require.NoError(b, err)
	filter := testutil.DB4Low()

	for _, n := range []int{256, 4096, 65536} {
		signal := testutil.RandomSignal(n, 1)
		out := make([]float64, n/2)
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.SetBytes(int64(n * 8))
			for b.Loop() {
				_ = k.ConvolveAndDownsamplePeriodic(signal, filter, out)
			}
		})
	}
}
