package dwt

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-dwt/internal/testutil"
)

func makeBatch(count, n int) (signals, outs [][]float64) {
	signals = make([][]float64, count)
	outs = make([][]float64, count)
	for i := range signals {
		signals[i] = testutil.RandomSignal(n+i*2, uint64(i+1))
		outs[i] = make([]float64, len(signals[i])/2)
	}
	return signals, outs
}

func expectedDownsample(t *testing.T, signals [][]float64, filter []float64) [][]float64 {
	t.Helper()
	fallback := ScalarFallback
	ref, err := New(&Config{Override: &fallback})
	require.NoError(t, err)

	want := make([][]float64, len(signals))
	for i, s := range signals {
		want[i] = make([]float64, len(s)/2)
		require.NoError(t, ref.ConvolveAndDownsamplePeriodic(s, filter, want[i]))
	}
	return want
}

// =============================================================================
// Manual arena
// =============================================================================

func TestBatchDownsamplePeriodic_ManualArena(t *testing.T) {
	k := newTestKernels(t, nil)
	filter := testutil.DB4Low()
	signals, outs := makeBatch(6, 300)
	want := expectedDownsample(t, signals, filter)

	arena := NewArena(k.Pool())
	require.NoError(t, k.BatchDownsamplePeriodic(arena, signals, filter, outs))
	for i := range outs {
		testutil.AssertSlicesClose(t, want[i], outs[i], testutil.TierTolerance, fmt.Sprintf("signal %d", i))
	}

	arena.Cleanup()
	stats := arena.Stats()
	assert.Zero(t, stats.ActiveCount)
	assert.True(t, stats.CleanupPerformed)
}

func TestBatchDownsamplePeriodic_NilArena(t *testing.T) {
	k := newTestKernels(t, nil)
	signals, outs := makeBatch(2, 16)
	err := k.BatchDownsamplePeriodic(nil, signals, testutil.HaarLow(), outs)
	assert.ErrorIs(t, err, ErrNullArgument)
}

func TestBatch_ValidatesBeforeWork(t *testing.T) {
	k := newTestKernels(t, nil)
	signals, outs := makeBatch(3, 32)
	for _, out := range outs {
		for i := range out {
			out[i] = math.NaN()
		}
	}
	outs[2] = outs[2][:1]

	err := k.BatchDownsamplePeriodicAuto(signals, testutil.HaarLow(), outs)
	require.ErrorIs(t, err, ErrLengthMismatch)
	assert.Contains(t, err.Error(), "signal 2")
	assert.True(t, math.IsNaN(outs[0][0]), "no signal may be processed after a validation failure")

	err = k.BatchDownsamplePeriodicAuto(signals, testutil.HaarLow(), outs[:2])
	assert.ErrorIs(t, err, ErrLengthMismatch)

	err = k.BatchDownsamplePeriodicAuto(nil, testutil.HaarLow(), outs)
	assert.ErrorIs(t, err, ErrNullArgument)

	signals[1] = nil
	err = k.BatchDownsamplePeriodicAuto(signals, testutil.HaarLow(), outs)
	assert.ErrorIs(t, err, ErrNullArgument)
}

// =============================================================================
// Auto and parallel
// =============================================================================

func TestBatchDownsamplePeriodicAuto(t *testing.T) {
	filter := testutil.DB4Low()
	for _, parallel := range []bool{false, true} {
		t.Run(fmt.Sprintf("parallel=%t", parallel), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.EnableParallel = parallel
			cfg.MaxWorkers = 3
			k, err := New(cfg)
			require.NoError(t, err)

			signals, outs := makeBatch(10, 200)
			want := expectedDownsample(t, signals, filter)
			require.NoError(t, k.BatchDownsamplePeriodicAuto(signals, filter, outs))
			for i := range outs {
				testutil.AssertSlicesClose(t, want[i], outs[i], testutil.TierTolerance)
			}
			assert.Zero(t, k.Manager().OpenScopes())
		})
	}
}

func TestBatchDownsamplePeriodicParallel_Cancelled(t *testing.T) {
	k := newTestKernels(t, nil)
	signals, outs := makeBatch(4, 64)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := k.BatchDownsamplePeriodicParallel(ctx, signals, testutil.HaarLow(), outs)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, k.Manager().OpenScopes())
}

func TestBatchDownsamplePeriodicParallel_Empty(t *testing.T) {
	k := newTestKernels(t, nil)
	require.NoError(t, k.BatchDownsamplePeriodicParallel(context.Background(), [][]float64{}, testutil.HaarLow(), [][]float64{}))
}

func TestBatchCombinedPeriodic(t *testing.T) {
	k := newTestKernels(t, nil)
	low, high := testutil.DB4Low(), testutil.DB4High()
	signals, approxs := makeBatch(5, 128)
	_, details := makeBatch(5, 128)

	arena := NewArena(k.Pool())
	defer arena.Cleanup()
	require.NoError(t, k.BatchCombinedPeriodic(arena, signals, low, high, approxs, details))

	for i, s := range signals {
		a, d := make([]float64, len(approxs[i])), make([]float64, len(details[i]))
		require.NoError(t, k.CombinedTransformPeriodic(s, low, high, a, d))
		testutil.AssertSlicesClose(t, a, approxs[i], testutil.TierTolerance)
		testutil.AssertSlicesClose(t, d, details[i], testutil.TierTolerance)
	}

	_, autoA := makeBatch(5, 128)
	_, autoD := makeBatch(5, 128)
	require.NoError(t, k.BatchCombinedPeriodicAuto(signals, low, high, autoA, autoD))
	assert.Equal(t, approxs, autoA)
	assert.Equal(t, details, autoD)

	_, parA := makeBatch(5, 128)
	_, parD := makeBatch(5, 128)
	require.NoError(t, k.BatchCombinedPeriodicParallel(context.Background(), signals, low, high, parA, parD))
	assert.Equal(t, approxs, parA)
	assert.Equal(t, details, parD)

	err := k.BatchCombinedPeriodicAuto(signals, low, testutil.HaarHigh(), autoA, autoD)
	assert.ErrorIs(t, err, ErrLengthMismatch)
	err = k.BatchCombinedPeriodic(arena, signals, low, high, nil, autoD)
	assert.ErrorIs(t, err, ErrNullArgument)
}

// =============================================================================
// Lifecycle
// =============================================================================

func TestLifecycle_ConcurrentScopes(t *testing.T) {
	k := newTestKernels(t, nil)
	filter := testutil.DB4Low()
	const goroutines = 8
	const iterations = 25

	var wg sync.WaitGroup
	errs := make(chan error, goroutines)
	for g := range goroutines {
		wg.Go(func() {
			signals, outs := makeBatch(3, 100+g*10)
			for range iterations {
				stats, err := k.Manager().WithScope(func(a *Arena) error {
					return k.BatchDownsamplePeriodic(a, signals, filter, outs)
				})
				if err != nil {
					errs <- err
					return
				}
				if stats.ActiveCount != 0 || !stats.CleanupPerformed {
					errs <- fmt.Errorf("scope left %d arrays active", stats.ActiveCount)
					return
				}
			}
		})
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Zero(t, k.Manager().OpenScopes())
}

func TestLifecycle_ScopeClosesOnPanic(t *testing.T) {
	k := newTestKernels(t, nil)
	assert.Panics(t, func() {
		_, _ = k.Manager().WithScope(func(a *Arena) error {
			a.Alloc(64)
			panic("boom")
		})
	})
	assert.Zero(t, k.Manager().OpenScopes())
}
