package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-dwt/internal/scratch"
	"github.com/tphakala/go-dwt/internal/testutil"
)

const scenarioTolerance = 1e-6

func TestReference_HaarRampScenario(t *testing.T) {
	signal := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	filter := []float64{0.70710678, 0.70710678}
	out := make([]float64, 4)

	referenceTier{}.DownsamplePeriodic(nil, out, signal, filter)

	assert.InDeltaSlice(t, []float64{2.121320, 4.949747, 7.778175, 10.606602}, out, scenarioTolerance)
}

func TestReference_OddLengthWraps(t *testing.T) {
	// Two outputs for five samples; s[4] is only reached through the window of output 1.
	signal := []float64{1, 2, 3, 4, 5}
	filter := []float64{1, 1, 1}
	periodic := make([]float64, DownsampleLength(len(signal)))
	zero := make([]float64, DownsampleLength(len(signal)))
	require.Len(t, periodic, 2)

	referenceTier{}.DownsamplePeriodic(nil, periodic, signal, filter)
	referenceTier{}.DownsampleZero(nil, zero, signal, filter)

	assert.Equal(t, []float64{6, 12}, periodic)
	assert.Equal(t, []float64{6, 12}, zero)

	// Output 1 of a 4-tap filter reads s[2..5]; s[5] wraps to s[0].
	filter = []float64{1, 1, 1, 1}
	referenceTier{}.DownsamplePeriodic(nil, periodic, signal, filter)
	referenceTier{}.DownsampleZero(nil, zero, signal, filter)
	assert.Equal(t, []float64{10, 13}, periodic)
	assert.Equal(t, []float64{10, 12}, zero)
}

func TestReference_FilterLongerThanSignal(t *testing.T) {
	signal := []float64{1, 2}
	filter := []float64{1, 1, 1, 1, 1}
	out := make([]float64, 1)

	referenceTier{}.DownsamplePeriodic(nil, out, signal, filter)
	// s[0]+s[1]+s[0]+s[1]+s[0]
	assert.Equal(t, []float64{7}, out)
}

func TestReference_UpsampleIsAdjointOfDownsample(t *testing.T) {
	// <down(x), y> == <x, up(y)> for the periodic pair.
	for _, n := range []int{4, 10, 32} {
		filter := testutil.DB2Low()
		x := testutil.RandomSignal(n, 1)
		y := testutil.RandomSignal(n/2, 2)

		down := make([]float64, n/2)
		referenceTier{}.DownsamplePeriodic(nil, down, x, filter)
		up := make([]float64, n)
		referenceTier{}.UpsamplePeriodic(nil, up, y, filter)

		var lhs, rhs float64
		for i := range down {
			lhs += down[i] * y[i]
		}
		for i := range up {
			rhs += x[i] * up[i]
		}
		assert.InDelta(t, lhs, rhs, 1e-12, "n=%d", n)
	}
}

func TestReference_UpsampleZeroDropsTail(t *testing.T) {
	coeffs := []float64{1, 2}
	filter := []float64{1, 10, 100}
	periodic := make([]float64, 4)
	zero := make([]float64, 4)

	referenceTier{}.UpsamplePeriodic(nil, periodic, coeffs, filter)
	referenceTier{}.UpsampleZero(nil, zero, coeffs, filter)

	assert.Equal(t, []float64{1, 10, 102, 20}, zero)
	assert.Equal(t, []float64{201, 10, 102, 20}, periodic)
}

func TestReference_CircularMODWTShift(t *testing.T) {
	signal := []float64{1, 2, 3, 4}
	filter := []float64{1, 1}
	out := make([]float64, 4)

	referenceTier{}.CircularMODWT(nil, out, signal, filter, 1)
	assert.Equal(t, []float64{5, 3, 5, 7}, out)

	referenceTier{}.CircularMODWT(nil, out, signal, filter, 2)
	assert.Equal(t, []float64{4, 6, 4, 6}, out)
}

// =============================================================================
// Validation
// =============================================================================

func TestValidateDownsample(t *testing.T) {
	s := make([]float64, 8)
	f := []float64{1, 1}

	require.NoError(t, ValidateDownsample(s, f, make([]float64, 4)))
	assert.ErrorIs(t, ValidateDownsample(nil, f, make([]float64, 4)), ErrNullArgument)
	assert.ErrorIs(t, ValidateDownsample(s, nil, make([]float64, 4)), ErrNullArgument)
	assert.ErrorIs(t, ValidateDownsample(s, f, nil), ErrNullArgument)
	assert.ErrorIs(t, ValidateDownsample(s, []float64{}, make([]float64, 4)), ErrInvalidArgument)
	assert.ErrorIs(t, ValidateDownsample(s, f, make([]float64, 3)), ErrLengthMismatch)
	require.NoError(t, ValidateDownsample(make([]float64, 7), f, make([]float64, 3)))
	assert.ErrorIs(t, ValidateDownsample(make([]float64, 7), f, make([]float64, 4)), ErrLengthMismatch)
	require.NoError(t, ValidateDownsample(make([]float64, 1), f, []float64{}))
}

func TestValidateSlice(t *testing.T) {
	s := make([]float64, 10)
	require.NoError(t, ValidateSlice(s, 0, 10))
	require.NoError(t, ValidateSlice(s, 10, 0))
	assert.ErrorIs(t, ValidateSlice(s, -1, 2), ErrIndexOutOfBounds)
	assert.ErrorIs(t, ValidateSlice(s, 2, -1), ErrIndexOutOfBounds)
	assert.ErrorIs(t, ValidateSlice(s, 5, 6), ErrIndexOutOfBounds)
	assert.ErrorIs(t, ValidateSlice(s, 11, 0), ErrIndexOutOfBounds)
	assert.ErrorIs(t, ValidateSlice(s, math.MaxInt, 1), ErrIndexOutOfBounds)
	assert.ErrorIs(t, ValidateSlice(nil, 0, 0), ErrNullArgument)
}

func TestValidateCombined_MismatchedFilters(t *testing.T) {
	s := make([]float64, 8)
	out := make([]float64, 4)
	err := ValidateCombined(s, testutil.HaarLow(), testutil.DB2High(), out, make([]float64, 4))
	assert.ErrorIs(t, err, ErrLengthMismatch)
	assert.ErrorIs(t, ValidateCombined(s, testutil.HaarLow(), testutil.HaarHigh(), out, nil), ErrNullArgument)
}

func TestValidateMODWT(t *testing.T) {
	s := make([]float64, 8)
	f := make([]float64, 4)

	shift, err := ValidateMODWT(s, f, make([]float64, 8), 3)
	require.NoError(t, err)
	assert.Equal(t, 4, shift)

	_, err = ValidateMODWT(s, f, make([]float64, 8), 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ValidateMODWT(s, f, make([]float64, 8), 32)
	assert.ErrorIs(t, err, ErrTooLarge)

	// Three taps at lag 2^30 exceed int32.
	_, err = ValidateMODWT(s, f, make([]float64, 8), 31)
	assert.ErrorIs(t, err, ErrTooLarge)

	// A single tap never overflows.
	_, err = ValidateMODWT(s, []float64{1}, make([]float64, 8), 31)
	assert.NoError(t, err)

	_, err = ValidateMODWT(s, f, make([]float64, 7), 1)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestScaleFilterForMODWT(t *testing.T) {
	f := testutil.HaarLow()

	scaled, err := ScaleFilterForMODWT(f, 1)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, scaled, 1e-15)
	assert.Equal(t, math.Sqrt2/2, f[0], "input must not change")

	scaled, err = ScaleFilterForMODWT(f, 4)
	require.NoError(t, err)
	assert.InDelta(t, f[0]/4, scaled[0], 1e-15)

	_, err = ScaleFilterForMODWT(f, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = ScaleFilterForMODWT(f, maxScaleLevel+1)
	assert.ErrorIs(t, err, ErrTooLarge)
	_, err = ScaleFilterForMODWT(nil, 1)
	assert.ErrorIs(t, err, ErrNullArgument)
}

func TestReference_IgnoresAllocator(t *testing.T) {
	pool := scratch.NewPool(1)
	out := make([]float64, 2)
	referenceTier{}.DownsamplePeriodic(pool, out, []float64{1, 2, 3, 4}, []float64{1})
	assert.Equal(t, []float64{1, 3}, out)
	assert.Equal(t, scratch.PoolStats{}, pool.Stats())
}
