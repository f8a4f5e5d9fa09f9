// Package testutil provides reusable test helpers for the wavelet kernels:
// testify-based assertions, deterministic signal generators and a few
// orthogonal wavelet filter pairs.
package testutil

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	// TierTolerance bounds disagreement between execution tiers.
	TierTolerance = 1e-9

	// RoundTripTolerance bounds analysis-synthesis reconstruction error
	// for orthogonal filters.
	RoundTripTolerance = 1e-8

	// EnergyTolerance is the relative error allowed by Parseval checks.
	EnergyTolerance = 1e-3
)

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}

// AssertSlicesClose verifies element-wise agreement. Each pair must match
// within tolerance either absolutely or relative to the larger magnitude.
// Only the first mismatch is reported.
func AssertSlicesClose(t *testing.T, expected, actual []float64, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected), msgAndArgs...) {
		return false
	}
	for i := range expected {
		diff := math.Abs(expected[i] - actual[i])
		scale := max(math.Abs(expected[i]), math.Abs(actual[i]))
		if diff <= tolerance || diff <= tolerance*scale {
			continue
		}
		return assert.Fail(t, "slices differ",
			"index %d: expected %.15g, actual %.15g (diff %e) %v", i, expected[i], actual[i], diff, msgAndArgs)
	}
	return true
}

// AssertAllZero verifies every element is exactly zero.
func AssertAllZero(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v != 0 {
			return assert.Fail(t, "non-zero element", "s[%d]=%g %v", i, v, msgAndArgs)
		}
	}
	return true
}

// MaxAbsDiff returns the largest element-wise absolute difference.
func MaxAbsDiff(a, b []float64) float64 {
	var m float64
	for i := range min(len(a), len(b)) {
		m = max(m, math.Abs(a[i]-b[i]))
	}
	return m
}

// Energy returns Σ s[i]².
func Energy(s []float64) float64 {
	var e float64
	for _, v := range s {
		e += v * v
	}
	return e
}

// RandomSignal returns n deterministic pseudo-random samples in [-1, 1).
func RandomSignal(n int, seed uint64) []float64 {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	s := make([]float64, n)
	for i := range s {
		s[i] = 2*r.Float64() - 1
	}
	return s
}

// Ramp returns 1, 2, ..., n.
func Ramp(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = float64(i + 1)
	}
	return s
}

// SineWave returns n samples of a unit sine with the given cycles per sample.
func SineWave(n int, freq float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.Sin(2 * math.Pi * freq * float64(i))
	}
	return s
}

// Sparse returns n samples where only every step-th sample is non-zero.
func Sparse(n, step int, seed uint64) []float64 {
	s := RandomSignal(n, seed)
	for i := range s {
		if i%step != 0 {
			s[i] = 0
		}
	}
	return s
}
