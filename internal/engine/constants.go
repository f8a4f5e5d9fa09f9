package engine

// Strategy thresholds.
const (
	// Vector tiers pay off once the signal spans this many vectors.
	beneficialVectorMultiple = 4

	// Signals at least this long go through the cache-blocked executor.
	DefaultCacheBlockThreshold = 32768

	// Filters longer than this are not worth unrolling; with short signals
	// they fall back to the reference kernel.
	maxUnrolledFilter = 64
)

// Lane widths for float64 vectors.
const (
	lanesScalar = 1
	lanes128    = 2 // SSE2, NEON, SVE minimum
	lanes256    = 4 // AVX2
	lanes512    = 8 // AVX-512

	float64Bytes = 8

	// Gather kernels run at least this many lanes even on narrow hardware.
	minGatherLanes = 4

	// Strides above this use the scalar gather path.
	maxHardwareGatherStride = 8
)

// MODWT limits.
const (
	// Level j uses shift 2^(j-1); shifts must stay within int32.
	maxShiftBits = 30

	// 2^(-j/2) underflows float64 well before this level.
	maxScaleLevel = 1023
)

// FFT path for MODWT. Direct cost is O(N·L) regardless of dilation, so only
// the tap count and signal length decide.
const (
	minTapsForFFT   = 64
	minSignalForFFT = 1024
)

// Unroll factor for the scalar-optimized inner loops.
const unrollFactor = 4
