package engine

import "github.com/tphakala/go-dwt/internal/scratch"

// Tier is one execution strategy for the convolution kernels. Tiers assume
// validated arguments: non-empty filter, non-empty input and an output of
// the documented length. Scratch comes from the supplied allocator.
type Tier interface {
	Kind() StrategyKind

	// DownsamplePeriodic: dst[i] = Σ_k f[k]·s[(2i+k) mod N].
	DownsamplePeriodic(a scratch.Allocator, dst, signal, filter []float64)

	// DownsampleZero: as DownsamplePeriodic with zeros outside [0, N).
	DownsampleZero(a scratch.Allocator, dst, signal, filter []float64)

	// UpsamplePeriodic: dst[(2i+k) mod 2N] += c[i]·f[k], dst cleared first.
	UpsamplePeriodic(a scratch.Allocator, dst, coeffs, filter []float64)

	// UpsampleZero: as UpsamplePeriodic, dropping contributions past 2N.
	UpsampleZero(a scratch.Allocator, dst, coeffs, filter []float64)

	// CircularMODWT: dst[t] = Σ_k f[k]·s[(t - k·shift) mod N].
	CircularMODWT(a scratch.Allocator, dst, signal, filter []float64, shift int)
}

// combiner is implemented by tiers with a fused two-band analysis step.
type combiner interface {
	CombinedPeriodic(a scratch.Allocator, approx, detail, signal, low, high []float64)
}

// newTiers builds one instance of every tier for the given capabilities.
func newTiers(caps Capabilities) [numStrategyKinds]Tier {
	return [numStrategyKinds]Tier{
		ScalarFallback:      referenceTier{},
		ScalarOptimized:     scalarTier{},
		VectorGeneric:       newGenericTier(),
		VectorPlatform:      newPlatformTier(caps.VectorWidth),
		VectorGatherScatter: newGatherTier(caps.GatherLanes()),
		CacheBlocked:        newBlockedTier(caps.Blocks),
	}
}
