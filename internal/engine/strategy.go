package engine

import "fmt"

// StrategyKind names an execution tier.
type StrategyKind int

const (
	// ScalarFallback is the literal reference kernel.
	ScalarFallback StrategyKind = iota

	// ScalarOptimized splits interior from boundary outputs and unrolls the inner loop.
	ScalarOptimized

	// VectorGeneric uses portable SIMD dot products over a boundary-extended signal.
	VectorGeneric

	// VectorPlatform uses polyphase valid convolutions tuned for narrow 128-bit lanes.
	VectorPlatform

	// VectorGatherScatter uses lane-blocked gathers with stride and mask compression.
	VectorGatherScatter

	// CacheBlocked tiles very large signals to stay resident in cache.
	CacheBlocked

	numStrategyKinds
)

// String returns the strategy name.
func (k StrategyKind) String() string {
	switch k {
	case ScalarFallback:
		return "scalar-fallback"
	case ScalarOptimized:
		return "scalar-optimized"
	case VectorGeneric:
		return "vector-generic"
	case VectorPlatform:
		return "vector-platform"
	case VectorGatherScatter:
		return "vector-gather-scatter"
	case CacheBlocked:
		return "cache-blocked"
	default:
		return fmt.Sprintf("StrategyKind(%d)", int(k))
	}
}

// StrategyKinds lists every kind in priority-neutral order.
func StrategyKinds() []StrategyKind {
	kinds := make([]StrategyKind, numStrategyKinds)
	for i := range kinds {
		kinds[i] = StrategyKind(i)
	}
	return kinds
}

// Strategy is the outcome of strategy selection.
type Strategy struct {
	Kind StrategyKind

	// Rationale explains the choice for diagnostics.
	Rationale string

	// SpecializedFilter is set when the filter length has an unrolled kernel.
	SpecializedFilter bool
}

// String formats the strategy for logs and tables.
func (s Strategy) String() string {
	if s.SpecializedFilter {
		return fmt.Sprintf("%s (specialized): %s", s.Kind, s.Rationale)
	}
	return fmt.Sprintf("%s: %s", s.Kind, s.Rationale)
}

// isSpecializedLength reports whether an unrolled kernel exists for filterLen.
func isSpecializedLength(filterLen int) bool {
	switch filterLen {
	case 1, 2, 4, 8:
		return true
	default:
		return false
	}
}

// SelectStrategy picks an execution tier. It is pure: the same inputs
// always produce the same strategy, and it never fails.
// A non-nil override wins unconditionally.
func SelectStrategy(caps Capabilities, signalLen, filterLen int, override *StrategyKind) Strategy {
	if override != nil {
		return Strategy{
			Kind:              *override,
			Rationale:         "forced by override",
			SpecializedFilter: isSpecializedLength(filterLen),
		}
	}

	specialized := isSpecializedLength(filterLen)

	if !caps.IsBeneficial(signalLen) {
		if filterLen > signalLen || filterLen > maxUnrolledFilter {
			return Strategy{
				Kind:      ScalarFallback,
				Rationale: fmt.Sprintf("signal %d below vector threshold %d, irregular filter of %d taps", signalLen, caps.BeneficialThreshold, filterLen),
			}
		}
		return Strategy{
			Kind:              ScalarOptimized,
			Rationale:         fmt.Sprintf("signal %d below vector threshold %d", signalLen, caps.BeneficialThreshold),
			SpecializedFilter: specialized,
		}
	}

	if caps.CacheBlockThreshold > 0 && signalLen >= caps.CacheBlockThreshold {
		return Strategy{
			Kind:              CacheBlocked,
			Rationale:         fmt.Sprintf("signal %d at or above cache block threshold %d", signalLen, caps.CacheBlockThreshold),
			SpecializedFilter: specialized,
		}
	}

	hint := ""
	if specialized {
		hint = fmt.Sprintf(", %d-tap filter has an unrolled kernel", filterLen)
	}

	switch {
	case caps.PlatformVector:
		return Strategy{
			Kind:              VectorPlatform,
			Rationale:         fmt.Sprintf("%s vectors, %d lanes%s", caps.SIMDLevel, caps.VectorWidth, hint),
			SpecializedFilter: specialized,
		}
	case caps.GatherScatter:
		return Strategy{
			Kind:              VectorGatherScatter,
			Rationale:         fmt.Sprintf("hardware gather enabled%s", hint),
			SpecializedFilter: specialized,
		}
	case caps.VectorWidth >= lanes128:
		return Strategy{
			Kind:              VectorGeneric,
			Rationale:         fmt.Sprintf("portable %d-lane vectors%s", caps.VectorWidth, hint),
			SpecializedFilter: specialized,
		}
	}

	return Strategy{
		Kind:              ScalarOptimized,
		Rationale:         "no vector tier available",
		SpecializedFilter: specialized,
	}
}
