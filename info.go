package dwt

import (
	"fmt"
	"strings"
)

// Info returns information about the kernel configuration.
type Info struct {
	// Platform is the GOARCH the kernels run on.
	Platform string

	// SIMDLevel names the vector extension in use, or "scalar".
	SIMDLevel string

	// VectorWidth is the number of float64 lanes per vector.
	VectorWidth int

	// BeneficialThreshold is the signal length where vector tiers take over.
	BeneficialThreshold int

	// CacheBlockThreshold is the signal length where the blocked executor takes over.
	CacheBlockThreshold int

	// Blocks are the cache tile sizes in elements.
	Blocks CacheBlocks

	// Tiers lists the tiers this configuration can select.
	Tiers []StrategyKind

	// Override is the pinned tier, if any.
	Override string

	// MaxArraysPerSize bounds each scratch pool bucket.
	MaxArraysPerSize int

	// Parallel reports whether batch calls fan out across goroutines.
	Parallel bool

	// SIMDInfo is the SIMD library's description of the CPU.
	SIMDInfo string
}

// Info returns information about the kernels.
func (k *Kernels) Info() Info {
	caps := k.Capabilities()
	info := Info{
		Platform:            caps.Platform,
		SIMDLevel:           caps.SIMDLevel.String(),
		VectorWidth:         caps.VectorWidth,
		BeneficialThreshold: caps.BeneficialThreshold,
		CacheBlockThreshold: caps.CacheBlockThreshold,
		Blocks:              caps.Blocks,
		Tiers:               availableTiers(caps),
		MaxArraysPerSize:    k.pool.MaxPerSize(),
		Parallel:            k.config.EnableParallel,
		SIMDInfo:            caps.SIMDInfo,
	}
	if k.config.Override != nil {
		info.Override = k.config.Override.String()
	}
	return info
}

// availableTiers lists the tiers SelectStrategy can return for caps.
func availableTiers(caps Capabilities) []StrategyKind {
	tiers := []StrategyKind{ScalarFallback, ScalarOptimized}
	if caps.VectorWidth >= 2 {
		tiers = append(tiers, VectorGeneric)
	}
	if caps.PlatformVector {
		tiers = append(tiers, VectorPlatform)
	}
	if caps.GatherScatter {
		tiers = append(tiers, VectorGatherScatter)
	}
	if caps.CacheBlockThreshold > 0 {
		tiers = append(tiers, CacheBlocked)
	}
	return tiers
}

// String formats the info for display.
func (i Info) String() string {
	names := make([]string, len(i.Tiers))
	for j, t := range i.Tiers {
		names[j] = t.String()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "platform: %s, simd: %s (%d lanes)\n", i.Platform, i.SIMDLevel, i.VectorWidth)
	fmt.Fprintf(&b, "thresholds: vector %d, cache-block %d\n", i.BeneficialThreshold, i.CacheBlockThreshold)
	fmt.Fprintf(&b, "blocks: L1 %d, L2 %d, L3 %d\n", i.Blocks.L1, i.Blocks.L2, i.Blocks.L3)
	fmt.Fprintf(&b, "tiers: %s", strings.Join(names, ", "))
	if i.Override != "" {
		fmt.Fprintf(&b, " (pinned to %s)", i.Override)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "pool: %d arrays per size, parallel batches: %t\n", i.MaxArraysPerSize, i.Parallel)
	if i.SIMDInfo != "" {
		fmt.Fprintf(&b, "cpu: %s\n", i.SIMDInfo)
	}
	return b.String()
}
