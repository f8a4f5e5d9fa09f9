package dwt

import (
	"fmt"

	"github.com/tphakala/go-dwt/internal/engine"
	"github.com/tphakala/go-dwt/internal/scratch"
)

// StrategyKind names an execution tier.
type StrategyKind = engine.StrategyKind

// Execution tiers, in the order StrategyKinds reports them.
const (
	ScalarFallback      = engine.ScalarFallback
	ScalarOptimized     = engine.ScalarOptimized
	VectorGeneric       = engine.VectorGeneric
	VectorPlatform      = engine.VectorPlatform
	VectorGatherScatter = engine.VectorGatherScatter
	CacheBlocked        = engine.CacheBlocked
)

// Strategy is the outcome of strategy selection.
type Strategy = engine.Strategy

// Capabilities describes the hardware the kernels run on.
type Capabilities = engine.Capabilities

// CacheBlocks holds per-cache-level tile sizes in float64 elements.
type CacheBlocks = engine.CacheBlocks

// StrategyKinds lists every execution tier.
func StrategyKinds() []StrategyKind {
	return engine.StrategyKinds()
}

// Config holds kernel configuration.
type Config struct {
	// EnableSIMD allows the vector tiers when the CPU supports them.
	// Set to false to force the scalar tiers.
	EnableSIMD bool

	// EnablePlatform turns on the narrow-lane platform tier on CPUs where
	// it is not the default. arm64 always has it.
	EnablePlatform bool

	// EnableGatherScatter turns on the gather/scatter tier. It only takes
	// effect when the CPU has hardware gather (AVX2, AVX-512, SVE).
	EnableGatherScatter bool

	// ForceGatherScatter turns on the gather/scatter tier regardless of
	// hardware gather. Intended for tests.
	ForceGatherScatter bool

	// CacheBlockThreshold is the signal length at which the cache-blocked
	// executor takes over. Set to 0 to use the detected default.
	CacheBlockThreshold int

	// Blocks overrides the cache tile sizes. The zero value keeps the defaults.
	Blocks CacheBlocks

	// MaxArraysPerSize bounds each pool bucket.
	// Set to 0 to use the default of 16.
	MaxArraysPerSize int

	// EnableParallel fans batch calls out across goroutines.
	// Has no effect on batches of one signal.
	EnableParallel bool

	// MaxWorkers bounds the goroutines of a parallel batch.
	// Set to 0 to use GOMAXPROCS.
	MaxWorkers int

	// Override pins every call to one tier. Production code leaves it nil;
	// tests use it to compare tiers against each other.
	Override *StrategyKind
}

// DefaultConfig returns the recommended configuration: SIMD on, with the
// optional tiers and parallel batches off.
func DefaultConfig() *Config {
	return &Config{
		EnableSIMD:       true,
		MaxArraysPerSize: scratch.DefaultMaxPerSize,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.CacheBlockThreshold < 0 {
		return fmt.Errorf("%w: cache block threshold must be non-negative, got %d", ErrInvalidConfig, c.CacheBlockThreshold)
	}
	if c.Blocks != (CacheBlocks{}) {
		if err := c.Blocks.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if c.MaxArraysPerSize < 0 {
		return fmt.Errorf("%w: max arrays per size must be non-negative, got %d", ErrInvalidConfig, c.MaxArraysPerSize)
	}
	if c.MaxWorkers < 0 {
		return fmt.Errorf("%w: max workers must be non-negative, got %d", ErrInvalidConfig, c.MaxWorkers)
	}
	if c.Override != nil {
		if k := *c.Override; k < ScalarFallback || k > CacheBlocked {
			return fmt.Errorf("%w: unknown strategy %s", ErrInvalidConfig, k)
		}
	}
	return nil
}

// capabilities derives the dispatcher capabilities from the detected CPU features.
func (c *Config) capabilities(detected Capabilities) Capabilities {
	caps := detected
	if !c.EnableSIMD {
		caps = engine.ScalarCapabilities()
	}
	caps.PlatformVector = caps.PlatformVector || (c.EnablePlatform && caps.VectorWidth >= 2)
	caps.GatherScatter = c.ForceGatherScatter || (c.EnableGatherScatter && caps.HardwareGather)
	if c.CacheBlockThreshold > 0 {
		caps.CacheBlockThreshold = c.CacheBlockThreshold
	}
	if c.Blocks != (CacheBlocks{}) {
		caps.Blocks = c.Blocks
	}
	return caps
}
