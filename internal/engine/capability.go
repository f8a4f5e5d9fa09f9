package engine

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/tphakala/go-dwt/internal/pipeline"
	"github.com/tphakala/simd/cpu"
)

// NoSIMDEnv forces scalar capabilities when set to any non-empty value.
const NoSIMDEnv = "DWT_NOSIMD"

// CacheBlocks holds per-cache-level tile sizes in float64 elements.
type CacheBlocks = pipeline.CacheBlocks

// SIMDLevel identifies the widest vector extension detected.
type SIMDLevel int

const (
	SIMDNone SIMDLevel = iota
	SIMDSSE2
	SIMDAVX2
	SIMDAVX512
	SIMDNEON
	SIMDSVE
)

// String returns the extension name.
func (l SIMDLevel) String() string {
	switch l {
	case SIMDNone:
		return "scalar"
	case SIMDSSE2:
		return "sse2"
	case SIMDAVX2:
		return "avx2"
	case SIMDAVX512:
		return "avx512"
	case SIMDNEON:
		return "neon"
	case SIMDSVE:
		return "sve"
	default:
		return fmt.Sprintf("SIMDLevel(%d)", int(l))
	}
}

// Capabilities describes what the executing machine can do. Values are
// immutable once built and safe to share.
type Capabilities struct {
	Platform     string // runtime.GOARCH
	SIMDLevel    SIMDLevel
	VectorWidth  int // float64 lanes per vector
	ElementWidth int // bytes per element

	// BeneficialThreshold is the signal length where vector tiers start to pay.
	BeneficialThreshold int

	// CacheBlockThreshold routes longer signals to the blocked executor.
	// Zero disables cache blocking.
	CacheBlockThreshold int

	// HardwareGather reports native gather instructions.
	HardwareGather bool

	// PlatformVector enables the narrow-lane platform tier.
	PlatformVector bool

	// GatherScatter enables the gather/scatter tier.
	GatherScatter bool

	Blocks CacheBlocks

	// SIMDInfo is the SIMD library's own description of the CPU.
	SIMDInfo string
}

var (
	detectOnce sync.Once
	detected   Capabilities
)

// DetectCapabilities inspects the CPU once per process and returns the result.
// Setting DWT_NOSIMD yields scalar capabilities.
func DetectCapabilities() Capabilities {
	detectOnce.Do(func() {
		if os.Getenv(NoSIMDEnv) != "" {
			detected = ScalarCapabilities()
			return
		}
		level, width, gather, platform := detectSIMD()
		detected = newCapabilities(level, width)
		detected.HardwareGather = gather
		detected.PlatformVector = platform
	})
	return detected
}

// ScalarCapabilities describes a machine without usable vector units.
func ScalarCapabilities() Capabilities {
	return newCapabilities(SIMDNone, lanesScalar)
}

func newCapabilities(level SIMDLevel, width int) Capabilities {
	return Capabilities{
		Platform:            runtime.GOARCH,
		SIMDLevel:           level,
		VectorWidth:         width,
		ElementWidth:        float64Bytes,
		BeneficialThreshold: width * beneficialVectorMultiple,
		CacheBlockThreshold: DefaultCacheBlockThreshold,
		Blocks:              pipeline.DefaultCacheBlocks(),
		SIMDInfo:            cpu.Info(),
	}
}

// IsBeneficial reports whether a signal of n samples should use a vector tier.
func (c Capabilities) IsBeneficial(n int) bool {
	return n >= c.BeneficialThreshold
}

// EstimatedSpeedup is a rough model of vector speedup over scalar code for
// a signal of the given size. It approaches VectorWidth as boundary costs
// amortize and never drops below 1.
func (c Capabilities) EstimatedSpeedup(size int) float64 {
	if c.VectorWidth <= lanesScalar || !c.IsBeneficial(size) {
		return 1
	}
	s := float64(c.VectorWidth) * float64(size) / float64(size+c.BeneficialThreshold)
	return max(s, 1)
}

// GatherLanes returns the lane count used by the gather/scatter tier.
func (c Capabilities) GatherLanes() int {
	return max(c.VectorWidth, minGatherLanes)
}

// String summarizes the capabilities on one line.
func (c Capabilities) String() string {
	return fmt.Sprintf("%s %s (%d x %d-byte lanes), vector threshold %d, cache-block threshold %d",
		c.Platform, c.SIMDLevel, c.VectorWidth, c.ElementWidth, c.BeneficialThreshold, c.CacheBlockThreshold)
}
