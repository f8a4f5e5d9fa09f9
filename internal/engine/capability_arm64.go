//go:build arm64

package engine

import "golang.org/x/sys/cpu"

// detectSIMD returns the vector level, float64 lane count, native gather
// support and whether the narrow-lane platform tier is native here.
// SVE vector length is implementation defined; assume the 128-bit minimum.
func detectSIMD() (level SIMDLevel, width int, gather, platform bool) {
	switch {
	case cpu.ARM64.HasSVE:
		return SIMDSVE, lanes128, true, true
	case cpu.ARM64.HasASIMD:
		return SIMDNEON, lanes128, false, true
	default:
		return SIMDNone, lanesScalar, false, false
	}
}
