//go:build amd64

package engine

import "golang.org/x/sys/cpu"

// detectSIMD returns the vector level, float64 lane count, native gather
// support and whether the narrow-lane platform tier is native here.
func detectSIMD() (level SIMDLevel, width int, gather, platform bool) {
	switch {
	case cpu.X86.HasAVX512F:
		return SIMDAVX512, lanes512, true, false
	case cpu.X86.HasAVX2 && cpu.X86.HasFMA:
		return SIMDAVX2, lanes256, true, false
	case cpu.X86.HasSSE2:
		return SIMDSSE2, lanes128, false, false
	default:
		return SIMDNone, lanesScalar, false, false
	}
}
