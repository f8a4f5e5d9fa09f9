//go:build !amd64 && !arm64

package engine

func detectSIMD() (level SIMDLevel, width int, gather, platform bool) {
	return SIMDNone, lanesScalar, false, false
}
