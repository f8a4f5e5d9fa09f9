package engine

import (
	"fmt"
	"math"

	"github.com/tphakala/go-dwt/internal/simdops"
)

// ScaleFilterForMODWT returns a copy of filter scaled by 2^(-level/2), the
// per-level normalization of the maximal overlap transform.
func ScaleFilterForMODWT(filter []float64, level int) ([]float64, error) {
	if err := checkFilter("filter", filter); err != nil {
		return nil, err
	}
	if level < 1 {
		return nil, fmt.Errorf("%w: level must be at least 1, got %d", ErrInvalidArgument, level)
	}
	if level > maxScaleLevel {
		return nil, fmt.Errorf("%w: level %d scale underflows", ErrTooLarge, level)
	}
	scaled := make([]float64, len(filter))
	simdops.Float64Ops().Scale(scaled, filter, math.Pow(2, -float64(level)/2))
	return scaled, nil
}
