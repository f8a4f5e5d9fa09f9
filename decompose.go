package dwt

import (
	"fmt"

	"github.com/tphakala/go-dwt/internal/engine"
)

// Decomposition holds the bands of a multi-level analysis. Approx[j] and
// Detail[j] belong to level j+1. Levels the signal was too short for are
// nil; Plan records how many were requested and how many ran.
type Decomposition = engine.Decomposition

// Decompose runs up to levels periodic analysis steps, feeding each
// level's approximation into the next. It stops once a level's input is
// shorter than twice the filter length; the missing levels are left nil
// rather than reported as an error.
func (k *Kernels) Decompose(signal, low, high []float64, levels int) (*Decomposition, error) {
	return k.dispatcher.Decompose(k.pool, signal, low, high, levels)
}

// Reconstruct inverts a Decomposition produced with the orthogonal
// analysis pair whose synthesis filters are low and high. Only completed
// levels are used. The result has the length of the level-1 input and is
// exact when every completed level had an even input length. Analysis drops
// the trailing sample of an odd-length level, so it comes back as zero.
func (k *Kernels) Reconstruct(dec *Decomposition, low, high []float64) ([]float64, error) {
	if dec == nil || dec.Plan == nil {
		return nil, fmt.Errorf("%w: decomposition", ErrNullArgument)
	}
	levels := dec.Plan.Levels()
	if len(levels) == 0 {
		return []float64{}, nil
	}

	approx := dec.Approx[len(levels)-1]
	for j := len(levels) - 1; j >= 0; j-- {
		out := make([]float64, max(levels[j].InputLength, 2*levels[j].OutputLength))
		synth := out[:2*levels[j].OutputLength]
		if err := k.InverseCombinedPeriodic(approx, dec.Detail[j], low, high, synth); err != nil {
			return nil, err
		}
		approx = out[:levels[j].InputLength]
	}
	return approx, nil
}
