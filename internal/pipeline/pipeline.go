// Package pipeline plans multi-level wavelet decompositions: how many levels
// a signal can sustain, the length of every intermediate band and which
// cache level each level's working set lands in.
package pipeline

import "fmt"

// CacheBlocks holds tile sizes, in float64 elements, for each cache level.
type CacheBlocks struct {
	L1 int
	L2 int
	L3 int
}

// DefaultCacheBlocks returns block sizes for a typical desktop cache hierarchy.
func DefaultCacheBlocks() CacheBlocks {
	return CacheBlocks{
		L1: defaultL1Elements,
		L2: defaultL2Elements,
		L3: defaultL3Elements,
	}
}

// Validate checks 0 < L1 <= L2 <= L3.
func (b CacheBlocks) Validate() error {
	if b.L1 <= 0 {
		return fmt.Errorf("L1 block must be positive, got %d", b.L1)
	}
	if b.L2 < b.L1 {
		return fmt.Errorf("L2 block %d smaller than L1 block %d", b.L2, b.L1)
	}
	if b.L3 < b.L2 {
		return fmt.Errorf("L3 block %d smaller than L2 block %d", b.L3, b.L2)
	}
	return nil
}

// MemoryTier identifies the smallest cache level a working set fits in.
type MemoryTier int

const (
	// TierL1 fits the L1 block.
	TierL1 MemoryTier = iota

	// TierL2 fits the L2 block.
	TierL2

	// TierL3 fits the L3 block.
	TierL3

	// TierMemory spills to main memory.
	TierMemory
)

// String returns the tier name.
func (t MemoryTier) String() string {
	switch t {
	case TierL1:
		return "L1"
	case TierL2:
		return "L2"
	case TierL3:
		return "L3"
	case TierMemory:
		return "memory"
	default:
		return fmt.Sprintf("MemoryTier(%d)", int(t))
	}
}

// TierFor classifies a working set of n elements.
func (b CacheBlocks) TierFor(n int) MemoryTier {
	switch {
	case n <= b.L1:
		return TierL1
	case n <= b.L2:
		return TierL2
	case n <= b.L3:
		return TierL3
	default:
		return TierMemory
	}
}

// LevelSpec describes one decomposition level.
type LevelSpec struct {
	Level        int        // 1-based
	InputLength  int        // samples entering the level
	OutputLength int        // samples in each of the approximation and detail bands
	Tier         MemoryTier // cache level holding input plus both outputs
}

// Plan is the level schedule for one decomposition.
type Plan struct {
	levels       []LevelSpec
	requested    int
	filterLength int
}

// BuildPlan schedules up to levels decomposition levels for a signal of
// signalLen samples and a filter of filterLen taps. Scheduling stops at the
// first level whose input is shorter than twice the filter length; deeper
// levels are reported as truncated rather than as an error.
func BuildPlan(signalLen, filterLen, levels int, blocks CacheBlocks) (*Plan, error) {
	if signalLen < 0 {
		return nil, fmt.Errorf("invalid signal length: %d", signalLen)
	}
	if filterLen < 1 {
		return nil, fmt.Errorf("invalid filter length: %d", filterLen)
	}
	if levels < 1 {
		return nil, fmt.Errorf("invalid level count: %d", levels)
	}
	if err := blocks.Validate(); err != nil {
		return nil, err
	}

	p := &Plan{
		levels:       make([]LevelSpec, 0, min(levels, defaultLevelCapacity)),
		requested:    levels,
		filterLength: filterLen,
	}

	length := signalLen
	for level := 1; level <= levels; level++ {
		if length < minFilterLengthsPerLevel*filterLen {
			break
		}
		out := length / 2
		p.levels = append(p.levels, LevelSpec{
			Level:        level,
			InputLength:  length,
			OutputLength: out,
			Tier:         blocks.TierFor(length + bandsPerLevel*out),
		})
		length = out
	}
	return p, nil
}

// Levels returns the scheduled levels, shallowest first.
func (p *Plan) Levels() []LevelSpec {
	return p.levels
}

// Requested returns the number of levels asked for.
func (p *Plan) Requested() int {
	return p.requested
}

// Completed returns the number of levels that will run.
func (p *Plan) Completed() int {
	return len(p.levels)
}

// Truncated reports whether fewer levels run than were requested.
func (p *Plan) Truncated() bool {
	return len(p.levels) < p.requested
}

// FilterLength returns the filter length the plan was built for.
func (p *Plan) FilterLength() int {
	return p.filterLength
}

// String summarizes the plan.
func (p *Plan) String() string {
	s := fmt.Sprintf("%d/%d levels (filter %d taps)", len(p.levels), p.requested, p.filterLength)
	for _, l := range p.levels {
		s += fmt.Sprintf("\n  level %d: %d -> 2x%d [%s]", l.Level, l.InputLength, l.OutputLength, l.Tier)
	}
	return s
}
