package engine

import (
	"fmt"
	"math/bits"

	"github.com/tphakala/go-dwt/internal/pipeline"
	"github.com/tphakala/go-dwt/internal/scratch"
)

// Dispatcher validates kernel arguments, selects a tier and runs it.
// A Dispatcher is immutable after construction and safe for concurrent use
// as long as each goroutine passes its own allocator or a shared Pool.
type Dispatcher struct {
	caps     Capabilities
	override *StrategyKind
	tiers    [numStrategyKinds]Tier
}

// NewDispatcher creates a dispatcher. A non-nil override pins every call to
// one tier, which conformance tests use to compare tiers.
func NewDispatcher(caps Capabilities, override *StrategyKind) (*Dispatcher, error) {
	if err := caps.Blocks.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if override != nil && (*override < 0 || *override >= numStrategyKinds) {
		return nil, fmt.Errorf("%w: unknown strategy %s", ErrInvalidArgument, *override)
	}
	d := &Dispatcher{caps: caps, tiers: newTiers(caps)}
	if override != nil {
		kind := *override
		d.override = &kind
	}
	return d, nil
}

// Capabilities returns the capabilities the dispatcher was built with.
func (d *Dispatcher) Capabilities() Capabilities {
	return d.caps
}

// Select returns the strategy for a problem size.
func (d *Dispatcher) Select(signalLen, filterLen int) Strategy {
	return SelectStrategy(d.caps, signalLen, filterLen, d.override)
}

// allocator substitutes the default pool for a nil allocator.
func allocator(a scratch.Allocator) scratch.Allocator {
	if a == nil {
		return scratch.Default
	}
	return a
}

func (d *Dispatcher) tier(signalLen, filterLen int) Tier {
	return d.tiers[d.Select(signalLen, filterLen).Kind]
}

// DownsamplePeriodic computes a periodic stride-2 convolution into out.
func (d *Dispatcher) DownsamplePeriodic(a scratch.Allocator, signal, filter, out []float64) error {
	if err := ValidateDownsample(signal, filter, out); err != nil {
		return err
	}
	if len(out) == 0 {
		return nil
	}
	d.tier(len(signal), len(filter)).DownsamplePeriodic(allocator(a), out, signal, filter)
	return nil
}

// DownsampleZero computes a zero-padded stride-2 convolution into out.
func (d *Dispatcher) DownsampleZero(a scratch.Allocator, signal, filter, out []float64) error {
	if err := ValidateDownsample(signal, filter, out); err != nil {
		return err
	}
	if len(out) == 0 {
		return nil
	}
	d.tier(len(signal), len(filter)).DownsampleZero(allocator(a), out, signal, filter)
	return nil
}

// UpsamplePeriodic upsamples coeffs by 2 and convolves periodically.
func (d *Dispatcher) UpsamplePeriodic(a scratch.Allocator, coeffs, filter, out []float64) error {
	if err := ValidateUpsample(coeffs, filter, out); err != nil {
		return err
	}
	if len(out) == 0 {
		return nil
	}
	d.tier(len(out), len(filter)).UpsamplePeriodic(allocator(a), out, coeffs, filter)
	return nil
}

// UpsampleZero upsamples coeffs by 2 and convolves with zero padding.
func (d *Dispatcher) UpsampleZero(a scratch.Allocator, coeffs, filter, out []float64) error {
	if err := ValidateUpsample(coeffs, filter, out); err != nil {
		return err
	}
	if len(out) == 0 {
		return nil
	}
	d.tier(len(out), len(filter)).UpsampleZero(allocator(a), out, coeffs, filter)
	return nil
}

// CombinedPeriodic computes the approximation and detail bands of one
// analysis step.
func (d *Dispatcher) CombinedPeriodic(a scratch.Allocator, signal, low, high, approx, detail []float64) error {
	if err := ValidateCombined(signal, low, high, approx, detail); err != nil {
		return err
	}
	if len(approx) == 0 {
		return nil
	}
	d.combinedPeriodic(allocator(a), signal, low, high, approx, detail)
	return nil
}

func (d *Dispatcher) combinedPeriodic(a scratch.Allocator, signal, low, high, approx, detail []float64) {
	t := d.tier(len(signal), len(low))
	if c, ok := t.(combiner); ok {
		c.CombinedPeriodic(a, approx, detail, signal, low, high)
		return
	}
	t.DownsamplePeriodic(a, approx, signal, low)
	t.DownsamplePeriodic(a, detail, signal, high)
}

// CombinedZero is CombinedPeriodic with zero padding.
func (d *Dispatcher) CombinedZero(a scratch.Allocator, signal, low, high, approx, detail []float64) error {
	if err := ValidateCombined(signal, low, high, approx, detail); err != nil {
		return err
	}
	if len(approx) == 0 {
		return nil
	}
	a = allocator(a)
	t := d.tier(len(signal), len(low))
	t.DownsampleZero(a, approx, signal, low)
	t.DownsampleZero(a, detail, signal, high)
	return nil
}

// InverseCombinedPeriodic reconstructs out = up(approx, low) + up(detail, high).
func (d *Dispatcher) InverseCombinedPeriodic(a scratch.Allocator, approx, detail, low, high, out []float64) error {
	if err := ValidateInverseCombined(approx, detail, low, high, out); err != nil {
		return err
	}
	if len(out) == 0 {
		return nil
	}
	a = allocator(a)
	t := d.tier(len(out), len(low))
	t.UpsamplePeriodic(a, out, approx, low)

	band := a.Borrow(len(out))
	defer a.Release(band)
	t.UpsamplePeriodic(a, band, detail, high)
	for i, v := range band {
		out[i] += v
	}
	return nil
}

// CircularMODWT computes a MODWT circular convolution at the given level.
// Long filters on long signals take the FFT path unless an override pins a tier.
func (d *Dispatcher) CircularMODWT(a scratch.Allocator, signal, filter, out []float64, level int) error {
	shift, err := ValidateMODWT(signal, filter, out, level)
	if err != nil {
		return err
	}
	n := len(signal)
	if n == 0 {
		return nil
	}
	if d.override == nil && useFFTForMODWT(n, len(filter)) {
		NewCircularConvolver(n, filter, shift).Convolve(out, signal)
		return nil
	}
	d.tier(n, len(filter)).CircularMODWT(allocator(a), out, signal, filter, shift)
	return nil
}

// Decomposition holds the bands of a multi-level analysis. Approx[j] and
// Detail[j] are the outputs of level j+1; levels the signal was too short
// for are nil.
type Decomposition struct {
	Approx [][]float64
	Detail [][]float64
	Plan   *pipeline.Plan
}

// Levels returns the number of levels that produced output.
func (dec *Decomposition) Levels() int {
	return dec.Plan.Completed()
}

// Decompose runs up to levels periodic analysis steps, feeding each level's
// approximation into the next. Levels whose input is shorter than twice the
// filter length are skipped and left nil. A level count that no signal of
// this length could ever reach fails with ErrTooLarge.
func (d *Dispatcher) Decompose(a scratch.Allocator, signal, low, high []float64, levels int) (*Decomposition, error) {
	if signal == nil {
		return nil, nullArg("signal")
	}
	if err := checkFilter("low-pass filter", low); err != nil {
		return nil, err
	}
	if err := checkFilter("high-pass filter", high); err != nil {
		return nil, err
	}
	if len(low) != len(high) {
		return nil, lengthMismatch("high-pass filter", len(high), len(low))
	}
	if limit := maxDecomposeLevels(len(signal)); levels > limit {
		return nil, fmt.Errorf("%w: %d levels requested, a %d-sample signal allows at most %d",
			ErrTooLarge, levels, len(signal), limit)
	}
	plan, err := pipeline.BuildPlan(len(signal), len(low), levels, d.caps.Blocks)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	dec := &Decomposition{
		Approx: make([][]float64, levels),
		Detail: make([][]float64, levels),
		Plan:   plan,
	}
	a = allocator(a)
	current := signal
	for i, lvl := range plan.Levels() {
		approx := make([]float64, lvl.OutputLength)
		detail := make([]float64, lvl.OutputLength)
		d.combinedPeriodic(a, current, low, high, approx, detail)
		dec.Approx[i] = approx
		dec.Detail[i] = detail
		current = approx
	}
	return dec, nil
}

// maxDecomposeLevels bounds the level count for an n-sample signal. Each
// level halves its input, so no level past the bit length of n can run.
func maxDecomposeLevels(n int) int {
	return bits.Len(uint(n)) + 1
}
