package dwt

import (
	"fmt"

	"github.com/tphakala/go-dwt/internal/engine"
	"github.com/tphakala/go-dwt/internal/scratch"
)

// Kernels runs wavelet convolution kernels on the fastest tier the machine
// and problem size allow. A Kernels value is safe for concurrent use; its
// scratch pool is the only shared mutable state.
type Kernels struct {
	config     Config
	dispatcher *engine.Dispatcher
	pool       *scratch.Pool
	manager    *scratch.Manager
}

// New creates a Kernels value. A nil config uses DefaultConfig.
func New(config *Config) (*Kernels, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	caps := config.capabilities(engine.DetectCapabilities())
	dispatcher, err := engine.NewDispatcher(caps, config.Override)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	pool := scratch.NewPool(config.MaxArraysPerSize)
	k := &Kernels{
		config:     *config,
		dispatcher: dispatcher,
		pool:       pool,
		manager:    scratch.NewManager(pool),
	}
	if config.Override != nil {
		kind := *config.Override
		k.config.Override = &kind
	}
	return k, nil
}

// Capabilities returns the capabilities the kernels dispatch on.
func (k *Kernels) Capabilities() Capabilities {
	return k.dispatcher.Capabilities()
}

// SelectStrategy returns the tier used for a problem size. It never fails.
func (k *Kernels) SelectStrategy(signalLen, filterLen int) Strategy {
	return k.dispatcher.Select(signalLen, filterLen)
}

// Pool returns the scratch pool backing the kernels.
func (k *Kernels) Pool() *ArrayPool {
	return k.pool
}

// Manager returns the scope manager bound to the kernels' pool.
func (k *Kernels) Manager() *Manager {
	return k.manager
}

// ConvolveAndDownsamplePeriodic computes
// out[i] = sum_k filter[k] * signal[(2i+k) mod N] for i < N/2.
func (k *Kernels) ConvolveAndDownsamplePeriodic(signal, filter, out []float64) error {
	return k.dispatcher.DownsamplePeriodic(k.pool, signal, filter, out)
}

// ConvolveAndDownsampleZeroPadding is ConvolveAndDownsamplePeriodic with
// samples outside the signal read as zero.
func (k *Kernels) ConvolveAndDownsampleZeroPadding(signal, filter, out []float64) error {
	return k.dispatcher.DownsampleZero(k.pool, signal, filter, out)
}

// ConvolveAndDownsamplePeriodicSlice runs ConvolveAndDownsamplePeriodic on
// signal[offset:offset+length]. The window wraps onto itself, not onto the
// rest of signal.
func (k *Kernels) ConvolveAndDownsamplePeriodicSlice(signal []float64, offset, length int, filter, out []float64) error {
	window, err := sliceWindow(signal, offset, length)
	if err != nil {
		return err
	}
	return k.ConvolveAndDownsamplePeriodic(window, filter, out)
}

// ConvolveAndDownsampleZeroPaddingSlice runs ConvolveAndDownsampleZeroPadding
// on signal[offset:offset+length].
func (k *Kernels) ConvolveAndDownsampleZeroPaddingSlice(signal []float64, offset, length int, filter, out []float64) error {
	window, err := sliceWindow(signal, offset, length)
	if err != nil {
		return err
	}
	return k.ConvolveAndDownsampleZeroPadding(window, filter, out)
}

func sliceWindow(signal []float64, offset, length int) ([]float64, error) {
	if err := engine.ValidateSlice(signal, offset, length); err != nil {
		return nil, err
	}
	return signal[offset : offset+length : offset+length], nil
}

// UpsampleAndConvolvePeriodic inserts a zero after every coefficient and
// convolves with filter, wrapping modulo 2*len(coeffs). It is the adjoint
// of ConvolveAndDownsamplePeriodic for even-length signals.
func (k *Kernels) UpsampleAndConvolvePeriodic(coeffs, filter, out []float64) error {
	return k.dispatcher.UpsamplePeriodic(k.pool, coeffs, filter, out)
}

// UpsampleAndConvolveZeroPadding is UpsampleAndConvolvePeriodic with
// contributions past the end of out dropped.
func (k *Kernels) UpsampleAndConvolveZeroPadding(coeffs, filter, out []float64) error {
	return k.dispatcher.UpsampleZero(k.pool, coeffs, filter, out)
}

// CombinedTransformPeriodic computes one analysis step: approx from the
// low-pass filter and detail from the high-pass filter, both periodic.
func (k *Kernels) CombinedTransformPeriodic(signal, low, high, approx, detail []float64) error {
	return k.dispatcher.CombinedPeriodic(k.pool, signal, low, high, approx, detail)
}

// CombinedTransformZeroPadding is CombinedTransformPeriodic with zero padding.
func (k *Kernels) CombinedTransformZeroPadding(signal, low, high, approx, detail []float64) error {
	return k.dispatcher.CombinedZero(k.pool, signal, low, high, approx, detail)
}

// InverseCombinedPeriodic computes one synthesis step,
// out = up(approx, low) + up(detail, high), with periodic wrapping.
// For an orthogonal filter pair it undoes CombinedTransformPeriodic.
func (k *Kernels) InverseCombinedPeriodic(approx, detail, low, high, out []float64) error {
	return k.dispatcher.InverseCombinedPeriodic(k.pool, approx, detail, low, high, out)
}

// CircularConvolveMODWT computes out[t] = sum_k filter[k] * signal[(t-k) mod N].
func (k *Kernels) CircularConvolveMODWT(signal, filter, out []float64) error {
	return k.dispatcher.CircularMODWT(k.pool, signal, filter, out, 1)
}

// CircularConvolveMODWTLevel is CircularConvolveMODWT with the filter
// dilated by 2^(level-1), as used by level j of a MODWT.
func (k *Kernels) CircularConvolveMODWTLevel(signal, filter, out []float64, level int) error {
	return k.dispatcher.CircularMODWT(k.pool, signal, filter, out, level)
}

// ScaleFilterForMODWT returns a copy of filter scaled by 2^(-level/2).
func (k *Kernels) ScaleFilterForMODWT(filter []float64, level int) ([]float64, error) {
	return engine.ScaleFilterForMODWT(filter, level)
}

// GatherStrided returns count samples of signal starting at offset and
// stepping by stride. Positions outside signal read as zero.
func GatherStrided(signal []float64, offset, stride, count int) []float64 {
	return engine.GatherStrided(signal, offset, stride, count)
}

// GatherCompressed returns the samples of signal whose mask entry is true,
// in order.
func GatherCompressed(signal []float64, mask []bool) []float64 {
	return engine.GatherCompressed(signal, mask)
}
