// Package dwt provides the convolution kernels at the heart of a discrete
// wavelet transform, in pure Go.
//
// Every kernel has one mathematical definition and several execution
// tiers. A strategy selector picks the tier from the problem size and what
// the CPU supports; all tiers agree with the scalar reference within 1e-9.
//
// # Features
//
//   - Convolve-and-downsample and upsample-and-convolve with periodic or
//     zero-padding boundaries
//   - Fused analysis (approximation plus detail) and synthesis steps
//   - MODWT circular convolution at any level, with an FFT path for long
//     dilated filters
//   - Vector tiers via github.com/tphakala/simd, a gather/scatter tier and
//     a cache-blocked executor for very long signals
//   - Multi-level decomposition that stops cleanly when the signal gets
//     too short for the filter
//   - Bounded scratch pool with explicit arenas and scopes for batch work
//   - Tiled 2D convolution over gonum matrices
//
// # Quick Start
//
// For one analysis step with the process-wide default kernels:
//
//	approx, detail, err := dwt.Forward(signal, low, high)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For repeated work, build a Kernels value and reuse output buffers:
//
//	k, err := dwt.New(dwt.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	approx := make([]float64, len(signal)/2)
//	if err := k.ConvolveAndDownsamplePeriodic(signal, low, approx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Batches and Scratch Memory
//
// Batch calls come in two forms. The manual form borrows scratch through a
// caller-owned [Arena], which the caller cleans up:
//
//	arena := dwt.NewArena(k.Pool())
//	defer arena.Cleanup()
//	err := k.BatchDownsamplePeriodic(arena, signals, low, outs)
//
// The Auto form opens and closes a [Scope] internally. With
// Config.EnableParallel it spreads the batch over worker goroutines, each
// with its own scope.
//
// # Errors
//
// Arguments are validated before any work starts. Errors wrap
// [ErrNullArgument], [ErrLengthMismatch], [ErrIndexOutOfBounds],
// [ErrTooLarge] or [ErrInvalidArgument]; use errors.Is to branch on them.
// Strategy selection never fails.
package dwt
