package dwt

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/tphakala/go-dwt/internal/engine"
	"github.com/tphakala/go-dwt/internal/scratch"
)

// batchFunc processes signal i using scratch from a.
type batchFunc func(a *scratch.Arena, i int) error

// BatchDownsamplePeriodic runs ConvolveAndDownsamplePeriodic over every
// signal, borrowing scratch through arena. The caller owns the arena and
// must Cleanup it. All arguments are validated before any work starts.
func (k *Kernels) BatchDownsamplePeriodic(arena *Arena, signals [][]float64, filter []float64, outs [][]float64) error {
	if arena == nil {
		return fmt.Errorf("%w: arena", ErrNullArgument)
	}
	if err := validateDownsampleBatch(signals, filter, outs); err != nil {
		return err
	}
	return runSequential(arena, len(signals), k.downsampleOne(signals, filter, outs))
}

// BatchDownsamplePeriodicAuto is BatchDownsamplePeriodic with scratch
// managed internally. With Config.EnableParallel the batch is spread
// over worker goroutines.
func (k *Kernels) BatchDownsamplePeriodicAuto(signals [][]float64, filter []float64, outs [][]float64) error {
	if err := validateDownsampleBatch(signals, filter, outs); err != nil {
		return err
	}
	return k.runAuto(len(signals), k.downsampleOne(signals, filter, outs))
}

// BatchDownsamplePeriodicParallel spreads the batch over worker goroutines,
// each with its own scope. Cancelling ctx stops workers between signals.
func (k *Kernels) BatchDownsamplePeriodicParallel(ctx context.Context, signals [][]float64, filter []float64, outs [][]float64) error {
	if err := validateDownsampleBatch(signals, filter, outs); err != nil {
		return err
	}
	return k.runParallel(ctx, len(signals), k.downsampleOne(signals, filter, outs))
}

// BatchCombinedPeriodic runs CombinedTransformPeriodic over every signal,
// borrowing scratch through arena.
func (k *Kernels) BatchCombinedPeriodic(arena *Arena, signals [][]float64, low, high []float64, approxs, details [][]float64) error {
	if arena == nil {
		return fmt.Errorf("%w: arena", ErrNullArgument)
	}
	if err := validateCombinedBatch(signals, low, high, approxs, details); err != nil {
		return err
	}
	return runSequential(arena, len(signals), k.combinedOne(signals, low, high, approxs, details))
}

// BatchCombinedPeriodicAuto is BatchCombinedPeriodic with scratch managed
// internally.
func (k *Kernels) BatchCombinedPeriodicAuto(signals [][]float64, low, high []float64, approxs, details [][]float64) error {
	if err := validateCombinedBatch(signals, low, high, approxs, details); err != nil {
		return err
	}
	return k.runAuto(len(signals), k.combinedOne(signals, low, high, approxs, details))
}

// BatchCombinedPeriodicParallel is the parallel form of BatchCombinedPeriodic.
func (k *Kernels) BatchCombinedPeriodicParallel(ctx context.Context, signals [][]float64, low, high []float64, approxs, details [][]float64) error {
	if err := validateCombinedBatch(signals, low, high, approxs, details); err != nil {
		return err
	}
	return k.runParallel(ctx, len(signals), k.combinedOne(signals, low, high, approxs, details))
}

func (k *Kernels) downsampleOne(signals [][]float64, filter []float64, outs [][]float64) batchFunc {
	return func(a *scratch.Arena, i int) error {
		return k.dispatcher.DownsamplePeriodic(a, signals[i], filter, outs[i])
	}
}

func (k *Kernels) combinedOne(signals [][]float64, low, high []float64, approxs, details [][]float64) batchFunc {
	return func(a *scratch.Arena, i int) error {
		return k.dispatcher.CombinedPeriodic(a, signals[i], low, high, approxs[i], details[i])
	}
}

func validateDownsampleBatch(signals [][]float64, filter []float64, outs [][]float64) error {
	if signals == nil {
		return fmt.Errorf("%w: signals", ErrNullArgument)
	}
	if outs == nil {
		return fmt.Errorf("%w: outputs", ErrNullArgument)
	}
	if len(outs) != len(signals) {
		return fmt.Errorf("%w: %d outputs for %d signals", ErrLengthMismatch, len(outs), len(signals))
	}
	for i := range signals {
		if err := engine.ValidateDownsample(signals[i], filter, outs[i]); err != nil {
			return fmt.Errorf("signal %d: %w", i, err)
		}
	}
	return nil
}

func validateCombinedBatch(signals [][]float64, low, high []float64, approxs, details [][]float64) error {
	if signals == nil {
		return fmt.Errorf("%w: signals", ErrNullArgument)
	}
	if approxs == nil || details == nil {
		return fmt.Errorf("%w: outputs", ErrNullArgument)
	}
	if len(approxs) != len(signals) || len(details) != len(signals) {
		return fmt.Errorf("%w: %d approximation and %d detail outputs for %d signals",
			ErrLengthMismatch, len(approxs), len(details), len(signals))
	}
	for i := range signals {
		if err := engine.ValidateCombined(signals[i], low, high, approxs[i], details[i]); err != nil {
			return fmt.Errorf("signal %d: %w", i, err)
		}
	}
	return nil
}

func runSequential(a *scratch.Arena, n int, fn batchFunc) error {
	for i := range n {
		if err := fn(a, i); err != nil {
			return fmt.Errorf("signal %d: %w", i, err)
		}
	}
	return nil
}

func (k *Kernels) runAuto(n int, fn batchFunc) error {
	if k.config.EnableParallel && n > 1 {
		return k.runParallel(context.Background(), n, fn)
	}
	_, err := k.manager.WithScope(func(a *scratch.Arena) error {
		return runSequential(a, n, fn)
	})
	return err
}

// workers returns the number of goroutines for a batch of n signals.
func (k *Kernels) workers(n int) int {
	w := k.config.MaxWorkers
	if w <= 0 {
		w = runtime.GOMAXPROCS(0)
	}
	return max(min(w, n), 1)
}

// runParallel splits [0, n) into contiguous chunks, one per worker.
func (k *Kernels) runParallel(ctx context.Context, n int, fn batchFunc) error {
	if n == 0 {
		return nil
	}
	workers := k.workers(n)
	chunk := (n + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		g.Go(func() error {
			_, err := k.manager.WithScope(func(a *scratch.Arena) error {
				for i := start; i < end; i++ {
					if err := ctx.Err(); err != nil {
						return err
					}
					if err := fn(a, i); err != nil {
						return fmt.Errorf("signal %d: %w", i, err)
					}
				}
				return nil
			})
			return err
		})
	}
	return g.Wait()
}
