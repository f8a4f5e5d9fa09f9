package engine

import "fmt"

// Grid is a dense row-major 2D array view.
type Grid struct {
	Rows, Cols int
	Data       []float64
}

func (g Grid) validate(name string) error {
	if g.Data == nil {
		return nullArg(name)
	}
	if g.Rows <= 0 || g.Cols <= 0 {
		return fmt.Errorf("%w: %s has dimensions %dx%d", ErrInvalidArgument, name, g.Rows, g.Cols)
	}
	if len(g.Data) != g.Rows*g.Cols {
		return lengthMismatch(name, len(g.Data), g.Rows*g.Cols)
	}
	return nil
}

// ValidateConvolve2D checks a 2D convolution's operands.
func ValidateConvolve2D(dst, src, kernel Grid) error {
	if err := src.validate("source"); err != nil {
		return err
	}
	if err := kernel.validate("kernel"); err != nil {
		return err
	}
	if err := dst.validate("output"); err != nil {
		return err
	}
	if dst.Rows != src.Rows || dst.Cols != src.Cols {
		return fmt.Errorf("%w: output is %dx%d, source is %dx%d",
			ErrLengthMismatch, dst.Rows, dst.Cols, src.Rows, src.Cols)
	}
	return nil
}

// Convolve2D applies kernel to src centred on each output pixel, treating
// samples outside src as zero. The kernel is applied as a correlation
// (no flip), matching the convention for symmetric smoothing kernels.
func Convolve2D(dst, src, kernel Grid) error {
	if err := ValidateConvolve2D(dst, src, kernel); err != nil {
		return err
	}
	conv2DRegion(dst, src, kernel, 0, src.Rows, 0, src.Cols)
	return nil
}

// Convolve2DTiled computes the same result as Convolve2D one tileSize x
// tileSize block at a time. Tiles far enough from the edges skip the
// bounds checks.
func Convolve2DTiled(dst, src, kernel Grid, tileSize int) error {
	if err := ValidateConvolve2D(dst, src, kernel); err != nil {
		return err
	}
	if tileSize <= 0 {
		return fmt.Errorf("%w: tile size must be positive, got %d", ErrInvalidArgument, tileSize)
	}

	cr, cc := kernel.Rows/2, kernel.Cols/2
	for r0 := 0; r0 < src.Rows; r0 += tileSize {
		r1 := min(r0+tileSize, src.Rows)
		for c0 := 0; c0 < src.Cols; c0 += tileSize {
			c1 := min(c0+tileSize, src.Cols)
			interior := r0-cr >= 0 && r1-1-cr+kernel.Rows <= src.Rows &&
				c0-cc >= 0 && c1-1-cc+kernel.Cols <= src.Cols
			if interior {
				conv2DInterior(dst, src, kernel, r0, r1, c0, c1)
			} else {
				conv2DRegion(dst, src, kernel, r0, r1, c0, c1)
			}
		}
	}
	return nil
}

// conv2DRegion computes outputs in [r0, r1) x [c0, c1) with zero padding.
func conv2DRegion(dst, src, kernel Grid, r0, r1, c0, c1 int) {
	cr, cc := kernel.Rows/2, kernel.Cols/2
	for r := r0; r < r1; r++ {
		for c := c0; c < c1; c++ {
			var sum float64
			for i := range kernel.Rows {
				sr := r + i - cr
				if sr < 0 || sr >= src.Rows {
					continue
				}
				row := src.Data[sr*src.Cols : (sr+1)*src.Cols]
				krow := kernel.Data[i*kernel.Cols : (i+1)*kernel.Cols]
				for j, k := range krow {
					sc := c + j - cc
					if sc < 0 || sc >= src.Cols {
						continue
					}
					sum += k * row[sc]
				}
			}
			dst.Data[r*dst.Cols+c] = sum
		}
	}
}

// conv2DInterior is conv2DRegion for tiles whose kernel footprint lies
// entirely inside src.
func conv2DInterior(dst, src, kernel Grid, r0, r1, c0, c1 int) {
	cr, cc := kernel.Rows/2, kernel.Cols/2
	kc := kernel.Cols
	for r := r0; r < r1; r++ {
		for c := c0; c < c1; c++ {
			var sum float64
			for i := range kernel.Rows {
				base := (r+i-cr)*src.Cols + c - cc
				row := src.Data[base : base+kc]
				krow := kernel.Data[i*kc : (i+1)*kc]
				for j, k := range krow {
					sum += k * row[j]
				}
			}
			dst.Data[r*dst.Cols+c] = sum
		}
	}
}
