package dwt

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/tphakala/go-dwt/internal/engine"
	"github.com/tphakala/go-dwt/internal/filter"
)

// DefaultTileSize is the tile edge used by Convolve2DTiled when tileSize is 0.
const DefaultTileSize = 64

// Convolve2D applies kernel to src centred on every pixel, with samples
// outside src read as zero. The result has the dimensions of src.
func (k *Kernels) Convolve2D(src, kernel *mat.Dense) (*mat.Dense, error) {
	return convolve2D(src, kernel, func(dst, s, kern engine.Grid) error {
		return engine.Convolve2D(dst, s, kern)
	})
}

// Convolve2DTiled computes the same result as Convolve2D in tileSize x
// tileSize blocks. A tileSize of 0 uses DefaultTileSize.
func (k *Kernels) Convolve2DTiled(src, kernel *mat.Dense, tileSize int) (*mat.Dense, error) {
	if tileSize == 0 {
		tileSize = DefaultTileSize
	}
	return convolve2D(src, kernel, func(dst, s, kern engine.Grid) error {
		return engine.Convolve2DTiled(dst, s, kern, tileSize)
	})
}

func convolve2D(src, kernel *mat.Dense, run func(dst, src, kernel engine.Grid) error) (*mat.Dense, error) {
	s, err := gridOf(src, "source")
	if err != nil {
		return nil, err
	}
	kern, err := gridOf(kernel, "kernel")
	if err != nil {
		return nil, err
	}
	out := mat.NewDense(s.Rows, s.Cols, nil)
	dst := engine.Grid{Rows: s.Rows, Cols: s.Cols, Data: out.RawMatrix().Data}
	if err := run(dst, s, kern); err != nil {
		return nil, err
	}
	return out, nil
}

// gridOf views m as a row-major grid, copying when m is a strided view.
func gridOf(m *mat.Dense, name string) (engine.Grid, error) {
	if m == nil {
		return engine.Grid{}, fmt.Errorf("%w: %s", ErrNullArgument, name)
	}
	if m.IsEmpty() {
		return engine.Grid{}, fmt.Errorf("%w: %s is empty", ErrInvalidArgument, name)
	}
	rows, cols := m.Dims()
	raw := m.RawMatrix()
	if raw.Stride == cols {
		return engine.Grid{Rows: rows, Cols: cols, Data: raw.Data[:rows*cols]}, nil
	}
	data := make([]float64, 0, rows*cols)
	for r := range rows {
		data = append(data, m.RawRowView(r)...)
	}
	return engine.Grid{Rows: rows, Cols: cols, Data: data}, nil
}

// SmoothingKernel2D designs a separable Kaiser-windowed low-pass kernel of
// taps x taps entries summing to one. cutoff is normalized to (0, 0.5] and
// attenuation is the stopband attenuation in dB.
func SmoothingKernel2D(taps int, cutoff, attenuation float64) (*mat.Dense, error) {
	k, err := filter.SmoothingKernel2D(filter.KernelParams{
		Taps:        taps,
		Cutoff:      cutoff,
		Attenuation: attenuation,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return k, nil
}
