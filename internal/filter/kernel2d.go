package filter

import "gonum.org/v1/gonum/mat"

// SmoothingKernel2D returns the separable 2D kernel k[i][j] = h[i]·h[j] for
// the 1D kernel described by p. Its entries sum to one.
func SmoothingKernel2D(p KernelParams) (*mat.Dense, error) {
	h, err := SmoothingKernel(p)
	if err != nil {
		return nil, err
	}
	col := mat.NewVecDense(len(h), h)
	k := mat.NewDense(len(h), len(h), nil)
	k.Outer(1, col, col)
	return k, nil
}
