package engine

// Unrolled stride-2 kernels for the filter lengths wavelet code uses most:
// 1 (identity-like), 2 (Haar), 4 (DB2) and 8 (DB4). Each computes the
// interior outputs with straight-line code and hands the few outputs whose
// window crosses the signal end to downsampleBoundary.

// interiorOutputs returns how many leading outputs of a stride-2 convolution
// read only samples inside [0, n).
func interiorOutputs(n, filterLen, outLen int) int {
	if n < filterLen {
		return 0
	}
	return min((n-filterLen)/2+1, outLen)
}

// downsampleBoundary computes outputs [from, len(dst)) with explicit
// wrap-around or zero fill.
func downsampleBoundary(dst, signal, filter []float64, from int, periodic bool) {
	n := len(signal)
	for i := from; i < len(dst); i++ {
		base := 2 * i
		var sum float64
		for k, c := range filter {
			idx := base + k
			if idx >= n {
				if !periodic {
					break
				}
				idx %= n
			}
			sum += c * signal[idx]
		}
		dst[i] = sum
	}
}

// downsampleSpecialized runs the unrolled kernel for len(filter) when one
// exists and reports whether it did.
func downsampleSpecialized(dst, signal, filter []float64, periodic bool) bool {
	var interior int
	switch len(filter) {
	case 1:
		interior = downsample1(dst, signal, filter)
	case 2:
		interior = downsample2(dst, signal, filter)
	case 4:
		interior = downsample4(dst, signal, filter)
	case 8:
		interior = downsample8(dst, signal, filter)
	default:
		return false
	}
	downsampleBoundary(dst, signal, filter, interior, periodic)
	return true
}

func downsample1(dst, signal, filter []float64) int {
	f0 := filter[0]
	interior := interiorOutputs(len(signal), 1, len(dst))
	for i := range interior {
		dst[i] = f0 * signal[2*i]
	}
	return interior
}

func downsample2(dst, signal, filter []float64) int {
	f0, f1 := filter[0], filter[1]
	interior := interiorOutputs(len(signal), 2, len(dst))
	for i := range interior {
		s := signal[2*i : 2*i+2 : 2*i+2]
		dst[i] = f0*s[0] + f1*s[1]
	}
	return interior
}

func downsample4(dst, signal, filter []float64) int {
	f0, f1, f2, f3 := filter[0], filter[1], filter[2], filter[3]
	interior := interiorOutputs(len(signal), 4, len(dst))
	for i := range interior {
		s := signal[2*i : 2*i+4 : 2*i+4]
		dst[i] = f0*s[0] + f1*s[1] + f2*s[2] + f3*s[3]
	}
	return interior
}

func downsample8(dst, signal, filter []float64) int {
	f := filter[:8:8]
	interior := interiorOutputs(len(signal), 8, len(dst))
	for i := range interior {
		s := signal[2*i : 2*i+8 : 2*i+8]
		lo := f[0]*s[0] + f[1]*s[1] + f[2]*s[2] + f[3]*s[3]
		hi := f[4]*s[4] + f[5]*s[5] + f[6]*s[6] + f[7]*s[7]
		dst[i] = lo + hi
	}
	return interior
}

// combinedHaarPeriodic computes both bands of a 2-tap analysis step in a
// single pass over the signal.
func combinedHaarPeriodic(approx, detail, signal, low, high []float64) {
	n := len(signal)
	l0, l1 := low[0], low[1]
	h0, h1 := high[0], high[1]
	for i := range approx {
		a := signal[2*i]
		var b float64
		if j := 2*i + 1; j < n {
			b = signal[j]
		} else {
			b = signal[j%n]
		}
		approx[i] = l0*a + l1*b
		detail[i] = h0*a + h1*b
	}
}
