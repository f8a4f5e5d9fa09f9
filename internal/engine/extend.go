package engine

// extendForward fills ext[j] with signal[start+j], wrapping modulo
// len(signal) when periodic and zero beyond the end otherwise. ext is
// expected to be zero-filled on entry.
func extendForward(ext, signal []float64, start int, periodic bool) {
	n := len(signal)
	if start < n {
		direct := copy(ext, signal[start:])
		ext = ext[direct:]
		start += direct
	}
	if !periodic || len(ext) == 0 {
		return
	}
	pos := start % n
	for len(ext) > 0 {
		c := copy(ext, signal[pos:])
		ext = ext[c:]
		pos = 0
	}
}

// extendBackward fills ext[t] with coeffs[(t-lead) mod N] for periodic
// extension or zero where t < lead otherwise, so that the first lead
// elements carry the history preceding coeffs[0].
func extendBackward(ext, coeffs []float64, lead int, periodic bool) {
	n := len(coeffs)
	for t := 0; t < lead && t < len(ext); t++ {
		if !periodic {
			continue
		}
		i := (t - lead) % n
		if i < 0 {
			i += n
		}
		ext[t] = coeffs[i]
	}
	if lead < len(ext) {
		copy(ext[lead:], coeffs)
	}
}

// polyphaseReversed splits filter into its even and odd phases, each
// reversed and zero padded to phases taps, for use with valid correlation.
func polyphaseReversed(even, odd, filter []float64) {
	phases := len(even)
	for q := range phases {
		p := phases - 1 - q
		even[q] = filter[2*p]
		if j := 2*p + 1; j < len(filter) {
			odd[q] = filter[j]
		} else {
			odd[q] = 0
		}
	}
}
