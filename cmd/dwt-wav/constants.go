package main

import "math"

// Sample format constants
const (
	bitsPerSample8  = 8
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	maxInt8  = 127.0
	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	wavFormatPCM = 1 // WAVE_FORMAT_PCM
)

// CLI defaults
const (
	defaultLevels   = 5
	defaultWavelet  = "db4"
	minRequiredArgs = 1
	percentScale    = 100
)

// wavelets holds the orthonormal scaling filters the command understands.
// Wavelet filters are the matching quadrature mirrors.
var wavelets = map[string][]float64{
	"haar": {math.Sqrt2 / 2, math.Sqrt2 / 2},
	"db2": {
		0.4829629131445341,
		0.8365163037378079,
		0.2241438680420134,
		-0.1294095225512604,
	},
	"db4": {
		0.2303778133088964,
		0.7148465705529154,
		0.6308807679298587,
		-0.0279837694168599,
		-0.1870348117190931,
		0.0308413818355607,
		0.0328830116668852,
		-0.0105974017850690,
	},
}
