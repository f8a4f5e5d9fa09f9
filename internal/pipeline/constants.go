package pipeline

// Default cache block sizes in float64 elements.
// 32 KiB L1, 256 KiB L2 and 2 MiB L3 data caches.
const (
	defaultL1Elements = 4096
	defaultL2Elements = 32768
	defaultL3Elements = 262144
)

// Decomposition constants.
const (
	// A level runs only while its input holds at least this many filter lengths.
	minFilterLengthsPerLevel = 2

	// Each level reads one input and writes two half-length outputs.
	bandsPerLevel = 2

	defaultLevelCapacity = 8
)
