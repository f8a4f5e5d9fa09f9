package main

// Problem sizes shown in the strategy table
var (
	tableSignalLengths = []int{4, 16, 64, 256, 4096, 32768, 1 << 20}
	tableFilterLengths = []int{2, 4, 8, 20}
)

// Benchmark parameters
const (
	benchSignalLength = 1 << 16
	benchFilterLength = 8
	benchIterations   = 50
	bytesPerKilobyte  = 1024
)
