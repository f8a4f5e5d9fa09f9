// Command dwt-info prints the detected CPU capabilities, the tier the
// strategy selector picks for a range of problem sizes, and optionally a
// quick per-tier throughput comparison.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"text/tabwriter"
	"time"

	dwt "github.com/tphakala/go-dwt"
)

func main() {
	var (
		noSIMD   = flag.Bool("nosimd", false, "Report scalar capabilities")
		platform = flag.Bool("platform", false, "Enable the platform vector tier")
		gather   = flag.Bool("gather", false, "Enable the gather/scatter tier")
		bench    = flag.Bool("bench", false, "Time every tier on a fixed problem")
	)
	flag.Parse()

	cfg := dwt.DefaultConfig()
	cfg.EnableSIMD = !*noSIMD
	cfg.EnablePlatform = *platform
	cfg.EnableGatherScatter = *gather

	k, err := dwt.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create kernels: %v", err)
	}

	fmt.Print(k.Info())
	fmt.Printf("estimated speedup at %d samples: %.2fx\n\n",
		benchSignalLength, k.Capabilities().EstimatedSpeedup(benchSignalLength))

	printStrategyTable(k)

	if *bench {
		fmt.Println()
		if err := runBenchmark(cfg); err != nil {
			log.Fatalf("Benchmark failed: %v", err)
		}
	}
}

func printStrategyTable(k *dwt.Kernels) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "signal")
	for _, l := range tableFilterLengths {
		fmt.Fprintf(w, "\tL=%d", l)
	}
	fmt.Fprintln(w)
	for _, n := range tableSignalLengths {
		fmt.Fprintf(w, "%d", n)
		for _, l := range tableFilterLengths {
			s := k.SelectStrategy(n, l)
			name := s.Kind.String()
			if s.SpecializedFilter {
				name += "*"
			}
			fmt.Fprintf(w, "\t%s", name)
		}
		fmt.Fprintln(w)
	}
	_ = w.Flush()
	fmt.Println("* unrolled fixed-length kernel available")
}

// runBenchmark times a periodic downsample on every tier by pinning the
// strategy through Config.Override.
func runBenchmark(base *dwt.Config) error {
	signal := make([]float64, benchSignalLength)
	for i := range signal {
		signal[i] = rand.Float64()*2 - 1 //nolint:gosec // benchmark input
	}
	filter := make([]float64, benchFilterLength)
	for i := range filter {
		filter[i] = 1 / float64(benchFilterLength)
	}
	out := make([]float64, len(signal)/2)

	fmt.Printf("periodic downsample, %d samples (%d KB), %d taps, %d iterations\n",
		benchSignalLength, benchSignalLength*8/bytesPerKilobyte, benchFilterLength, benchIterations)
	for _, kind := range dwt.StrategyKinds() {
		cfg := *base
		cfg.Override = &kind
		cfg.ForceGatherScatter = true
		k, err := dwt.New(&cfg)
		if err != nil {
			return err
		}

		start := time.Now()
		for range benchIterations {
			if err := k.ConvolveAndDownsamplePeriodic(signal, filter, out); err != nil {
				return err
			}
		}
		per := time.Since(start) / benchIterations
		fmt.Printf("  %-22s %10s/op  %8.1f Msamples/s\n",
			kind, per, float64(benchSignalLength)/per.Seconds()/1e6)
	}
	return nil
}
