// Command dwt-wav decomposes each channel of a WAV file with a multi-level
// discrete wavelet transform and prints how the energy splits across bands.
//
// Usage:
//
//	dwt-wav input.wav
//	dwt-wav -wavelet haar -levels 8 input.wav
//	dwt-wav -drop 2 -out smooth.wav input.wav   # zero the two finest detail bands
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	dwt "github.com/tphakala/go-dwt"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	wavelet := flag.String("wavelet", defaultWavelet, "Wavelet: "+strings.Join(waveletNames(), ", "))
	levels := flag.Int("levels", defaultLevels, "Decomposition levels")
	drop := flag.Int("drop", 0, "Zero this many of the finest detail bands before reconstruction")
	output := flag.String("out", "", "Write the reconstructed signal to this WAV file")
	parallel := flag.Bool("parallel", true, "Decompose channels concurrently")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		return fmt.Errorf("insufficient arguments")
	}

	low, ok := wavelets[strings.ToLower(*wavelet)]
	if !ok {
		return fmt.Errorf("unknown wavelet %q", *wavelet)
	}
	high := qmf(low)

	cfg := dwt.DefaultConfig()
	cfg.EnableParallel = *parallel
	k, err := dwt.New(cfg)
	if err != nil {
		return err
	}
	if *verbose {
		log.Printf("Kernels:\n%s", k.Info())
	}

	input, err := readWAV(args[0], *verbose)
	if err != nil {
		return err
	}

	start := time.Now()
	decs, err := decomposeChannels(context.Background(), k, input.channels, low, high, *levels, *parallel)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("%s: %d Hz, %d channels, %d samples, wavelet %s\n",
		filepath.Base(args[0]), input.rate, len(input.channels), len(input.channels[0]), *wavelet)
	for ch, dec := range decs {
		fmt.Printf("channel %d: %s\n", ch, dec.Plan)
		for _, b := range energies(dec.Approx, dec.Detail, dec.Levels()) {
			fmt.Printf("  %-4s %8d samples  %14.6g  %6.2f%%\n", b.name, b.length, b.energy, b.percent)
		}
	}
	fmt.Printf("Decomposed in %s\n", elapsed)

	if *output == "" {
		return nil
	}
	rec := make([][]float64, len(decs))
	for ch, dec := range decs {
		for j := range min(*drop, dec.Levels()) {
			clear(dec.Detail[j])
		}
		if rec[ch], err = k.Reconstruct(dec, low, high); err != nil {
			return fmt.Errorf("channel %d: %w", ch, err)
		}
	}
	if err := writeWAV(*output, rec, input.rate, input.bitDepth); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", *output)
	return nil
}

// decomposeChannels runs Decompose on every channel, one goroutine per
// channel when parallel is set.
func decomposeChannels(ctx context.Context, k *dwt.Kernels, channels [][]float64, low, high []float64, levels int, parallel bool) ([]*dwt.Decomposition, error) {
	decs := make([]*dwt.Decomposition, len(channels))
	g, ctx := errgroup.WithContext(ctx)
	if !parallel {
		g.SetLimit(1)
	}
	for ch, samples := range channels {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			dec, err := k.Decompose(samples, low, high, levels)
			if err != nil {
				return fmt.Errorf("channel %d: %w", ch, err)
			}
			decs[ch] = dec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return decs, nil
}

// qmf returns the quadrature mirror g[k] = (-1)^k h[L-1-k].
func qmf(h []float64) []float64 {
	g := make([]float64, len(h))
	for k := range g {
		g[k] = h[len(h)-1-k]
		if k%2 == 1 {
			g[k] = -g[k]
		}
	}
	return g
}

func waveletNames() []string {
	names := make([]string, 0, len(wavelets))
	for name := range wavelets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
