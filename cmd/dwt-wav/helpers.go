package main

import (
	"fmt"
	"log"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"gonum.org/v1/gonum/floats"
)

// wavInput holds a decoded WAV file as per-channel float64 samples in [-1, 1].
type wavInput struct {
	rate     int
	bitDepth int
	channels [][]float64
}

// readWAV decodes path and splits it into normalized channels.
func readWAV(path string, verbose bool) (*wavInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read PCM data: %w", err)
	}
	bitDepth := int(decoder.BitDepth)
	if bitDepth == 0 {
		bitDepth = buf.SourceBitDepth
	}
	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", buf.Format.SampleRate, buf.Format.NumChannels, bitDepth)
	}

	scale, err := fullScale(bitDepth)
	if err != nil {
		return nil, err
	}
	return &wavInput{
		rate:     buf.Format.SampleRate,
		bitDepth: bitDepth,
		channels: deinterleave(buf.AsFloatBuffer().Data, buf.Format.NumChannels, 1/scale),
	}, nil
}

// fullScale returns the largest positive sample value for a PCM bit depth.
func fullScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case bitsPerSample8:
		return maxInt8, nil
	case bitsPerSample16:
		return maxInt16, nil
	case bitsPerSample24:
		return maxInt24, nil
	case bitsPerSample32:
		return maxInt32, nil
	default:
		return 0, fmt.Errorf("unsupported bit depth: %d", bitDepth)
	}
}

// deinterleave splits frames into channels, multiplying by gain.
func deinterleave(data []float64, numChannels int, gain float64) [][]float64 {
	if numChannels < 1 {
		numChannels = 1
	}
	frames := len(data) / numChannels
	channels := make([][]float64, numChannels)
	for ch := range channels {
		channels[ch] = make([]float64, frames)
		for i := range frames {
			channels[ch][i] = data[i*numChannels+ch] * gain
		}
	}
	return channels
}

// writeWAV encodes channels as integer PCM, clipping to full scale.
func writeWAV(path string, channels [][]float64, rate, bitDepth int) error {
	scale, err := fullScale(bitDepth)
	if err != nil {
		return err
	}
	if len(channels) == 0 {
		return fmt.Errorf("no channels to write")
	}

	frames := len(channels[0])
	data := make([]int, frames*len(channels))
	for ch, samples := range channels {
		for i, v := range samples[:frames] {
			data[i*len(channels)+ch] = int(math.Round(max(-scale, min(scale, v*scale))))
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	encoder := wav.NewEncoder(f, rate, bitDepth, len(channels), wavFormatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: len(channels), SampleRate: rate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := encoder.Write(buf); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write samples: %w", err)
	}
	if err := encoder.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to finalize WAV: %w", err)
	}
	return f.Close()
}

// bandEnergy is the share of a channel's energy held by one band.
type bandEnergy struct {
	name    string
	length  int
	energy  float64
	percent float64
}

// energies summarizes a decomposition, detail bands first, then the
// deepest approximation.
func energies(approx, detail [][]float64, levels int) []bandEnergy {
	bands := make([]bandEnergy, 0, levels+1)
	var total float64
	for j := range levels {
		e := sumSquares(detail[j])
		bands = append(bands, bandEnergy{name: fmt.Sprintf("D%d", j+1), length: len(detail[j]), energy: e})
		total += e
	}
	if levels > 0 {
		a := approx[levels-1]
		e := sumSquares(a)
		bands = append(bands, bandEnergy{name: fmt.Sprintf("A%d", levels), length: len(a), energy: e})
		total += e
	}
	if total > 0 {
		for i := range bands {
			bands[i].percent = percentScale * bands[i].energy / total
		}
	}
	return bands
}

func sumSquares(s []float64) float64 {
	return floats.Dot(s, s)
}
