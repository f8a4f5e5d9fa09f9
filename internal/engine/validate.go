package engine

import (
	"fmt"
	"math"
)

// maxShift bounds MODWT dilation offsets to the signed 32-bit range.
const maxShift = math.MaxInt32

// DownsampleLength returns the output length of a stride-2 convolution over
// n samples. An odd trailing sample only contributes through the windows of
// earlier outputs.
func DownsampleLength(n int) int {
	return n / 2
}

// UpsampleLength returns the output length of upsampling n coefficients by 2.
func UpsampleLength(n int) int {
	return 2 * n
}

func checkFilter(name string, filter []float64) error {
	if filter == nil {
		return nullArg(name)
	}
	if len(filter) == 0 {
		return fmt.Errorf("%w: %s is empty", ErrInvalidArgument, name)
	}
	return nil
}

// ValidateDownsample checks arguments for a stride-2 convolution.
func ValidateDownsample(signal, filter, out []float64) error {
	if signal == nil {
		return nullArg("signal")
	}
	if err := checkFilter("filter", filter); err != nil {
		return err
	}
	if out == nil {
		return nullArg("output")
	}
	if want := DownsampleLength(len(signal)); len(out) != want {
		return lengthMismatch("output", len(out), want)
	}
	return nil
}

// ValidateSlice checks that [offset, offset+length) lies inside signal.
func ValidateSlice(signal []float64, offset, length int) error {
	if signal == nil {
		return nullArg("signal")
	}
	if offset < 0 || length < 0 {
		return fmt.Errorf("%w: negative offset %d or length %d", ErrIndexOutOfBounds, offset, length)
	}
	if offset > len(signal) || length > len(signal)-offset {
		return fmt.Errorf("%w: window [%d, %d) exceeds signal length %d",
			ErrIndexOutOfBounds, offset, offset+length, len(signal))
	}
	return nil
}

// ValidateUpsample checks arguments for upsample-then-convolve.
func ValidateUpsample(coeffs, filter, out []float64) error {
	if coeffs == nil {
		return nullArg("coefficients")
	}
	if err := checkFilter("filter", filter); err != nil {
		return err
	}
	if out == nil {
		return nullArg("output")
	}
	if want := UpsampleLength(len(coeffs)); len(out) != want {
		return lengthMismatch("output", len(out), want)
	}
	return nil
}

// ValidateCombined checks arguments for a fused analysis step.
func ValidateCombined(signal, low, high, approx, detail []float64) error {
	if signal == nil {
		return nullArg("signal")
	}
	if err := checkFilter("low-pass filter", low); err != nil {
		return err
	}
	if err := checkFilter("high-pass filter", high); err != nil {
		return err
	}
	if len(low) != len(high) {
		return lengthMismatch("high-pass filter", len(high), len(low))
	}
	if approx == nil {
		return nullArg("approximation output")
	}
	if detail == nil {
		return nullArg("detail output")
	}
	want := DownsampleLength(len(signal))
	if len(approx) != want {
		return lengthMismatch("approximation output", len(approx), want)
	}
	if len(detail) != want {
		return lengthMismatch("detail output", len(detail), want)
	}
	return nil
}

// ValidateInverseCombined checks arguments for a fused synthesis step.
func ValidateInverseCombined(approx, detail, low, high, out []float64) error {
	if approx == nil {
		return nullArg("approximation")
	}
	if detail == nil {
		return nullArg("detail")
	}
	if len(detail) != len(approx) {
		return lengthMismatch("detail", len(detail), len(approx))
	}
	if err := checkFilter("low-pass filter", low); err != nil {
		return err
	}
	if err := checkFilter("high-pass filter", high); err != nil {
		return err
	}
	if len(low) != len(high) {
		return lengthMismatch("high-pass filter", len(high), len(low))
	}
	if out == nil {
		return nullArg("output")
	}
	if want := UpsampleLength(len(approx)); len(out) != want {
		return lengthMismatch("output", len(out), want)
	}
	return nil
}

// ValidateMODWT checks arguments for a circular convolution at the given
// level and returns the dilation shift 2^(level-1).
func ValidateMODWT(signal, filter, out []float64, level int) (int, error) {
	if signal == nil {
		return 0, nullArg("signal")
	}
	if err := checkFilter("filter", filter); err != nil {
		return 0, err
	}
	if out == nil {
		return 0, nullArg("output")
	}
	if len(out) != len(signal) {
		return 0, lengthMismatch("output", len(out), len(signal))
	}
	shift, err := LevelShift(level)
	if err != nil {
		return 0, err
	}
	if len(filter) > 1 && shift > maxShift/(len(filter)-1) {
		return 0, fmt.Errorf("%w: dilation %d x %d taps overflows 32-bit offset",
			ErrTooLarge, shift, len(filter)-1)
	}
	return shift, nil
}

// LevelShift returns the à trous dilation 2^(level-1) for a MODWT level.
func LevelShift(level int) (int, error) {
	if level < 1 {
		return 0, fmt.Errorf("%w: level must be at least 1, got %d", ErrInvalidArgument, level)
	}
	if level-1 > maxShiftBits {
		return 0, fmt.Errorf("%w: level %d dilation exceeds 32-bit offset", ErrTooLarge, level)
	}
	return 1 << (level - 1), nil
}
