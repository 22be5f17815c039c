// Package accuracy measures how far an approximation is from a reference value.
package accuracy

import (
	"errors"
	"math"
)

const (
	// DefaultDigits is the rounding applied when callers have no preference.
	DefaultDigits = 7
	// MaxDigits is the most decimals a float64 represents faithfully.
	MaxDigits = 15
)

var ErrZeroReference = errors.New("accuracy: relative error against a zero reference")

// Absolute returns |exact - approx| rounded to digits decimals.
// Digits outside [0, MaxDigits] are clamped to the nearest valid count.
func Absolute(exact, approx float64, digits int) float64 {
	return Round(math.Abs(exact-approx), digits)
}

// Relative returns |exact - approx| / |exact| rounded to digits decimals.
func Relative(exact, approx float64, digits int) (float64, error) {
	if exact == 0 {
		return math.NaN(), ErrZeroReference
	}
	return Round(math.Abs(exact-approx)/math.Abs(exact), digits), nil
}

// Round rounds v half away from zero to digits decimals, clamped into [0, MaxDigits].
func Round(v float64, digits int) float64 {
	digits = ClampDigits(digits)
	scale := math.Pow(10, float64(digits))
	return math.Round(v*scale) / scale
}

func ClampDigits(digits int) int {
	return max(0, min(digits, MaxDigits))
}

// MachineEpsilon halves a candidate until adding it to 1 no longer changes 1,
// and returns the last value that did.
func MachineEpsilon() float64 {
	eps := 1.0
	for 1+eps != 1 {
		eps /= 2
	}
	return 2 * eps
}
