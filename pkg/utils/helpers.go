package utils

import (
	"cmp"
	"math"
	"strconv"
)

// Clamp limits a value between lo and hi
func Clamp[T cmp.Ordered](value, lo, hi T) T {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// RoundTo rounds a float to specified decimal places
func RoundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}

// FormatTemp renders a temperature the way the dashboard prints it: no trailing zeros
func FormatTemp(value float64) string {
	return FormatNumber(RoundTo(value, 1))
}

// FormatNumber prints a float with the shortest exact representation
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
