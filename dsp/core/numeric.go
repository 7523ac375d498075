package core

import "math"

const defaultEpsilon = 1e-12

// SqrtEpsilon is the square root of the float64 machine epsilon.
// It is the numeric floor used wherever a denominator may approach zero.
var SqrtEpsilon = math.Sqrt(math.Nextafter(1, 2) - 1)

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// FloorAbove returns x, or floor when x is smaller than floor.
func FloorAbove(x, floor float64) float64 {
	if x < floor {
		return floor
	}

	return x
}

// LinearPowerToDB converts linear power to dB (10*log10 convention).
// Returns -Inf for zero, +Inf for +Inf and NaN for negative values.
func LinearPowerToDB(power float64) float64 {
	if power < 0 {
		return math.NaN()
	}

	if power == 0 {
		return math.Inf(-1)
	}

	return 10 * math.Log10(power)
}
