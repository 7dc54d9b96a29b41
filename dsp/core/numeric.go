package core

import (
	"math"
	"math/cmplx"
)

const defaultEpsilon = 1e-12

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

// NearlyEqualComplex reports whether |a-b| is within eps, absolute or
// relative to the larger magnitude.
func NearlyEqualComplex(a, b complex128, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := cmplx.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(cmplx.Abs(a), cmplx.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// LogBase returns log_base(x). Only bases 2 and 10 take the exact math
// package paths; other bases use the change-of-base formula.
// Returns -Inf for zero and NaN for negative values.
func LogBase(x, base float64) float64 {
	switch base {
	case 10:
		return math.Log10(x)
	case 2:
		return math.Log2(x)
	default:
		return math.Log(x) / math.Log(base)
	}
}

// FlooredLog returns log_base(magnitude + floor). The floor is added before
// taking the logarithm so exact zeros map to log_base(floor).
func FlooredLog(magnitude, floor, base float64) float64 {
	return LogBase(magnitude+floor, base)
}

// IsFinite reports whether x is neither NaN nor Inf.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
