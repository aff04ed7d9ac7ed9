package errors

import (
	"math"
)

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// CheckNumericalStability checks if values contain NaN or Inf
// and returns an error if numerical instability is detected.
func CheckNumericalStability(operation string, values []float64, index int) error {
	for _, v := range values {
		if !IsFinite(v) {
			return NewNumericalInstabilityError(operation, values, index)
		}
	}
	return nil
}

// CheckMatrix checks all values in a matrix for numerical instability.
// The reported index is the first offending row.
func CheckMatrix(operation string, matrix interface{ At(int, int) float64 }, rows, cols int) error {
	for i := 0; i < rows; i++ {
		var unstable []float64
		for j := 0; j < cols; j++ {
			v := matrix.At(i, j)
			if !IsFinite(v) {
				unstable = append(unstable, v)
				if len(unstable) >= 10 {
					break
				}
			}
		}
		if len(unstable) > 0 {
			return NewNumericalInstabilityError(operation, unstable, i)
		}
	}
	return nil
}

// LogSumExp computes log(sum(exp(values))) in a numerically stable way.
// A NaN anywhere in values yields NaN.
func LogSumExp(values []float64) float64 {
	if len(values) == 0 {
		return math.Inf(-1)
	}

	maxVal := values[0]
	for _, v := range values[1:] {
		if math.IsNaN(v) {
			return math.NaN()
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.IsNaN(maxVal) {
		return math.NaN()
	}

	// If max is -Inf, all values are -Inf
	if math.IsInf(maxVal, -1) {
		return math.Inf(-1)
	}
	if math.IsInf(maxVal, 1) {
		return math.Inf(1)
	}

	sum := 0.0
	for _, v := range values {
		sum += math.Exp(v - maxVal)
	}

	return maxVal + math.Log(sum)
}

// ClipValue clips a value to the range [min, max].
func ClipValue(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
