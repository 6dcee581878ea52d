package backfill

import "math"

// NormalizeVector returns v scaled to unit length. A zero vector yields a
// zero vector of the same length; the input is never modified.
func NormalizeVector(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	var sumSquares float64
	for _, x := range v {
		sumSquares += float64(x) * float64(x)
	}

	result := make([]float32, len(v))
	if sumSquares == 0 {
		return result
	}
	norm := math.Sqrt(sumSquares)
	for i, x := range v {
		result[i] = float32(float64(x) / norm)
	}
	return result
}
