package utils

import "math"

// Round2 rounds a currency or bundle amount to 2 decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
