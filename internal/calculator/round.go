package calculator

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round2 rounds a currency value to cents, half away from zero.
// Non-finite values are returned unchanged.
func Round2(value float64) float64 {
	if !IsFinite(value) {
		return value
	}
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

// IsFinite reports whether value is neither NaN nor an infinity.
func IsFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}
