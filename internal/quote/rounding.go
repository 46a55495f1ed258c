package quote

import (
	"math"

	"github.com/shopspring/decimal"
)

// baseDecimals is the number of decimal places of the base currency (BRL).
const baseDecimals = 2

// RoundToNote returns the multiple of noteSize nearest to amount.
// Halves round away from zero. A non-positive noteSize leaves amount unchanged.
func RoundToNote(amount, noteSize float64) float64 {
	if noteSize <= 0 {
		return amount
	}
	return math.Round(amount/noteSize) * noteSize
}

// roundPlaces rounds v to the given number of decimal places, half away from zero.
func roundPlaces(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}
