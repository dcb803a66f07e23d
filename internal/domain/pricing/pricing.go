// internal/domain/pricing/pricing.go
package pricing

import "math"

// Effective computes the unit price after applying a discount percentage.
//
// Rules:
// - discount is clamped to [0, 100]
// - a negative or NaN price is treated as 0 (render-resilient fallback, never NaN)
// - result is rounded to 2 decimals
//
// Every money surface (catalog, cart lines, order totals, compare table)
// must go through this function.
func Effective(price, discount float64) float64 {
	if math.IsNaN(price) || price < 0 {
		price = 0
	}
	if math.IsNaN(discount) || discount < 0 {
		discount = 0
	}
	if discount > 100 {
		discount = 100
	}
	return Round2(price * (1 - discount/100))
}

// LineTotal is Effective(price, discount) * qty, rounded to 2 decimals.
func LineTotal(price, discount float64, qty int) float64 {
	if qty <= 0 {
		return 0
	}
	return Round2(Effective(price, discount) * float64(qty))
}

// Round2 rounds half away from zero to 2 decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
