package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// FinalPrice returns the discounted unit price:
// price - price * discountPercent / 100, exact decimal arithmetic.
// A zero discount returns the price unchanged.
func FinalPrice(price decimal.Decimal, discountPercent uint) decimal.Decimal {
	if discountPercent == 0 {
		return price
	}
	disc := price.Mul(decimal.NewFromInt(int64(discountPercent))).Div(hundred)
	return price.Sub(disc)
}
