// Package pricing holds the pure price arithmetic for carts and orders.
// Every function is total: inputs are validated upstream.
//
// Intermediate amounts keep full precision. Rounding happens exactly once, in
// FormatIDR, so rounding error never compounds across quantity multiplication.
package pricing

import "github.com/arnoldart/shophub/internal/domain"

// Shipping fee schedule, in whole rupiah. Tuned here, not in logic.
const (
	FreeShippingThreshold = 100_000
	RegularFee            = 15_000
	ExpressFee            = 25_000
	SameDayFee            = 50_000
)

// DiscountedUnitPrice applies the whole-percent discount to the list price.
func DiscountedUnitPrice(p domain.Product) float64 {
	return float64(p.Price) * (1 - float64(p.Discount)/100)
}

// LineTotal is the discounted unit price times the line quantity.
func LineTotal(line domain.CartLine) float64 {
	return DiscountedUnitPrice(line.Product) * float64(line.Quantity)
}

// Subtotal sums the line totals of the whole cart.
func Subtotal(cart *domain.Cart) float64 {
	total := 0.0
	for i := range cart.Lines {
		total += LineTotal(cart.Lines[i])
	}
	return total
}

// ShippingCost returns the fee for the chosen tier. Regular shipping is free
// at or above FreeShippingThreshold; express and same-day are flat fees.
func ShippingCost(tier domain.ShippingTier, subtotal float64) float64 {
	switch tier {
	case domain.ShippingExpress:
		return ExpressFee
	case domain.ShippingSameDay:
		return SameDayFee
	default:
		if subtotal >= FreeShippingThreshold {
			return 0
		}
		return RegularFee
	}
}

// GrandTotal is the order total after shipping.
func GrandTotal(subtotal, shippingCost float64) float64 {
	return subtotal + shippingCost
}
