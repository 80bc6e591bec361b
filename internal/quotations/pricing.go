package quotations

import "math"

// defaultDiscountPercentage applies when a quotation does not override it.
const defaultDiscountPercentage = 10

// Totals is the computed monetary summary of a quotation.
type Totals struct {
	Subtotal float64
	Discount float64
	Total    float64
}

// ComputeTotals sums the line-item prices and applies the percentage
// discount. The discount is truncated, not rounded. Inputs are assumed to be
// normalized already; a negative price is accepted and lowers the subtotal.
func ComputeTotals(services []ServiceItem, discountPercentage int) Totals {
	var subtotal float64
	for _, svc := range services {
		subtotal += svc.Price
	}
	discount := math.Floor(subtotal * float64(discountPercentage) / 100)
	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Total:    subtotal - discount,
	}
}
