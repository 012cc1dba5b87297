package checkout

import (
	"github.com/atelierline/storefront-gateway/pkg/upstream"
	"github.com/shopspring/decimal"
)

// Fallback shipping rates used when the delivery check returned no priced
// option for the chosen method.
var (
	fallbackStandardShipping = decimal.NewFromInt(5)
	fallbackExpressShipping  = decimal.NewFromInt(15)
)

// UnitPrice picks the effective per-unit price: variant discounted price,
// then variant price, then product discounted price, then product price.
// Zero is treated as absent, mirroring the backend's optional fields.
func UnitPrice(product *upstream.Product, variant *upstream.Variant) decimal.Decimal {
	if variant != nil {
		if variant.DiscountedPrice > 0 {
			return decimal.NewFromFloat(variant.DiscountedPrice)
		}
		if variant.Price > 0 {
			return decimal.NewFromFloat(variant.Price)
		}
	}
	if product != nil {
		if product.DiscountedPrice > 0 {
			return decimal.NewFromFloat(product.DiscountedPrice)
		}
		if product.Price > 0 {
			return decimal.NewFromFloat(product.Price)
		}
	}
	return decimal.Zero
}

// ShippingCost resolves the price of the chosen delivery method from the
// options the backend returned for this pincode.
func ShippingCost(options []upstream.DeliveryOption, method string) decimal.Decimal {
	for _, option := range options {
		if option.Type == method {
			return decimal.NewFromFloat(option.Price)
		}
	}
	if method == "express" {
		return fallbackExpressShipping
	}
	return fallbackStandardShipping
}

// Totals is the money breakdown of a quote.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals caps the discount at subtotal plus shipping so the total can
// never go negative.
func ComputeTotals(subtotal, shipping, discount decimal.Decimal) Totals {
	if subtotal.IsNegative() {
		subtotal = decimal.Zero
	}
	if shipping.IsNegative() {
		shipping = decimal.Zero
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}

	beforeDiscount := subtotal.Add(shipping)
	if discount.GreaterThan(beforeDiscount) {
		discount = beforeDiscount
	}

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Discount: discount,
		Total:    beforeDiscount.Sub(discount),
	}
}
