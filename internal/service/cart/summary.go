package cart

import (
	"strings"

	"storefront/internal/domain"
	"github.com/shopspring/decimal"
)

const PromoCode = "welcome10"

var (
	FreeShippingThreshold = decimal.NewFromInt(100)
	ShippingFee           = decimal.RequireFromString("9.99")
	promoRate             = decimal.RequireFromString("0.10")
)

// Summary is the checkout breakdown shown on the cart page.
type Summary struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	Shipping     decimal.Decimal `json:"shipping"`
	Discount     decimal.Decimal `json:"discount"`
	Total        decimal.Decimal `json:"total"`
	PromoApplied bool            `json:"promoApplied"`
}

// Summarize prices the current cart. Shipping is free above the threshold and for an
// empty cart. An empty promo code means none; an unknown one is ErrInvalidPromoCode.
func (c *Container) Summarize(promoCode string) (Summary, error) {
	c.mu.Lock()
	items := c.copyItems()
	c.mu.Unlock()

	return summarize(items, promoCode)
}

func summarize(items []domain.CartItem, promoCode string) (Summary, error) {
	s := Summary{
		Subtotal: subtotal(items),
		Shipping: decimal.Zero,
		Discount: decimal.Zero,
	}
	if len(items) > 0 && !s.Subtotal.GreaterThan(FreeShippingThreshold) {
		s.Shipping = ShippingFee
	}

	code := strings.TrimSpace(promoCode)
	switch {
	case code == "":
	case strings.EqualFold(code, PromoCode):
		s.Discount = s.Subtotal.Mul(promoRate).Round(2)
		s.PromoApplied = true
	default:
		return Summary{}, domain.ErrInvalidPromoCode
	}

	s.Total = s.Subtotal.Add(s.Shipping).Sub(s.Discount)
	return s, nil
}
