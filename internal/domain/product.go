package domain

import (
	"github.com/shopspring/decimal"
)

// Size is one of the fixed apparel sizes offered by the storefront.
type Size string

const (
	SizeXS  Size = "XS"
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

// Sizes lists every valid size in display order.
var Sizes = []Size{SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL}

// ParseSize returns the Size matching s exactly.
func ParseSize(s string) (Size, bool) {
	for _, size := range Sizes {
		if string(size) == s {
			return size, true
		}
	}
	return "", false
}

// Valid reports whether s is one of the enumerated sizes.
func (s Size) Valid() bool {
	_, ok := ParseSize(string(s))
	return ok
}

type Color struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Product is an immutable catalog record.
type Product struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Description   string           `json:"description"`
	Images        []string         `json:"images"`
	Category      string           `json:"category"`
	Tags          []string         `json:"tags"`
	Colors        []Color          `json:"colors"`
	Sizes         []Size           `json:"sizes"`
	Featured      bool             `json:"featured,omitempty"`
	NewArrival    bool             `json:"newArrival,omitempty"`
	BestSeller    bool             `json:"bestSeller,omitempty"`
	Stock         int              `json:"stock"`
	Rating        float64          `json:"rating"`
	Reviews       int              `json:"reviews"`
}

// DiscountPercent returns the rounded markdown from OriginalPrice to Price.
// ok is false when the product is not on sale.
func (p Product) DiscountPercent() (percent int64, ok bool) {
	if p.OriginalPrice == nil || !p.OriginalPrice.GreaterThan(p.Price) {
		return 0, false
	}
	orig := *p.OriginalPrice
	pct := orig.Sub(p.Price).Div(orig).Mul(decimal.NewFromInt(100)).Round(0)
	return pct.IntPart(), true
}

// HasSize reports whether the product is offered in any of sizes.
func (p Product) HasSize(sizes ...Size) bool {
	for _, offered := range p.Sizes {
		for _, want := range sizes {
			if offered == want {
				return true
			}
		}
	}
	return false
}

// HasColor reports whether the product is offered in any of the named colors.
func (p Product) HasColor(names ...string) bool {
	for _, offered := range p.Colors {
		for _, want := range names {
			if offered.Name == want {
				return true
			}
		}
	}
	return false
}

// Clone returns a deep copy so callers can hand products out without sharing slices.
func (p Product) Clone() Product {
	out := p
	if p.OriginalPrice != nil {
		orig := *p.OriginalPrice
		out.OriginalPrice = &orig
	}
	out.Images = append([]string(nil), p.Images...)
	out.Tags = append([]string(nil), p.Tags...)
	out.Colors = append([]Color(nil), p.Colors...)
	out.Sizes = append([]Size(nil), p.Sizes...)
	return out
}
