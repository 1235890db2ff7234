package domain

import "github.com/shopspring/decimal"

// PricedSnapshot is a copy of a catalog product captured when it was added to a cart.
// Cart totals are computed from the snapshot, so later catalog price changes do not
// reprice lines that are already in the cart.
type PricedSnapshot struct {
	Product
}

// SnapshotOf captures p for use in a cart line.
func SnapshotOf(p Product) PricedSnapshot {
	return PricedSnapshot{Product: p.Clone()}
}

// CartItem is one cart line. Its identity is LineKey: product, color name and size.
type CartItem struct {
	Product       PricedSnapshot `json:"product"`
	Quantity      int            `json:"quantity"`
	SelectedColor Color          `json:"selectedColor"`
	SelectedSize  Size           `json:"selectedSize"`
}

type LineKey struct {
	ProductID string
	ColorName string
	Size      Size
}

func (i CartItem) Key() LineKey {
	return LineKey{ProductID: i.Product.ID, ColorName: i.SelectedColor.Name, Size: i.SelectedSize}
}

// LineTotal is the snapshot price multiplied by quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
