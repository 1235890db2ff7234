package httpserver

import (
	"storefront/internal/domain"
	"storefront/internal/service/cart"
	"storefront/internal/service/shop"
	"github.com/shopspring/decimal"
)

type productView struct {
	domain.Product
	DiscountPercent *int64 `json:"discountPercent,omitempty"`
	InStock         bool   `json:"inStock"`
}

func toProductView(p domain.Product) productView {
	v := productView{Product: p, InStock: p.Stock > 0}
	if pct, ok := p.DiscountPercent(); ok {
		v.DiscountPercent = &pct
	}
	return v
}

func toProductViews(products []domain.Product) []productView {
	out := make([]productView, len(products))
	for i, p := range products {
		out[i] = toProductView(p)
	}
	return out
}

type cartLineView struct {
	domain.CartItem
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type cartView struct {
	Items []cartLineView  `json:"items"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

func toCartView(c *cart.Container) cartView {
	items := c.Items()
	lines := make([]cartLineView, len(items))
	for i, item := range items {
		lines[i] = cartLineView{CartItem: item, LineTotal: item.LineTotal()}
	}
	return cartView{Items: lines, Total: c.Total(), Count: c.Count()}
}

type wishlistView struct {
	IDs      []string      `json:"ids"`
	Products []productView `json:"products"`
	Count    int           `json:"count"`
}

type shopView struct {
	Products      []productView `json:"products"`
	Total         int           `json:"total"`
	Query         string        `json:"query"`
	ActiveFilters int           `json:"activeFilters"`
}

func toShopView(res shop.Result, spec shop.FilterSpec) shopView {
	return shopView{
		Products:      toProductViews(res.Products),
		Total:         res.Total,
		Query:         spec.Query().Encode(),
		ActiveFilters: spec.ActiveFilterCount(),
	}
}

type meView struct {
	Authenticated bool         `json:"authenticated"`
	User          *domain.User `json:"user"`
}
