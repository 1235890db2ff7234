package catalog

import (
	"storefront/internal/domain"
)

// RelatedLimit is how many related products a product page shows.
const RelatedLimit = 4

// fallbackColorValue is used for a color name no product carries.
const fallbackColorValue = "#CCCCCC"

// FindProduct returns the product with id, or domain.ErrNotFound.
func FindProduct(products []domain.Product, id string) (domain.Product, error) {
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrNotFound
}

// Related returns up to limit other products from p's category, in catalog order.
func Related(products []domain.Product, p domain.Product, limit int) []domain.Product {
	out := []domain.Product{}
	for _, candidate := range products {
		if len(out) >= limit {
			break
		}
		if candidate.Category == p.Category && candidate.ID != p.ID {
			out = append(out, candidate)
		}
	}
	return out
}

func Featured(products []domain.Product) []domain.Product {
	return where(products, func(p domain.Product) bool { return p.Featured })
}

func NewArrivals(products []domain.Product) []domain.Product {
	return where(products, func(p domain.Product) bool { return p.NewArrival })
}

func BestSellers(products []domain.Product) []domain.Product {
	return where(products, func(p domain.Product) bool { return p.BestSeller })
}

// AvailableSizes lists every size offered by any product, in first-seen order.
func AvailableSizes(products []domain.Product) []domain.Size {
	seen := make(map[domain.Size]struct{})
	out := []domain.Size{}
	for _, p := range products {
		for _, s := range p.Sizes {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// AvailableColors lists every color name offered by any product, in first-seen order.
func AvailableColors(products []domain.Product) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, p := range products {
		for _, c := range p.Colors {
			if _, ok := seen[c.Name]; ok {
				continue
			}
			seen[c.Name] = struct{}{}
			out = append(out, c.Name)
		}
	}
	return out
}

// ColorByName resolves a color name to the first product color carrying it.
func ColorByName(products []domain.Product, name string) domain.Color {
	for _, p := range products {
		for _, c := range p.Colors {
			if c.Name == name {
				return c
			}
		}
	}
	return domain.Color{Name: name, Value: fallbackColorValue}
}

// CollectionProducts resolves a collection's ids in collection order, skipping ids the
// catalog does not carry.
func CollectionProducts(c domain.Collection, products []domain.Product) []domain.Product {
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	out := []domain.Product{}
	for _, id := range c.Products {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// FindCollection returns the collection with id, or domain.ErrNotFound.
func FindCollection(collections []domain.Collection, id string) (domain.Collection, error) {
	for _, c := range collections {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Collection{}, domain.ErrNotFound
}

func where(products []domain.Product, keep func(domain.Product) bool) []domain.Product {
	out := []domain.Product{}
	for _, p := range products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
