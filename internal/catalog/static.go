package catalog

import (
	"context"

	"storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// Static serves a fixed data set held in memory.
type Static struct {
	products    []domain.Product
	categories  []domain.Category
	collections []domain.Collection
}

// NewStatic builds a provider over the given records. Nil slices are served as empty.
func NewStatic(products []domain.Product, categories []domain.Category, collections []domain.Collection) *Static {
	return &Static{products: products, categories: categories, collections: collections}
}

// Default returns the storefront's built-in catalog.
func Default() *Static {
	return NewStatic(defaultProducts(), defaultCategories(), defaultCollections())
}

func (s *Static) ListProducts(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (s *Static) ListCategories(_ context.Context) ([]domain.Category, error) {
	return append([]domain.Category{}, s.categories...), nil
}

func (s *Static) ListCollections(_ context.Context) ([]domain.Collection, error) {
	out := make([]domain.Collection, 0, len(s.collections))
	for _, c := range s.collections {
		c.Products = append([]string(nil), c.Products...)
		out = append(out, c)
	}
	return out, nil
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func pricePtr(s string) *decimal.Decimal {
	d := price(s)
	return &d
}

var (
	black = domain.Color{Name: "Black", Value: "#000000"}
	white = domain.Color{Name: "White", Value: "#FFFFFF"}
	navy  = domain.Color{Name: "Navy", Value: "#1F2A44"}
	beige = domain.Color{Name: "Beige", Value: "#E8DCC4"}
	olive = domain.Color{Name: "Olive", Value: "#6B6B3A"}
	brown = domain.Color{Name: "Brown", Value: "#6F4E37"}
	red   = domain.Color{Name: "Red", Value: "#B22222"}
	gray  = domain.Color{Name: "Gray", Value: "#9CA3AF"}
)

func defaultCategories() []domain.Category {
	return []domain.Category{
		{ID: "women", Name: "Women", Image: "https://images.pexels.com/photos/1462637/pexels-photo-1462637.jpeg", Description: "Elevated essentials and statement pieces"},
		{ID: "men", Name: "Men", Image: "https://images.pexels.com/photos/1342609/pexels-photo-1342609.jpeg", Description: "Modern tailoring and everyday staples"},
		{ID: "accessories", Name: "Accessories", Image: "https://images.pexels.com/photos/1152077/pexels-photo-1152077.jpeg", Description: "Bags, belts and finishing touches"},
		{ID: "footwear", Name: "Footwear", Image: "https://images.pexels.com/photos/1598505/pexels-photo-1598505.jpeg", Description: "Sneakers, boots and loafers"},
	}
}

func defaultCollections() []domain.Collection {
	return []domain.Collection{
		{ID: "summer-essentials", Name: "Summer Essentials", Description: "Lightweight layers for warm days", Image: "https://images.pexels.com/photos/1488463/pexels-photo-1488463.jpeg", Products: []string{"1", "4", "7"}},
		{ID: "evening-edit", Name: "The Evening Edit", Description: "Pieces made for after dark", Image: "https://images.pexels.com/photos/1755428/pexels-photo-1755428.jpeg", Products: []string{"2", "5", "8", "10"}},
	}
}

func defaultProducts() []domain.Product {
	return []domain.Product{
		{
			ID: "1", Name: "Linen Relaxed Shirt", Price: price("69.99"), OriginalPrice: pricePtr("89.99"),
			Description: "Breathable linen shirt with a relaxed fit and mother-of-pearl buttons.",
			Images:      []string{"https://images.pexels.com/photos/297933/pexels-photo-297933.jpeg"},
			Category:    "men", Tags: []string{"linen", "summer", "shirt"},
			Colors: []domain.Color{white, beige, navy}, Sizes: []domain.Size{domain.SizeS, domain.SizeM, domain.SizeL, domain.SizeXL},
			Featured: true, Stock: 42, Rating: 4.5, Reviews: 128,
		},
		{
			ID: "2", Name: "Silk Slip Dress", Price: price("149.99"),
			Description: "Bias-cut silk dress with adjustable straps.",
			Images:      []string{"https://images.pexels.com/photos/1755428/pexels-photo-1755428.jpeg"},
			Category:    "women", Tags: []string{"silk", "dress", "evening"},
			Colors: []domain.Color{black, red}, Sizes: []domain.Size{domain.SizeXS, domain.SizeS, domain.SizeM, domain.SizeL},
			Featured: true, BestSeller: true, Stock: 18, Rating: 4.8, Reviews: 96,
		},
		{
			ID: "3", Name: "Leather Crossbody Bag", Price: price("119.00"),
			Description: "Full-grain leather bag with an adjustable strap.",
			Images:      []string{"https://images.pexels.com/photos/1152077/pexels-photo-1152077.jpeg"},
			Category:    "accessories", Tags: []string{"leather", "bag"},
			Colors: []domain.Color{brown, black}, Sizes: []domain.Size{domain.SizeM},
			BestSeller: true, Stock: 25, Rating: 4.6, Reviews: 64,
		},
		{
			ID: "4", Name: "Cotton Crew Tee", Price: price("29.99"),
			Description: "Heavyweight organic cotton t-shirt.",
			Images:      []string{"https://images.pexels.com/photos/1656684/pexels-photo-1656684.jpeg"},
			Category:    "men", Tags: []string{"cotton", "basics"},
			Colors: []domain.Color{white, black, gray, olive}, Sizes: []domain.Size{domain.SizeXS, domain.SizeS, domain.SizeM, domain.SizeL, domain.SizeXL, domain.SizeXXL},
			BestSeller: true, Stock: 120, Rating: 4.3, Reviews: 310,
		},
		{
			ID: "5", Name: "Tailored Wool Blazer", Price: price("189.99"), OriginalPrice: pricePtr("249.99"),
			Description: "Single-breasted blazer in Italian wool.",
			Images:      []string{"https://images.pexels.com/photos/1342609/pexels-photo-1342609.jpeg"},
			Category:    "men", Tags: []string{"wool", "tailoring"},
			Colors: []domain.Color{navy, gray}, Sizes: []domain.Size{domain.SizeM, domain.SizeL, domain.SizeXL},
			Featured: true, Stock: 9, Rating: 4.7, Reviews: 41,
		},
		{
			ID: "6", Name: "Suede Chelsea Boots", Price: price("159.99"),
			Description: "Suede boots with elastic side panels and a crepe sole.",
			Images:      []string{"https://images.pexels.com/photos/1598505/pexels-photo-1598505.jpeg"},
			Category:    "footwear", Tags: []string{"suede", "boots"},
			Colors: []domain.Color{brown, black}, Sizes: []domain.Size{domain.SizeS, domain.SizeM, domain.SizeL, domain.SizeXL},
			NewArrival: true, Stock: 14, Rating: 4.4, Reviews: 27,
		},
		{
			ID: "7", Name: "Wide-Leg Linen Trousers", Price: price("79.99"),
			Description: "High-rise linen trousers with a fluid wide leg.",
			Images:      []string{"https://images.pexels.com/photos/1488463/pexels-photo-1488463.jpeg"},
			Category:    "women", Tags: []string{"linen", "summer", "trousers"},
			Colors: []domain.Color{beige, white, olive}, Sizes: []domain.Size{domain.SizeXS, domain.SizeS, domain.SizeM, domain.SizeL},
			NewArrival: true, Stock: 33, Rating: 4.2, Reviews: 19,
		},
		{
			ID: "8", Name: "Cashmere Wrap Scarf", Price: price("99.00"), OriginalPrice: pricePtr("129.00"),
			Description: "Oversized scarf knitted from Mongolian cashmere.",
			Images:      []string{"https://images.pexels.com/photos/1311590/pexels-photo-1311590.jpeg"},
			Category:    "accessories", Tags: []string{"cashmere", "winter"},
			Colors: []domain.Color{gray, beige, red}, Sizes: []domain.Size{domain.SizeM},
			Featured: true, NewArrival: true, Stock: 30, Rating: 4.9, Reviews: 52,
		},
		{
			ID: "9", Name: "Minimal Leather Sneakers", Price: price("129.99"),
			Description: "Low-top sneakers in smooth calf leather.",
			Images:      []string{"https://images.pexels.com/photos/2529148/pexels-photo-2529148.jpeg"},
			Category:    "footwear", Tags: []string{"leather", "sneakers"},
			Colors: []domain.Color{white, black}, Sizes: []domain.Size{domain.SizeS, domain.SizeM, domain.SizeL, domain.SizeXL, domain.SizeXXL},
			BestSeller: true, NewArrival: true, Stock: 0, Rating: 4.6, Reviews: 204,
		},
		{
			ID: "10", Name: "Pleated Midi Skirt", Price: price("89.99"),
			Description: "Sunray-pleated satin skirt that falls below the knee.",
			Images:      []string{"https://images.pexels.com/photos/1381556/pexels-photo-1381556.jpeg"},
			Category:    "women", Tags: []string{"satin", "skirt", "evening"},
			Colors: []domain.Color{black, navy}, Sizes: []domain.Size{domain.SizeXS, domain.SizeS, domain.SizeM},
			Featured: true, Stock: 21, Rating: 4.1, Reviews: 12,
		},
	}
}
