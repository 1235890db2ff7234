// Package catalog supplies the read-only product, category and collection records the
// storefront is built on.
package catalog

import (
	"context"

	"storefront/internal/domain"
)

// Provider lists catalog records. Implementations return slices the caller may modify.
type Provider interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListCollections(ctx context.Context) ([]domain.Collection, error)
}
