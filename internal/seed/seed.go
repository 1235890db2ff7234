package seed

import (
	"context"
	"fmt"

	"storefront/internal/catalog"
	"storefront/internal/domain"
)

// CatalogWriter is the write side of catalog.Postgres.
type CatalogWriter interface {
	UpsertProduct(ctx context.Context, p domain.Product, position int) error
	UpsertCategory(ctx context.Context, c domain.Category, position int) error
	UpsertCollection(ctx context.Context, c domain.Collection, position int) error
}

// Counts reports how many records Apply wrote.
type Counts struct {
	Categories  int
	Products    int
	Collections int
}

// Apply copies every record from src into dst, preserving list order as position.
// It is idempotent because every write is an upsert.
func Apply(ctx context.Context, src catalog.Provider, dst CatalogWriter) (Counts, error) {
	var counts Counts

	categories, err := src.ListCategories(ctx)
	if err != nil {
		return counts, fmt.Errorf("list categories: %w", err)
	}
	for i, c := range categories {
		if err := dst.UpsertCategory(ctx, c, i); err != nil {
			return counts, fmt.Errorf("upsert category %s: %w", c.ID, err)
		}
		counts.Categories++
	}

	products, err := src.ListProducts(ctx)
	if err != nil {
		return counts, fmt.Errorf("list products: %w", err)
	}
	for i, p := range products {
		if err := dst.UpsertProduct(ctx, p, i); err != nil {
			return counts, fmt.Errorf("upsert product %s: %w", p.ID, err)
		}
		counts.Products++
	}

	collections, err := src.ListCollections(ctx)
	if err != nil {
		return counts, fmt.Errorf("list collections: %w", err)
	}
	for i, c := range collections {
		if err := dst.UpsertCollection(ctx, c, i); err != nil {
			return counts, fmt.Errorf("upsert collection %s: %w", c.ID, err)
		}
		counts.Collections++
	}

	return counts, nil
}
