package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Postgres reads the catalog tables created by internal/migrate. Rows are returned in
// position order, which the seed and importer assign from their input order.
type Postgres struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) *Postgres {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Postgres{pool: pool, logger: logger}
}

func (r *Postgres) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT id, name, price::text, original_price::text, description, images, category_id, tags, colors, sizes,
       featured, new_arrival, best_seller, stock, rating, reviews
FROM products
ORDER BY position ASC, id ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("catalog repo: list products error=%v", err)
		return nil, err
	}
	defer rows.Close()

	result := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Printf("catalog repo: scan product error=%v", err)
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("catalog repo: list products rows error=%v", err)
		return nil, err
	}
	r.logger.Printf("catalog repo: list products count=%d", len(result))
	return result, nil
}

func (r *Postgres) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const q = `
SELECT id, name, image, description
FROM categories
ORDER BY position ASC, id ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Image, &c.Description); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Postgres) ListCollections(ctx context.Context) ([]domain.Collection, error) {
	const q = `
SELECT id, name, description, image, products
FROM collections
ORDER BY position ASC, id ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Collection{}
	for rows.Next() {
		var c domain.Collection
		var productsJSON []byte
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Image, &productsJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(productsJSON, &c.Products); err != nil {
			return nil, fmt.Errorf("decode collection %s products: %w", c.ID, err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpsertProduct inserts or replaces a product keyed by id.
func (r *Postgres) UpsertProduct(ctx context.Context, p domain.Product, position int) error {
	const q = `
INSERT INTO products (id, name, price, original_price, description, images, category_id, tags, colors, sizes,
                      featured, new_arrival, best_seller, stock, rating, reviews, position)
VALUES ($1, $2, $3::numeric, $4::numeric, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    price = EXCLUDED.price,
    original_price = EXCLUDED.original_price,
    description = EXCLUDED.description,
    images = EXCLUDED.images,
    category_id = EXCLUDED.category_id,
    tags = EXCLUDED.tags,
    colors = EXCLUDED.colors,
    sizes = EXCLUDED.sizes,
    featured = EXCLUDED.featured,
    new_arrival = EXCLUDED.new_arrival,
    best_seller = EXCLUDED.best_seller,
    stock = EXCLUDED.stock,
    rating = EXCLUDED.rating,
    reviews = EXCLUDED.reviews,
    position = EXCLUDED.position
`
	var original *string
	if p.OriginalPrice != nil {
		s := p.OriginalPrice.String()
		original = &s
	}
	images, tags, colors, sizes, err := encodeProductLists(p)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, q,
		p.ID,
		p.Name,
		p.Price.String(),
		original,
		p.Description,
		images,
		p.Category,
		tags,
		colors,
		sizes,
		p.Featured,
		p.NewArrival,
		p.BestSeller,
		p.Stock,
		p.Rating,
		p.Reviews,
		position,
	)
	if err != nil {
		r.logger.Printf("catalog repo: upsert product id=%s error=%v", p.ID, err)
		return err
	}
	r.logger.Printf("catalog repo: upserted product id=%s", p.ID)
	return nil
}

func (r *Postgres) UpsertCategory(ctx context.Context, c domain.Category, position int) error {
	const q = `
INSERT INTO categories (id, name, image, description, position)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    image = EXCLUDED.image,
    description = EXCLUDED.description,
    position = EXCLUDED.position
`
	_, err := r.pool.Exec(ctx, q, c.ID, c.Name, c.Image, c.Description, position)
	return err
}

func (r *Postgres) UpsertCollection(ctx context.Context, c domain.Collection, position int) error {
	const q = `
INSERT INTO collections (id, name, description, image, products, position)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    image = EXCLUDED.image,
    products = EXCLUDED.products,
    position = EXCLUDED.position
`
	ids := c.Products
	if ids == nil {
		ids = []string{}
	}
	productsJSON, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, q, c.ID, c.Name, c.Description, c.Image, productsJSON, position)
	return err
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p                                       domain.Product
		priceText                               string
		originalText                            *string
		imagesJSON, tagsJSON, colorsJSON, sizes []byte
	)
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&priceText,
		&originalText,
		&p.Description,
		&imagesJSON,
		&p.Category,
		&tagsJSON,
		&colorsJSON,
		&sizes,
		&p.Featured,
		&p.NewArrival,
		&p.BestSeller,
		&p.Stock,
		&p.Rating,
		&p.Reviews,
	); err != nil {
		return domain.Product{}, err
	}

	price, err := decimal.NewFromString(priceText)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %s price: %w", p.ID, err)
	}
	p.Price = price
	if originalText != nil {
		orig, err := decimal.NewFromString(*originalText)
		if err != nil {
			return domain.Product{}, fmt.Errorf("product %s original price: %w", p.ID, err)
		}
		p.OriginalPrice = &orig
	}

	if err := json.Unmarshal(imagesJSON, &p.Images); err != nil {
		return domain.Product{}, fmt.Errorf("product %s images: %w", p.ID, err)
	}
	if err := json.Unmarshal(tagsJSON, &p.Tags); err != nil {
		return domain.Product{}, fmt.Errorf("product %s tags: %w", p.ID, err)
	}
	if err := json.Unmarshal(colorsJSON, &p.Colors); err != nil {
		return domain.Product{}, fmt.Errorf("product %s colors: %w", p.ID, err)
	}
	if err := json.Unmarshal(sizes, &p.Sizes); err != nil {
		return domain.Product{}, fmt.Errorf("product %s sizes: %w", p.ID, err)
	}
	return p, nil
}

func encodeProductLists(p domain.Product) (images, tags, colors, sizes []byte, err error) {
	if images, err = json.Marshal(nonNil(p.Images)); err != nil {
		return
	}
	if tags, err = json.Marshal(nonNil(p.Tags)); err != nil {
		return
	}
	if colors, err = json.Marshal(nonNil(p.Colors)); err != nil {
		return
	}
	sizes, err = json.Marshal(nonNil(p.Sizes))
	return
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
