package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"storefront/internal/domain"
	"github.com/shopspring/decimal"
)

type ProductWriter interface {
	UpsertProduct(ctx context.Context, p domain.Product, position int) error
}

type CategoryWriter interface {
	UpsertCategory(ctx context.Context, c domain.Category, position int) error
}

// Kind identifies which catalog entity a CSV file carries.
type Kind string

const (
	KindProducts   Kind = "products"
	KindCategories Kind = "categories"
)

// DetectKind inspects the header row. Product files carry a price column.
func DetectKind(r io.Reader) (Kind, error) {
	headers, err := csv.NewReader(r).Read()
	if err != nil {
		return "", fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["price"]; ok {
		return KindProducts, nil
	}
	if _, ok := index["name"]; ok {
		return KindCategories, nil
	}
	return "", fmt.Errorf("unrecognised csv headers: %s", strings.Join(headers, ","))
}

// CSVImporter reads storefront CSV exports and upserts products or categories.
type CSVImporter struct {
	reader     *csv.Reader
	products   ProductWriter
	categories CategoryWriter
}

func NewCSVImporter(r io.Reader, products ProductWriter, categories CategoryWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:     csvr,
		products:   products,
		categories: categories,
	}
}

// Run parses the file and upserts its rows, returning how many records were written.
// Product files may use continuation rows (empty id, image set) to add images.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	if _, ok := index["price"]; ok {
		if i.products == nil {
			return 0, errors.New("product writer not configured")
		}
		return i.runProducts(ctx, index)
	}
	if i.categories == nil {
		return 0, errors.New("category writer not configured")
	}
	return i.runCategories(ctx, index)
}

func (i *CSVImporter) runProducts(ctx context.Context, index map[string]int) (int, error) {
	var (
		current  *domain.Product
		imported int
		line     = 1
	)

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		id := pick(record, index, "id")
		image := pick(record, index, "image")
		if id == "" {
			// Continuation rows (images) belong to the current product.
			if current != nil && image != "" {
				current.Images = append(current.Images, image)
			}
			continue
		}

		if current != nil {
			if err := i.saveProduct(ctx, current, imported); err != nil {
				return imported, err
			}
			imported++
		}
		p, err := parseProduct(record, index)
		if err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		current = p
	}

	if current != nil {
		if err := i.saveProduct(ctx, current, imported); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

func (i *CSVImporter) saveProduct(ctx context.Context, p *domain.Product, position int) error {
	if p.Name == "" || p.Category == "" {
		return fmt.Errorf("invalid product row (missing required fields) for id %q", p.ID)
	}
	if len(p.Images) == 0 {
		return fmt.Errorf("product %q has no images", p.ID)
	}
	if err := i.products.UpsertProduct(ctx, *p, position); err != nil {
		return fmt.Errorf("upsert product %q: %w", p.ID, err)
	}
	return nil
}

func (i *CSVImporter) runCategories(ctx context.Context, index map[string]int) (int, error) {
	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		c := domain.Category{
			ID:          pick(record, index, "id"),
			Name:        pick(record, index, "name"),
			Image:       pick(record, index, "image"),
			Description: pick(record, index, "description"),
		}
		if c.ID == "" && c.Name == "" {
			continue
		}
		if c.ID == "" {
			c.ID = slugify(c.Name)
		}
		if c.Name == "" {
			return imported, fmt.Errorf("category %q has no name", c.ID)
		}
		if err := i.categories.UpsertCategory(ctx, c, imported); err != nil {
			return imported, fmt.Errorf("upsert category %q: %w", c.ID, err)
		}
		imported++
	}
	return imported, nil
}

func parseProduct(record []string, index map[string]int) (*domain.Product, error) {
	p := &domain.Product{
		ID:          pick(record, index, "id"),
		Name:        pick(record, index, "name"),
		Description: pick(record, index, "description"),
		Category:    pick(record, index, "category"),
		Tags:        splitList(pick(record, index, "tags")),
		Featured:    parseBool(pick(record, index, "featured")),
		NewArrival:  parseBool(pick(record, index, "newArrival")),
		BestSeller:  parseBool(pick(record, index, "bestSeller")),
	}
	if image := pick(record, index, "image"); image != "" {
		p.Images = []string{image}
	}

	price, err := decimal.NewFromString(pick(record, index, "price"))
	if err != nil {
		return nil, fmt.Errorf("product %q price: %w", p.ID, err)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("product %q price must not be negative", p.ID)
	}
	p.Price = price

	if raw := pick(record, index, "originalPrice"); raw != "" {
		op, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("product %q originalPrice: %w", p.ID, err)
		}
		p.OriginalPrice = &op
	}

	for _, raw := range splitList(pick(record, index, "sizes")) {
		s, ok := domain.ParseSize(raw)
		if !ok {
			return nil, fmt.Errorf("product %q has unknown size %q", p.ID, raw)
		}
		p.Sizes = append(p.Sizes, s)
	}

	for _, raw := range splitList(pick(record, index, "colors")) {
		name, value, _ := strings.Cut(raw, ":")
		p.Colors = append(p.Colors, domain.Color{Name: strings.TrimSpace(name), Value: strings.TrimSpace(value)})
	}

	if p.Stock, err = parseInt(pick(record, index, "stock")); err != nil {
		return nil, fmt.Errorf("product %q stock: %w", p.ID, err)
	}
	if p.Reviews, err = parseInt(pick(record, index, "reviews")); err != nil {
		return nil, fmt.Errorf("product %q reviews: %w", p.ID, err)
	}
	if raw := pick(record, index, "rating"); raw != "" {
		if p.Rating, err = strconv.ParseFloat(raw, 64); err != nil {
			return nil, fmt.Errorf("product %q rating: %w", p.ID, err)
		}
	}
	return p, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

// splitList splits a semicolon separated cell, dropping empty entries.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseBool(raw string) bool {
	b, _ := strconv.ParseBool(raw)
	return b
}

func parseInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
