package shop

import (
	"cmp"
	"context"
	"io"
	"log"
	"net/url"
	"slices"
	"strconv"

	"storefront/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Result is a filtered, sorted page of products. Total drives the "N products" label.
type Result struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
}

// Apply filters products by category, sizes, colors and price, then sorts them stably
// by spec.Sort. The input slice is not modified.
func Apply(products []domain.Product, spec FilterSpec) Result {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if spec.Category != "" && p.Category != spec.Category {
			continue
		}
		if len(spec.Sizes) > 0 && !p.HasSize(spec.Sizes...) {
			continue
		}
		if len(spec.Colors) > 0 && !p.HasColor(spec.Colors...) {
			continue
		}
		if !spec.Price.Contains(p.Price) {
			continue
		}
		out = append(out, p)
	}

	slices.SortStableFunc(out, comparator(spec.Sort))
	return Result{Products: out, Total: len(out)}
}

func comparator(k SortKey) func(a, b domain.Product) int {
	switch k {
	case SortPriceAsc:
		return func(a, b domain.Product) int { return a.Price.Cmp(b.Price) }
	case SortPriceDesc:
		return func(a, b domain.Product) int { return b.Price.Cmp(a.Price) }
	case SortNameAsc:
		col := collate.New(language.English)
		return func(a, b domain.Product) int { return col.CompareString(a.Name, b.Name) }
	case SortNameDesc:
		col := collate.New(language.English)
		return func(a, b domain.Product) int { return col.CompareString(b.Name, a.Name) }
	case SortRating:
		return func(a, b domain.Product) int { return cmp.Compare(b.Rating, a.Rating) }
	default:
		return compareNewest
	}
}

// compareNewest orders numeric ids descending. Non-numeric ids go last in catalog order.
func compareNewest(a, b domain.Product) int {
	ai, aErr := strconv.ParseInt(a.ID, 10, 64)
	bi, bErr := strconv.ParseInt(b.ID, 10, 64)
	switch {
	case aErr == nil && bErr == nil:
		return cmp.Compare(bi, ai)
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	default:
		return 0
	}
}

type productLister interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// Engine runs shop page queries against the catalog.
type Engine struct {
	catalog productLister
	logger  *log.Logger
}

func NewEngine(catalog productLister, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Engine{catalog: catalog, logger: logger}
}

// Search parses q, applies it to the catalog and returns the result with the spec that
// was applied. spec.Query() is the canonical form of q.
func (e *Engine) Search(ctx context.Context, q url.Values) (Result, FilterSpec, error) {
	spec := ParseQuery(q)
	products, err := e.catalog.ListProducts(ctx)
	if err != nil {
		e.logger.Printf("shop: list products error=%v", err)
		return Result{}, spec, err
	}
	res := Apply(products, spec)
	e.logger.Printf("shop: search query=%q total=%d", spec.Query().Encode(), res.Total)
	return res, spec, nil
}
