package shop

import (
	"net/url"
	"slices"
	"strings"

	"storefront/internal/domain"
	"github.com/shopspring/decimal"
)

type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
	SortRating    SortKey = "rating"
)

var SortKeys = []SortKey{SortNewest, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc, SortRating}

func ParseSortKey(s string) (SortKey, bool) {
	k := SortKey(s)
	return k, slices.Contains(SortKeys, k)
}

// Query parameter names shared with the shop page URL.
const (
	ParamCategory = "category"
	ParamSizes    = "sizes"
	ParamColors   = "colors"
	ParamMinPrice = "minPrice"
	ParamMaxPrice = "maxPrice"
	ParamSort     = "sort"
)

// PriceRange is inclusive on both ends.
type PriceRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

func DefaultPriceRange() PriceRange {
	return PriceRange{Min: decimal.Zero, Max: decimal.NewFromInt(200)}
}

// normalize clamps negative bounds to zero and swaps inverted bounds.
func (r PriceRange) normalize() PriceRange {
	if r.Min.IsNegative() {
		r.Min = decimal.Zero
	}
	if r.Max.IsNegative() {
		r.Max = decimal.Zero
	}
	if r.Min.GreaterThan(r.Max) {
		r.Min, r.Max = r.Max, r.Min
	}
	return r
}

func (r PriceRange) Contains(price decimal.Decimal) bool {
	return !price.LessThan(r.Min) && !price.GreaterThan(r.Max)
}

// FilterSpec is the shop page state. It lives only in the URL; every change is a new value.
// Sizes and Colors are sets kept in selection order.
type FilterSpec struct {
	Category string
	Sizes    []domain.Size
	Colors   []string
	Price    PriceRange
	Sort     SortKey
}

func DefaultSpec() FilterSpec {
	return FilterSpec{Price: DefaultPriceRange(), Sort: SortNewest}
}

// ParseQuery reads the recognised parameters from q. Missing or malformed values fall
// back to defaults; unknown sizes and empty or repeated list entries are dropped.
func ParseQuery(q url.Values) FilterSpec {
	spec := DefaultSpec()
	spec.Category = q.Get(ParamCategory)

	for _, raw := range splitList(q.Get(ParamSizes)) {
		if s, ok := domain.ParseSize(raw); ok && !slices.Contains(spec.Sizes, s) {
			spec.Sizes = append(spec.Sizes, s)
		}
	}
	for _, name := range splitList(q.Get(ParamColors)) {
		if !slices.Contains(spec.Colors, name) {
			spec.Colors = append(spec.Colors, name)
		}
	}

	if v, ok := parseBound(q.Get(ParamMinPrice)); ok {
		spec.Price.Min = v
	}
	if v, ok := parseBound(q.Get(ParamMaxPrice)); ok {
		spec.Price.Max = v
	}
	spec.Price = spec.Price.normalize()

	if k, ok := ParseSortKey(q.Get(ParamSort)); ok {
		spec.Sort = k
	}
	return spec
}

// Query serialises the spec. Category, sizes and colors are omitted when empty; price
// bounds and sort are always written.
func (f FilterSpec) Query() url.Values {
	q := url.Values{}
	if f.Category != "" {
		q.Set(ParamCategory, f.Category)
	}
	if len(f.Sizes) > 0 {
		parts := make([]string, len(f.Sizes))
		for i, s := range f.Sizes {
			parts[i] = string(s)
		}
		q.Set(ParamSizes, strings.Join(parts, ","))
	}
	if len(f.Colors) > 0 {
		q.Set(ParamColors, strings.Join(f.Colors, ","))
	}
	q.Set(ParamMinPrice, f.Price.Min.String())
	q.Set(ParamMaxPrice, f.Price.Max.String())
	q.Set(ParamSort, string(f.Sort))
	return q
}

// Equal compares specs treating Sizes and Colors as sets.
func (f FilterSpec) Equal(o FilterSpec) bool {
	return f.Category == o.Category &&
		sameSet(f.Sizes, o.Sizes) &&
		sameSet(f.Colors, o.Colors) &&
		f.Price.Min.Equal(o.Price.Min) &&
		f.Price.Max.Equal(o.Price.Max) &&
		f.Sort == o.Sort
}

// ToggleCategory selects id, or clears the category when id is already selected.
func (f FilterSpec) ToggleCategory(id string) FilterSpec {
	if f.Category == id {
		f.Category = ""
	} else {
		f.Category = id
	}
	return f
}

func (f FilterSpec) ToggleSize(s domain.Size) FilterSpec {
	f.Sizes = toggle(f.Sizes, s)
	return f
}

func (f FilterSpec) ToggleColor(name string) FilterSpec {
	f.Colors = toggle(f.Colors, name)
	return f
}

func (f FilterSpec) WithPriceRange(min, max decimal.Decimal) FilterSpec {
	f.Price = PriceRange{Min: min, Max: max}.normalize()
	return f
}

func (f FilterSpec) WithSort(k SortKey) FilterSpec {
	if _, ok := ParseSortKey(string(k)); ok {
		f.Sort = k
	}
	return f
}

func (f FilterSpec) Reset() FilterSpec {
	return DefaultSpec()
}

// ActiveFilterCount is the badge number on the filter button: one for a category, one
// per size and color, and one when the price range is narrower than the default.
func (f FilterSpec) ActiveFilterCount() int {
	n := len(f.Sizes) + len(f.Colors)
	if f.Category != "" {
		n++
	}
	def := DefaultPriceRange()
	if f.Price.Min.GreaterThan(def.Min) || f.Price.Max.LessThan(def.Max) {
		n++
	}
	return n
}

// Limits on price bounds read from the URL.
const (
	maxBoundLen      = 32
	maxBoundExponent = 9
)

var maxBound = decimal.NewFromInt(1_000_000_000)

// parseBound reads a price bound. Anything outside the accepted range is treated as
// malformed so the caller keeps the default.
func parseBound(raw string) (decimal.Decimal, bool) {
	if raw == "" || len(raw) > maxBoundLen {
		return decimal.Decimal{}, false
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if exp := v.Exponent(); exp > maxBoundExponent || exp < -maxBoundExponent {
		return decimal.Decimal{}, false
	}
	if v.Abs().GreaterThan(maxBound) {
		return decimal.Decimal{}, false
	}
	return v, true
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func toggle[T comparable](set []T, v T) []T {
	if idx := slices.Index(set, v); idx >= 0 {
		return slices.Delete(slices.Clone(set), idx, idx+1)
	}
	return append(slices.Clone(set), v)
}

func sameSet[T comparable](a, b []T) bool {
	for _, v := range a {
		if !slices.Contains(b, v) {
			return false
		}
	}
	for _, v := range b {
		if !slices.Contains(a, v) {
			return false
		}
	}
	return true
}
