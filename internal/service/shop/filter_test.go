package shop

import (
	"net/url"
	"testing"

	"storefront/internal/domain"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestParseQuery_Defaults(t *testing.T) {
	spec := ParseQuery(url.Values{})
	if !spec.Equal(DefaultSpec()) {
		t.Fatalf("expected default spec, got %+v", spec)
	}
	if !spec.Price.Min.IsZero() || !spec.Price.Max.Equal(dec("200")) || spec.Sort != SortNewest {
		t.Fatalf("unexpected defaults %+v", spec)
	}
	if spec.ActiveFilterCount() != 0 {
		t.Fatalf("default spec has no active filters")
	}
}

func TestParseQuery_ReadsAllParams(t *testing.T) {
	q, _ := url.ParseQuery("category=women&sizes=S,M&colors=Black,Navy&minPrice=20&maxPrice=150.5&sort=price-desc")
	spec := ParseQuery(q)

	if spec.Category != "women" || spec.Sort != SortPriceDesc {
		t.Fatalf("unexpected spec %+v", spec)
	}
	if len(spec.Sizes) != 2 || spec.Sizes[0] != domain.SizeS || spec.Sizes[1] != domain.SizeM {
		t.Fatalf("unexpected sizes %v", spec.Sizes)
	}
	if len(spec.Colors) != 2 || spec.Colors[1] != "Navy" {
		t.Fatalf("unexpected colors %v", spec.Colors)
	}
	if !spec.Price.Min.Equal(dec("20")) || !spec.Price.Max.Equal(dec("150.5")) {
		t.Fatalf("unexpected price %+v", spec.Price)
	}
	if spec.ActiveFilterCount() != 6 {
		t.Fatalf("expected 6 active filters, got %d", spec.ActiveFilterCount())
	}
}

func TestParseQuery_Sanitises(t *testing.T) {
	q, _ := url.ParseQuery("sizes=M,,XXXL,M&colors=,Red,Red&minPrice=180&maxPrice=-5&sort=popular")
	spec := ParseQuery(q)

	if len(spec.Sizes) != 1 || spec.Sizes[0] != domain.SizeM {
		t.Fatalf("expected only M, got %v", spec.Sizes)
	}
	if len(spec.Colors) != 1 || spec.Colors[0] != "Red" {
		t.Fatalf("expected only Red, got %v", spec.Colors)
	}
	if !spec.Price.Min.IsZero() || !spec.Price.Max.Equal(dec("180")) {
		t.Fatalf("expected clamped and swapped range, got %+v", spec.Price)
	}
	if spec.Sort != SortNewest {
		t.Fatalf("unknown sort must fall back to newest, got %s", spec.Sort)
	}

	bad := ParseQuery(url.Values{ParamMinPrice: {"cheap"}, ParamMaxPrice: {""}})
	if !bad.Price.Min.IsZero() || !bad.Price.Max.Equal(dec("200")) {
		t.Fatalf("malformed bounds must fall back to defaults, got %+v", bad.Price)
	}
}

func TestParseQuery_RejectsOversizedBounds(t *testing.T) {
	for _, raw := range []string{
		"1e50000000",
		"1e-50000000",
		"-1e50000000",
		"1e10",
		"1000000001",
		"123456789012345678901234567890123",
	} {
		spec := ParseQuery(url.Values{ParamMinPrice: {raw}, ParamMaxPrice: {raw}})
		if !spec.Price.Min.IsZero() || !spec.Price.Max.Equal(dec("200")) {
			t.Fatalf("bound %q must fall back to defaults, got %+v", raw, spec.Price)
		}
		q := spec.Query()
		if q.Get(ParamMinPrice) != "0" || q.Get(ParamMaxPrice) != "200" {
			t.Fatalf("bound %q leaked into the canonical query: %v", raw, q)
		}
	}

	spec := ParseQuery(url.Values{ParamMinPrice: {"1e2"}, ParamMaxPrice: {"1000000000"}})
	if !spec.Price.Min.Equal(dec("100")) || !spec.Price.Max.Equal(dec("1000000000")) {
		t.Fatalf("in-range bounds must be kept, got %+v", spec.Price)
	}
}

func TestQuery_RoundTrip(t *testing.T) {
	categories := []string{"", "men", "accessories"}
	sizeSets := [][]domain.Size{nil, {domain.SizeXS}, {domain.SizeXXL, domain.SizeS, domain.SizeM}}
	colorSets := [][]string{nil, {"Black"}, {"Navy", "Light Blue", "Red"}}
	ranges := []PriceRange{DefaultPriceRange(), {Min: dec("0"), Max: dec("0")}, {Min: dec("12.5"), Max: dec("99.99")}, {Min: dec("150"), Max: dec("500")}}

	for _, cat := range categories {
		for _, sizes := range sizeSets {
			for _, colors := range colorSets {
				for _, pr := range ranges {
					for _, sort := range SortKeys {
						spec := FilterSpec{Category: cat, Sizes: sizes, Colors: colors, Price: pr, Sort: sort}
						encoded := spec.Query().Encode()
						q, err := url.ParseQuery(encoded)
						if err != nil {
							t.Fatalf("parse %q: %v", encoded, err)
						}
						if got := ParseQuery(q); !got.Equal(spec) {
							t.Fatalf("round trip mismatch for %q: got %+v want %+v", encoded, got, spec)
						}
					}
				}
			}
		}
	}
}

func TestQuery_AlwaysWritesPriceAndSort(t *testing.T) {
	q := DefaultSpec().Query()
	if q.Get(ParamMinPrice) != "0" || q.Get(ParamMaxPrice) != "200" || q.Get(ParamSort) != "newest" {
		t.Fatalf("unexpected default query %v", q)
	}
	if q.Has(ParamCategory) || q.Has(ParamSizes) || q.Has(ParamColors) {
		t.Fatalf("empty filters must be omitted, got %v", q)
	}
}

func TestToggles(t *testing.T) {
	spec := DefaultSpec().ToggleCategory("men")
	if spec.Category != "men" {
		t.Fatalf("expected men selected")
	}
	if spec.ToggleCategory("men").Category != "" {
		t.Fatalf("toggling the selected category must clear it")
	}
	if spec.ToggleCategory("women").Category != "women" {
		t.Fatalf("toggling another category must switch to it")
	}

	withSize := spec.ToggleSize(domain.SizeL).ToggleSize(domain.SizeM)
	if len(withSize.Sizes) != 2 {
		t.Fatalf("expected two sizes, got %v", withSize.Sizes)
	}
	without := withSize.ToggleSize(domain.SizeL)
	if len(without.Sizes) != 1 || without.Sizes[0] != domain.SizeM || len(withSize.Sizes) != 2 {
		t.Fatalf("toggle must remove without mutating the original, got %v / %v", without.Sizes, withSize.Sizes)
	}

	colored := spec.ToggleColor("Black").ToggleColor("Black")
	if len(colored.Colors) != 0 {
		t.Fatalf("double toggle must remove color, got %v", colored.Colors)
	}

	narrowed := spec.WithPriceRange(dec("300"), dec("50")).WithSort(SortRating)
	if !narrowed.Price.Min.Equal(dec("50")) || !narrowed.Price.Max.Equal(dec("300")) || narrowed.Sort != SortRating {
		t.Fatalf("unexpected narrowed spec %+v", narrowed)
	}
	if narrowed.WithSort("bogus").Sort != SortRating {
		t.Fatalf("unknown sort must be ignored")
	}
	if narrowed.ActiveFilterCount() != 2 {
		t.Fatalf("expected category and price active, got %d", narrowed.ActiveFilterCount())
	}
	if !narrowed.Reset().Equal(DefaultSpec()) {
		t.Fatalf("reset must restore defaults")
	}
}
