package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/catalog"
	"storefront/internal/service/session"
	"storefront/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type pingingStore struct {
	*storage.Memory
	err error
}

func (p *pingingStore) Ping(context.Context) error { return p.err }

func newTestRouter(t *testing.T, store storage.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if store == nil {
		store = storage.NewMemory()
	}
	auth, err := session.NewMockAuthenticator(0, nil)
	if err != nil {
		t.Fatalf("mock authenticator: %v", err)
	}
	router, err := buildRouter(logDiscard(), Deps{
		Catalog: catalog.Default(),
		Store:   store,
		Auth:    auth,
	})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func do(router *gin.Engine, method, path, sid, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if sid != "" {
		req.Header.Set(sessionHeader, sid)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode body %s: %v", rec.Body.String(), err)
	}
}

func TestBuildRouter_RequiresDeps(t *testing.T) {
	if _, err := buildRouter(logDiscard(), Deps{}); err == nil {
		t.Fatalf("expected error for missing deps")
	}
}

func TestHealthAndReady(t *testing.T) {
	router := newTestRouter(t, nil)
	if rec := do(router, http.MethodGet, "/healthz", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec := do(router, http.MethodGet, "/readyz", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("memory store must be ready, got %d", rec.Code)
	}

	down := newTestRouter(t, &pingingStore{Memory: storage.NewMemory(), err: errors.New("refused")})
	if rec := do(down, http.MethodGet, "/readyz", "", ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when store is down, got %d", rec.Code)
	}
}

func TestGetProduct(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := do(router, http.MethodGet, "/products/1", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	var body struct {
		Product struct {
			ID              string `json:"id"`
			DiscountPercent *int64 `json:"discountPercent"`
			InStock         bool   `json:"inStock"`
		} `json:"product"`
		Related []struct {
			ID       string `json:"id"`
			Category string `json:"category"`
		} `json:"related"`
	}
	decode(t, rec, &body)
	if body.Product.ID != "1" || body.Product.DiscountPercent == nil || *body.Product.DiscountPercent != 22 || !body.Product.InStock {
		t.Fatalf("unexpected product %+v", body.Product)
	}
	if len(body.Related) == 0 || len(body.Related) > catalog.RelatedLimit {
		t.Fatalf("unexpected related count %d", len(body.Related))
	}
	for _, r := range body.Related {
		if r.ID == "1" || r.Category != "men" {
			t.Fatalf("unexpected related product %+v", r)
		}
	}

	if rec := do(router, http.MethodGet, "/products/nope", "", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCollectionsAndFilters(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := do(router, http.MethodGet, "/collections/summer-essentials/products", "", "")
	var col struct {
		Products []struct {
			ID string `json:"id"`
		} `json:"products"`
	}
	decode(t, rec, &col)
	if len(col.Products) != 3 || col.Products[0].ID != "1" {
		t.Fatalf("unexpected collection products %+v", col.Products)
	}
	if rec := do(router, http.MethodGet, "/collections/nope/products", "", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = do(router, http.MethodGet, "/filters", "", "")
	var filters struct {
		Sizes    []string `json:"sizes"`
		SortKeys []string `json:"sortKeys"`
		Colors   []struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"colors"`
	}
	decode(t, rec, &filters)
	if len(filters.Sizes) == 0 || len(filters.SortKeys) != 6 || len(filters.Colors) == 0 || filters.Colors[0].Value == "" {
		t.Fatalf("unexpected filters %+v", filters)
	}
}

func TestShopSearch(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := do(router, http.MethodGet, "/shop?category=footwear&sort=price-asc&sizes=XXL,BOGUS", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Products []struct {
			ID string `json:"id"`
		} `json:"products"`
		Total         int    `json:"total"`
		Query         string `json:"query"`
		ActiveFilters int    `json:"activeFilters"`
	}
	decode(t, rec, &body)
	if body.Total != 1 || body.Products[0].ID != "9" {
		t.Fatalf("unexpected search result %+v", body)
	}
	if body.Query != "category=footwear&maxPrice=200&minPrice=0&sizes=XXL&sort=price-asc" {
		t.Fatalf("unexpected canonical query %q", body.Query)
	}
	if loc := rec.Header().Get("Content-Location"); loc != "/shop?"+body.Query {
		t.Fatalf("unexpected Content-Location %q", loc)
	}
	if body.ActiveFilters != 2 {
		t.Fatalf("expected 2 active filters, got %d", body.ActiveFilters)
	}

	rec = do(router, http.MethodGet, "/shop?category=kids", "", "")
	decode(t, rec, &body)
	if body.Total != 0 || len(body.Products) != 0 {
		t.Fatalf("expected empty result, got %+v", body)
	}
}

type cartBody struct {
	Items []struct {
		Quantity     int    `json:"quantity"`
		SelectedSize string `json:"selectedSize"`
		Product      struct {
			ID string `json:"id"`
		} `json:"product"`
	} `json:"items"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

func TestCartFlow(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := do(router, http.MethodPost, "/cart/items", "", `{"productId":"4","quantity":1,"color":"Black","size":"M"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	sid := rec.Header().Get(sessionHeader)
	if sid == "" {
		t.Fatalf("expected a session id to be issued")
	}

	rec = do(router, http.MethodPost, "/cart/items", sid, `{"productId":"4","quantity":2,"color":"Black","size":"M"}`)
	var cart cartBody
	decode(t, rec, &cart)
	if len(cart.Items) != 1 || cart.Count != 3 || !cart.Total.Equal(decimal.RequireFromString("89.97")) {
		t.Fatalf("expected merged line, got %+v", cart)
	}

	rec = do(router, http.MethodPost, "/cart/items", sid, `{"productId":"4","quantity":1,"color":"White","size":"L"}`)
	decode(t, rec, &cart)
	if len(cart.Items) != 2 {
		t.Fatalf("expected a second line, got %+v", cart)
	}

	rec = do(router, http.MethodPatch, "/cart/items/4", sid, `{"quantity":0}`)
	decode(t, rec, &cart)
	if cart.Count != 2 || cart.Items[0].Quantity != 1 || cart.Items[1].Quantity != 1 {
		t.Fatalf("expected every variant clamped to 1, got %+v", cart)
	}

	rec = do(router, http.MethodGet, "/cart/summary?promo=welcome10", sid, "")
	var summary struct {
		Shipping     decimal.Decimal `json:"shipping"`
		Discount     decimal.Decimal `json:"discount"`
		PromoApplied bool            `json:"promoApplied"`
	}
	decode(t, rec, &summary)
	if !summary.PromoApplied || !summary.Shipping.Equal(decimal.RequireFromString("9.99")) || !summary.Discount.Equal(decimal.RequireFromString("6")) {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if rec := do(router, http.MethodGet, "/cart/summary?promo=FREESTUFF", sid, ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown promo, got %d", rec.Code)
	}

	rec = do(router, http.MethodDelete, "/cart/items/4", sid, "")
	decode(t, rec, &cart)
	if len(cart.Items) != 0 {
		t.Fatalf("expected every variant removed, got %+v", cart)
	}

	other := do(router, http.MethodGet, "/cart", "", "")
	decode(t, other, &cart)
	if cart.Count != 0 {
		t.Fatalf("a new session must start with an empty cart")
	}
}

func TestCart_RejectsBadInput(t *testing.T) {
	router := newTestRouter(t, nil)
	cases := map[string]struct {
		body string
		code int
	}{
		"unknown product":    {`{"productId":"999","quantity":1,"color":"Black","size":"M"}`, http.StatusNotFound},
		"size not offered":   {`{"productId":"3","quantity":1,"color":"Black","size":"XL"}`, http.StatusBadRequest},
		"color not offered":  {`{"productId":"4","quantity":1,"color":"Pink","size":"M"}`, http.StatusBadRequest},
		"zero quantity":      {`{"productId":"4","quantity":0,"color":"Black","size":"M"}`, http.StatusBadRequest},
		"missing product id": {`{"quantity":1,"size":"M"}`, http.StatusBadRequest},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec := do(router, http.MethodPost, "/cart/items", "", tc.body)
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d body=%s", tc.code, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestSession_InvalidID(t *testing.T) {
	router := newTestRouter(t, nil)
	if rec := do(router, http.MethodGet, "/cart", "../../etc", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSession_CanonicalisesID(t *testing.T) {
	router := newTestRouter(t, nil)
	canonical := "9f1c2d3e-4a5b-4c6d-8e7f-0a1b2c3d4e5f"

	for _, spelling := range []string{
		"{9f1c2d3e-4a5b-4c6d-8e7f-0a1b2c3d4e5f}",
		"urn:uuid:9f1c2d3e-4a5b-4c6d-8e7f-0a1b2c3d4e5f",
		"9f1c2d3e4a5b4c6d8e7f0a1b2c3d4e5f",
		"9F1C2D3E-4A5B-4C6D-8E7F-0A1B2C3D4E5F",
	} {
		rec := do(router, http.MethodPut, "/wishlist/2", spelling, "")
		if got := rec.Header().Get(sessionHeader); got != canonical {
			t.Fatalf("%q: expected canonical session id, got %q", spelling, got)
		}
	}

	var body struct {
		Count int `json:"count"`
	}
	decode(t, do(router, http.MethodGet, "/wishlist", canonical, ""), &body)
	if body.Count != 1 {
		t.Fatalf("every spelling must share one session, count=%d", body.Count)
	}
}

func TestCartAdd_OmittedQuantityIsOne(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := do(router, http.MethodPost, "/cart/items", "", `{"productId":"4","color":"Black","size":"M"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	var cart cartBody
	decode(t, rec, &cart)
	if cart.Count != 1 || len(cart.Items) != 1 || cart.Items[0].Quantity != 1 {
		t.Fatalf("expected a single unit, got %+v", cart)
	}
}

func TestSession_CookieIsHonoured(t *testing.T) {
	router := newTestRouter(t, nil)
	rec := do(router, http.MethodPut, "/wishlist/2", "", "")
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 || cookies[0].Name != sessionCookie {
		t.Fatalf("expected session cookie, got %v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/wishlist", nil)
	req.AddCookie(cookies[0])
	next := httptest.NewRecorder()
	router.ServeHTTP(next, req)

	var body struct {
		Count int `json:"count"`
	}
	decode(t, next, &body)
	if body.Count != 1 {
		t.Fatalf("cookie session lost wishlist, body=%s", next.Body.String())
	}
}

func TestWishlistFlow(t *testing.T) {
	router := newTestRouter(t, nil)
	sid := "5b1f9a52-3c1d-4f0e-9c1a-6d2a8f7e4b10"

	do(router, http.MethodPut, "/wishlist/5", sid, "")
	do(router, http.MethodPut, "/wishlist/2", sid, "")
	rec := do(router, http.MethodPut, "/wishlist/5", sid, "")

	var body struct {
		IDs      []string `json:"ids"`
		Products []struct {
			ID string `json:"id"`
		} `json:"products"`
		Count int `json:"count"`
	}
	decode(t, rec, &body)
	if body.Count != 2 || body.Products[0].ID != "2" || body.Products[1].ID != "5" {
		t.Fatalf("unexpected wishlist %+v", body)
	}

	if rec := do(router, http.MethodPut, "/wishlist/missing", sid, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = do(router, http.MethodDelete, "/wishlist", sid, "")
	decode(t, rec, &body)
	if body.Count != 0 || len(body.IDs) != 0 {
		t.Fatalf("expected cleared wishlist, got %+v", body)
	}
}

func TestAuthFlow(t *testing.T) {
	router := newTestRouter(t, nil)
	sid := "0c7e3a8e-5f43-4d6b-9a55-1e2f3a4b5c6d"

	if rec := do(router, http.MethodPost, "/auth/login", sid, `{"email":"demo@example.com","password":"letmein"}`); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var me struct {
		Authenticated bool `json:"authenticated"`
		User          *struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	decode(t, do(router, http.MethodGet, "/me", sid, ""), &me)
	if me.Authenticated {
		t.Fatalf("failed login must leave the session anonymous")
	}

	rec := do(router, http.MethodPost, "/auth/login", sid, `{"email":"demo@example.com","password":"password"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	decode(t, do(router, http.MethodGet, "/me", sid, ""), &me)
	if !me.Authenticated || me.User == nil || me.User.Email != "john@example.com" {
		t.Fatalf("expected demo user, got %+v", me)
	}

	do(router, http.MethodPost, "/auth/logout", sid, "")
	me.User = nil
	decode(t, do(router, http.MethodGet, "/me", sid, ""), &me)
	if me.Authenticated || me.User != nil {
		t.Fatalf("expected anonymous after logout, got %+v", me)
	}

	rec = do(router, http.MethodPost, "/auth/register", sid, `{"name":"Ada","email":"ada@example.com","password":"pw"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestNewsletter(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := do(router, http.MethodPost, "/newsletter", "", `{"email":"nope"}`)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "Please enter a valid email address") {
		t.Fatalf("expected validation error, got %d %s", rec.Code, rec.Body.String())
	}
	if rec := do(router, http.MethodPost, "/newsletter", "", `{"email":"reader@example.com"}`); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
