package httpserver

import (
	"fmt"
	"net/http"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	"github.com/gin-gonic/gin"
)

type addCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  *int   `json:"quantity"`
	Color     string `json:"color"`
	Size      string `json:"size" binding:"required"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func (a *api) getCart(c *gin.Context) {
	ct, err := a.loadCart(c)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(ct))
}

func (a *api) addCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctx := c.Request.Context()

	products, err := a.catalog.ListProducts(ctx)
	if err != nil {
		a.writeError(c, err)
		return
	}
	p, err := catalog.FindProduct(products, req.ProductID)
	if err != nil {
		a.writeError(c, err)
		return
	}
	color, size, err := selectVariant(p, req.Color, req.Size)
	if err != nil {
		a.writeError(c, err)
		return
	}

	ct, err := a.loadCart(c)
	if err != nil {
		a.writeError(c, err)
		return
	}
	// An omitted quantity means one unit, as on the product page.
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	if err := ct.Add(ctx, p, qty, color, size); err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCartView(ct))
}

// selectVariant resolves the requested color and size against what p offers.
func selectVariant(p domain.Product, colorName, sizeName string) (domain.Color, domain.Size, error) {
	size, ok := domain.ParseSize(sizeName)
	if !ok || !p.HasSize(size) {
		return domain.Color{}, "", &domain.ValidationError{Field: "size", Message: fmt.Sprintf("size %q is not offered", sizeName)}
	}
	if len(p.Colors) == 0 && colorName == "" {
		return domain.Color{}, size, nil
	}
	for _, col := range p.Colors {
		if col.Name == colorName {
			return col, size, nil
		}
	}
	return domain.Color{}, "", &domain.ValidationError{Field: "color", Message: fmt.Sprintf("color %q is not offered", colorName)}
}

func (a *api) updateCartItem(c *gin.Context) {
	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ct, err := a.loadCart(c)
	if err != nil {
		a.writeError(c, err)
		return
	}
	// The container does not clamp; the cart page never goes below one.
	qty := max(req.Quantity, 1)
	if err := ct.UpdateQuantity(c.Request.Context(), c.Param("productId"), qty); err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(ct))
}

func (a *api) removeCartItem(c *gin.Context) {
	ct, err := a.loadCart(c)
	if err != nil {
		a.writeError(c, err)
		return
	}
	if err := ct.Remove(c.Request.Context(), c.Param("productId")); err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(ct))
}

func (a *api) clearCart(c *gin.Context) {
	ct, err := a.loadCart(c)
	if err != nil {
		a.writeError(c, err)
		return
	}
	if err := ct.Clear(c.Request.Context()); err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(ct))
}

func (a *api) cartSummary(c *gin.Context) {
	ct, err := a.loadCart(c)
	if err != nil {
		a.writeError(c, err)
		return
	}
	summary, err := ct.Summarize(c.Query("promo"))
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (a *api) getWishlist(c *gin.Context) {
	a.respondWishlist(c, http.StatusOK)
}

func (a *api) respondWishlist(c *gin.Context, status int) {
	w, err := a.loadWishlist(c)
	if err != nil {
		a.writeError(c, err)
		return
	}
	products, err := a.catalog.ListProducts(c.Request.Context())
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(status, wishlistView{
		IDs:      w.IDs(),
		Products: toProductViews(w.Products(products)),
		Count:    w.Len(),
	})
}

func (a *api) addWishlist(c *gin.Context) {
	ctx := c.Request.Context()
	products, err := a.catalog.ListProducts(ctx)
	if err != nil {
		a.writeError(c, err)
		return
	}
	p, err := catalog.FindProduct(products, c.Param("productId"))
	if err != nil {
		a.writeError(c, err)
		return
	}
	w, err := a.loadWishlist(c)
	if err != nil {
		a.writeError(c, err)
		return
	}
	if err := w.Add(ctx, p.ID); err != nil {
		a.writeError(c, err)
		return
	}
	a.respondWishlist(c, http.StatusOK)
}

func (a *api) removeWishlist(c *gin.Context) {
	w, err := a.loadWishlist(c)
	if err != nil {
		a.writeError(c, err)
		return
	}
	if err := w.Remove(c.Request.Context(), c.Param("productId")); err != nil {
		a.writeError(c, err)
		return
	}
	a.respondWishlist(c, http.StatusOK)
}

// clearWishlist removes ids one at a time, as the wishlist page does.
func (a *api) clearWishlist(c *gin.Context) {
	w, err := a.loadWishlist(c)
	if err != nil {
		a.writeError(c, err)
		return
	}
	for _, id := range w.IDs() {
		if err := w.Remove(c.Request.Context(), id); err != nil {
			a.writeError(c, err)
			return
		}
	}
	a.respondWishlist(c, http.StatusOK)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *api) me(c *gin.Context) {
	s, err := a.loadSession(c)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, meView{Authenticated: s.IsAuthenticated(), User: s.User()})
}

func (a *api) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s, err := a.loadSession(c)
	if err != nil {
		a.writeError(c, err)
		return
	}
	u, err := s.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, meView{Authenticated: true, User: u})
}

func (a *api) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s, err := a.loadSession(c)
	if err != nil {
		a.writeError(c, err)
		return
	}
	u, err := s.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meView{Authenticated: true, User: u})
}

func (a *api) logout(c *gin.Context) {
	s, err := a.loadSession(c)
	if err != nil {
		a.writeError(c, err)
		return
	}
	if err := s.Logout(c.Request.Context()); err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, meView{Authenticated: false})
}
