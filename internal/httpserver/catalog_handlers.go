package httpserver

import (
	"net/http"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/service/shop"
	"github.com/gin-gonic/gin"
)

func (a *api) listProducts(c *gin.Context) {
	products, err := a.catalog.ListProducts(c.Request.Context())
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": toProductViews(products), "total": len(products)})
}

func (a *api) getProduct(c *gin.Context) {
	products, err := a.catalog.ListProducts(c.Request.Context())
	if err != nil {
		a.writeError(c, err)
		return
	}
	p, err := catalog.FindProduct(products, c.Param("id"))
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"product": toProductView(p),
		"related": toProductViews(catalog.Related(products, p, catalog.RelatedLimit)),
	})
}

func (a *api) listCategories(c *gin.Context) {
	categories, err := a.catalog.ListCategories(c.Request.Context())
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (a *api) listCollections(c *gin.Context) {
	collections, err := a.catalog.ListCollections(c.Request.Context())
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collections": collections})
}

func (a *api) collectionProducts(c *gin.Context) {
	ctx := c.Request.Context()
	collections, err := a.catalog.ListCollections(ctx)
	if err != nil {
		a.writeError(c, err)
		return
	}
	col, err := catalog.FindCollection(collections, c.Param("id"))
	if err != nil {
		a.writeError(c, err)
		return
	}
	products, err := a.catalog.ListProducts(ctx)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"collection": col,
		"products":   toProductViews(catalog.CollectionProducts(col, products)),
	})
}

func (a *api) highlights(c *gin.Context) {
	products, err := a.catalog.ListProducts(c.Request.Context())
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"featured":    toProductViews(catalog.Featured(products)),
		"newArrivals": toProductViews(catalog.NewArrivals(products)),
		"bestSellers": toProductViews(catalog.BestSellers(products)),
	})
}

// filters lists the options the shop page offers in its filter panel.
func (a *api) filters(c *gin.Context) {
	ctx := c.Request.Context()
	products, err := a.catalog.ListProducts(ctx)
	if err != nil {
		a.writeError(c, err)
		return
	}
	categories, err := a.catalog.ListCategories(ctx)
	if err != nil {
		a.writeError(c, err)
		return
	}

	names := catalog.AvailableColors(products)
	colors := make([]domain.Color, len(names))
	for i, name := range names {
		colors[i] = catalog.ColorByName(products, name)
	}
	def := shop.DefaultPriceRange()

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"sizes":      catalog.AvailableSizes(products),
		"colors":     colors,
		"priceRange": gin.H{"min": def.Min, "max": def.Max},
		"sortKeys":   shop.SortKeys,
	})
}

func (a *api) search(c *gin.Context) {
	res, spec, err := a.shop.Search(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		a.writeError(c, err)
		return
	}
	view := toShopView(res, spec)
	c.Header("Content-Location", "/shop?"+view.Query)
	c.JSON(http.StatusOK, view)
}

type subscribeRequest struct {
	Email string `json:"email"`
}

func (a *api) subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := a.newsletter.Subscribe(c.Request.Context(), req.Email); err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "subscribed"})
}
