package httpserver

import (
	"errors"
	"io"
	"log"
	"time"

	"storefront/internal/catalog"
	"storefront/internal/service/newsletter"
	"storefront/internal/service/session"
	"storefront/internal/service/shop"
	"storefront/internal/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps are the collaborators the router needs. Store backs both per-session state and
// the global newsletter list.
type Deps struct {
	Catalog     catalog.Provider
	Store       storage.Store
	Auth        session.Authenticator
	CORSOrigins []string
}

type api struct {
	logger     *log.Logger
	catalog    catalog.Provider
	store      storage.Store
	auth       session.Authenticator
	shop       *shop.Engine
	newsletter *newsletter.Service
	locks      *sessionLocks
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, deps Deps) (*gin.Engine, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if deps.Catalog == nil {
		return nil, errors.New("catalog provider is required")
	}
	if deps.Store == nil {
		return nil, errors.New("store is required")
	}
	if deps.Auth == nil {
		return nil, errors.New("authenticator is required")
	}

	a := &api{
		logger:     logger,
		catalog:    deps.Catalog,
		store:      deps.Store,
		auth:       deps.Auth,
		shop:       shop.NewEngine(deps.Catalog, logger),
		newsletter: newsletter.New(deps.Store, logger),
		locks:      newSessionLocks(),
	}

	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	if len(deps.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", sessionHeader},
			ExposeHeaders:    []string{sessionHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	pinger, _ := deps.Store.(storage.Pinger)
	router.GET("/readyz", readyHandler(pinger))

	router.GET("/products", a.listProducts)
	router.GET("/products/:id", a.getProduct)
	router.GET("/categories", a.listCategories)
	router.GET("/collections", a.listCollections)
	router.GET("/collections/:id/products", a.collectionProducts)
	router.GET("/highlights", a.highlights)
	router.GET("/filters", a.filters)
	router.GET("/shop", a.search)
	router.POST("/newsletter", a.subscribe)

	scoped := router.Group("/", sessionMiddleware(a.locks))
	scoped.GET("/cart", a.getCart)
	scoped.POST("/cart/items", a.addCartItem)
	scoped.PATCH("/cart/items/:productId", a.updateCartItem)
	scoped.DELETE("/cart/items/:productId", a.removeCartItem)
	scoped.DELETE("/cart", a.clearCart)
	scoped.GET("/cart/summary", a.cartSummary)

	scoped.GET("/wishlist", a.getWishlist)
	scoped.PUT("/wishlist/:productId", a.addWishlist)
	scoped.DELETE("/wishlist/:productId", a.removeWishlist)
	scoped.DELETE("/wishlist", a.clearWishlist)

	scoped.GET("/me", a.me)
	scoped.POST("/auth/login", a.login)
	scoped.POST("/auth/register", a.register)
	scoped.POST("/auth/logout", a.logout)

	return router, nil
}
