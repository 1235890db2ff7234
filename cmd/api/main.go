package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/httpserver"
	"storefront/internal/service/session"
	"storefront/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()

	var dbpool *pgxpool.Pool
	if cfg.NeedsDB() {
		var err error
		dbpool, err = db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			logger.Fatalf("connect to db: %v", err)
		}
		defer dbpool.Close()
	}

	store, closeStore, err := openStore(ctx, cfg, dbpool, logger)
	if err != nil {
		logger.Fatalf("open store: %v", err)
	}
	defer closeStore()

	provider, err := openCatalog(cfg, dbpool, logger)
	if err != nil {
		logger.Fatalf("open catalog: %v", err)
	}

	auth, err := session.NewMockAuthenticator(cfg.AuthLatency, logger)
	if err != nil {
		logger.Fatalf("init authenticator: %v", err)
	}

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Catalog:     provider,
		Store:       store,
		Auth:        auth,
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s store=%s catalog=%s", cfg.HTTPAddr, cfg.StoreDriver, cfg.CatalogSource)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

func openStore(ctx context.Context, cfg config.Config, pool *pgxpool.Pool, logger *log.Logger) (storage.Store, func(), error) {
	switch cfg.StoreDriver {
	case "memory":
		return storage.NewMemory(), func() {}, nil
	case "redis":
		r, err := storage.DialRedis(ctx, cfg.RedisURL, logger)
		if err != nil {
			return nil, nil, err
		}
		return r, func() { _ = r.Close() }, nil
	case "postgres":
		return storage.NewPostgres(pool, logger), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func openCatalog(cfg config.Config, pool *pgxpool.Pool, logger *log.Logger) (catalog.Provider, error) {
	switch cfg.CatalogSource {
	case "static":
		return catalog.Default(), nil
	case "postgres":
		return catalog.NewPostgres(pool, logger), nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.CatalogSource)
	}
}
