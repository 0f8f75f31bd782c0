// Package main is the entry point for the figure shop server.
// It loads configuration, wires the flat-file content stores, caches, and
// query engine, sets up routing, and starts the HTTP server with graceful
// shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"figstore/internal/auth"
	"figstore/internal/cache"
	"figstore/internal/config"
	"figstore/internal/handlers"
	"figstore/internal/query"
	"figstore/internal/router"
	"figstore/internal/session"
	"figstore/internal/store"
	"figstore/internal/xref"
)

func main() {
	// Load environment variables from a .env file before anything else.
	_ = godotenv.Load()

	// Structured logger — text output, debug level so cache activity is
	// visible during development.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"content_dir", cfg.ContentDir,
	)

	// Both caches live in process memory; every content write flushes them.
	cacheService := cache.NewService()

	// Flat-file content repositories, one per content type.
	productStore := store.NewProductStore(filepath.Join(cfg.ContentDir, "products"), cacheService)
	categoryStore := store.NewCategoryStore(filepath.Join(cfg.ContentDir, "categories"), cacheService, productStore)
	blogStore := store.NewBlogStore(filepath.Join(cfg.ContentDir, "blog"), cacheService)
	codexStore := store.NewCodexStore(filepath.Join(cfg.ContentDir, "codex"), cacheService)
	pageStore := store.NewPageStore(filepath.Join(cfg.ContentDir, "pages"), cacheService)
	promotionStore := store.NewPromotionStore(filepath.Join(cfg.ContentDir, "promotions"), cacheService)

	// Query engine and codex cross-reference resolver sit on top of the
	// cached collections.
	queryEngine := query.New(productStore)
	resolver := xref.New(codexStore, cacheService)

	// Sessions, credentials, and login throttling.
	sessionStore := session.NewStore()
	userStore := auth.NewUserStore(filepath.Join(cfg.DataDir, "users.json"))
	loginLimiter := auth.NewLoginLimiter(cfg.LoginMaxAttempts, cfg.LoginLockout)

	// Create handler groups with their dependencies.
	publicHandlers := handlers.NewPublic(categoryStore, productStore, blogStore, codexStore, pageStore, promotionStore, queryEngine, resolver, cacheService)
	authHandlers := handlers.NewAuth(sessionStore, userStore, loginLimiter)
	adminHandlers := handlers.NewAdmin(categoryStore, productStore, blogStore, codexStore, pageStore, promotionStore, cacheService)

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, adminHandlers, authHandlers, publicHandlers)

	// Create the HTTP server with sensible timeouts. All I/O is local
	// disk, so responses are fast.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
