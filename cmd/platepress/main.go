// Package main is the entry point for the PlatePress recipe discovery
// server. It loads configuration, connects to services, wires the search
// engine and suggestion index, and starts the HTTP server with graceful
// shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"platepress/internal/category"
	"platepress/internal/config"
	"platepress/internal/database"
	"platepress/internal/handlers"
	"platepress/internal/router"
	"platepress/internal/search"
	"platepress/internal/store"
	"platepress/internal/suggest"
)

func main() {
	// Structured logger — key/value text output.
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
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Initialize data stores.
	recipeStore := store.NewRecipeStore(db)
	categoryStore := store.NewCategoryStore(db)
	categoryService := category.NewService(categoryStore)

	// Select the relevance ranker once, based on store capability.
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	ranker := search.SelectRanker(startupCtx, recipeStore)
	cancelStartup()

	engine := search.NewEngine(recipeStore, ranker)

	// Connect to Valkey for the suggestion cache. The cache is an
	// optimization: when Valkey is unavailable the index serves every
	// request from the corpus directly.
	var suggestCache *suggest.Cache
	valkeyClient, err := suggest.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, suggestion caching disabled", "error", err)
	} else {
		defer valkeyClient.Close()
		suggestCache = suggest.NewCache(valkeyClient, suggest.DefaultSuggestTTL, suggest.DefaultPopularTTL)
	}

	suggestions := suggest.New(recipeStore, categoryStore, suggestCache)

	// Create handler groups with their dependencies.
	publicHandlers := handlers.NewPublic(engine, suggestions, recipeStore, categoryService)
	adminHandlers := handlers.NewAdmin(categoryService)

	// Set up the Chi router with all middleware and routes.
	r := router.New(publicHandlers, adminHandlers)

	// Create the HTTP server with sensible timeouts.
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
