// Package main is the entry point for the tabularium API server: the
// schema registry, header resolution and batch validation backend behind
// the department import dashboards.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"tabularium/internal/domain/departments"
	"tabularium/internal/domain/importer"
	"tabularium/internal/domain/schema"
	v1 "tabularium/internal/infrastructure/http/v1"
	"tabularium/internal/infrastructure/storage/postgres"
	"tabularium/pkg/logger"
)

func main() {
	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting tabularium server")

	// --- Schema hub ---
	// Composition failures are authoring defects in the static department
	// definitions and abort startup.
	hub, err := departments.NewHub()
	if err != nil {
		log.Fatalw("failed to compose schema hub", "error", err)
	}
	log.Infow("schema hub composed", "departments", len(hub.Departments()))

	// --- Resolver and validation engine ---
	resolverOpts := schema.ResolverOptions{
		FuzzyThreshold: getEnvFloat("FUZZY_THRESHOLD", schema.DefaultFuzzyThreshold),
	}
	engine := importer.NewEngine(hub.Validator(), importer.EngineOptions{
		Workers: getEnvInt("VALIDATION_WORKERS", 0),
	})

	// --- Mapping store (optional) ---
	// Without DATABASE_URL the server still serves schema reads, mapping
	// plans and validation; mapping-memory endpoints report unavailable.
	var pool *postgres.Pool
	var store *postgres.Store
	if dsn := getEnv("DATABASE_URL", ""); dsn != "" {
		pool, err = postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
		if err != nil {
			log.Fatalw("failed to connect to database", "error", err)
		}
		defer pool.Close()

		store, err = postgres.NewStore(pool)
		if err != nil {
			log.Fatalw("failed to create mapping store", "error", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			log.Fatalw("failed to ensure store schema", "error", err)
		}
		log.Info("mapping store connected")
	} else {
		log.Info("DATABASE_URL not set, mapping memory disabled")
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Hub:             hub,
		Engine:          engine,
		ResolverOptions: resolverOpts,
		Store:           store,
		Pool:            pool,
		Logger:          log,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if result, err := strconv.Atoi(value); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if result, err := strconv.ParseFloat(value, 64); err == nil {
			return result
		}
	}
	return defaultValue
}
