package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ccuhub/compscout/app/api"
	"github.com/ccuhub/compscout/app/auth"
	"github.com/ccuhub/compscout/app/catalog"
	"github.com/ccuhub/compscout/app/cfg"
	"github.com/ccuhub/compscout/app/database"
	"github.com/ccuhub/compscout/app/enrichment"
	"github.com/ccuhub/compscout/app/feed"
	"github.com/ccuhub/compscout/app/seed"
	"github.com/ccuhub/compscout/app/tasks"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting CompScout server", "version", appCfg.Version)

	db, err := database.NewDB(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "migration_version", version, "dirty", dirty)

	userRepo := database.NewUserRepository(db)
	favoriteRepo := database.NewFavoriteRepository(db)
	postRepo := database.NewPostRepository(db)

	if err := seed.Run(userRepo, postRepo, appCfg.SeedPostsFile); err != nil {
		slog.Warn("Failed to seed team posts", "error", err)
	}

	store := catalog.NewStore()
	authService := auth.NewService(userRepo, appCfg.JWTSecret)

	enricher, err := enrichment.NewClient(context.Background(), appCfg.GeminiAPIKey, appCfg.GeminiModel)
	if err != nil {
		slog.Error("Failed to create enrichment client", "error", err)
		os.Exit(1)
	}
	if !enricher.Enabled() {
		slog.Warn("Gemini API key not configured, AI features return fallback text")
	}

	slog.Info("Starting background scheduler", "workers", appCfg.WorkerCount, "interval_seconds", appCfg.FetchInterval)
	scheduler := tasks.NewScheduler(&http.Client{}, feed.NewParser(), store)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(store, catalog.NewFilterer(), favoriteRepo, postRepo, authService, enricher)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
