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

	"feedreader/internal/api"
	"feedreader/internal/articles"
	"feedreader/internal/config"
	"feedreader/internal/database"
	"feedreader/internal/fetcher"
	"feedreader/internal/scheduler"
	"feedreader/internal/sources"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	logger.Info("starting feedreader server")

	db, err := database.NewConnection(cfg.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("database ready", "migration_version", version, "dirty", dirty)

	articleRepo := database.NewArticleRepository(db)
	subscriptionRepo := database.NewSubscriptionRepository(db)
	userArticleRepo := database.NewUserArticleRepository(db)
	sourceRepo := database.NewSourceRepository(db)

	// Register seed sources declared on disk. Failures are logged and skipped
	// so one bad seed does not block startup.
	seeds, err := sources.NewLoader(cfg.SourcesDir).LoadAll()
	if err != nil {
		logger.Error("failed to load source seeds", "error", err)
		os.Exit(1)
	}
	registered := 0
	for file, seed := range seeds {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err := sourceRepo.UpsertSource(ctx, seed.URL, seed.Name, seed.RefreshInterval)
		cancel()
		if err != nil {
			logger.Warn("failed to register source", "file", file, "error", err)
			continue
		}
		registered++
	}
	logger.Info("seed sources registered", "registered", registered, "total", len(seeds))

	feedFetcher := fetcher.New(
		articleRepo, sourceRepo,
		cfg.UserAgent,
		time.Duration(cfg.RefreshInterval)*time.Second,
		logger,
	)
	fetchScheduler := scheduler.New(
		feedFetcher, sourceRepo,
		time.Duration(cfg.FetchInterval)*time.Second,
		cfg.WorkerCount,
		logger,
	)
	fetchScheduler.Start()
	defer fetchScheduler.Stop()

	service := articles.NewService(articleRepo, subscriptionRepo, logger)
	handler := api.NewHandler(service, userArticleRepo, db, logger)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewServer(handler, logger),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-serverErr:
		logger.Error("HTTP server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
