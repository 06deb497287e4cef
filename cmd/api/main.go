package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-n1/internal/config"
	"catalog-n1/internal/database"
	"catalog-n1/internal/handler"
	"catalog-n1/internal/metrics"
	"catalog-n1/internal/repository"
	"catalog-n1/internal/router"
	"catalog-n1/internal/seed"
	"catalog-n1/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Str("store_driver", cfg.Store.Driver).Msg("starting catalog API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		return fmt.Errorf("failed to prepare schema: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		metrics.NewPoolStatsCollector(pool),
	)
	recorder := metrics.NewPrometheusRecorder(reg)

	productRepo := repository.NewProductRepository(pool, logger)
	reviewRepo := repository.NewReviewRepository(pool, logger)

	if err := seedCatalog(ctx, cfg, productRepo, logger); err != nil {
		return err
	}

	// The listing endpoints read through the configured store; writes
	// always go through pgx.
	var (
		productReader repository.ProductReader = productRepo
		reviewReader  repository.ReviewReader  = reviewRepo
	)
	if cfg.Store.Driver == config.StoreDriverGorm {
		gormDB, err := database.OpenGorm(pool, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize gorm: %w", err)
		}
		store := repository.NewGormCatalogStore(gormDB, logger)
		productReader, reviewReader = store, store
	}

	fetcher := service.NewFetcher(productReader, reviewReader, recorder, logger)
	catalogService := service.NewCatalogService(fetcher, cfg.Benchmark.Warmup, recorder, logger)
	productService := service.NewProductService(productRepo, reviewRepo, logger)
	reviewService := service.NewReviewService(productRepo, reviewRepo, logger)

	mux := router.New(router.Handlers{
		Catalog: handler.NewCatalogHandler(catalogService, logger),
		Product: handler.NewProductHandler(productService, logger),
		Review:  handler.NewReviewHandler(reviewService, logger),
	}, cfg.Auth.APIKey, reg, reg, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// seedCatalog loads demo data into an empty catalogue, reading the seed file
// from S3 first when enabled.
func seedCatalog(ctx context.Context, cfg *config.Config, store seed.ProductStore, logger zerolog.Logger) error {
	if !cfg.Seed.Enabled {
		return nil
	}

	loader := seed.NewFileLoader(logger)
	if cfg.Seed.S3.Enabled {
		s3Loader, err := seed.NewS3Loader(ctx, cfg.Seed.S3.Bucket, cfg.Seed.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			loader = seed.NewFallbackLoader(s3Loader, loader, cfg.Seed.S3.Key, logger)
		}
	}

	n, err := seed.NewSeeder(cfg.Seed, loader, store, logger).Seed(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed catalogue: %w", err)
	}
	if n > 0 {
		logger.Info().Int("products", n).Msg("demo catalogue loaded")
	}
	return nil
}
