//go:build ignore

package main

import (
	"context"
	"fmt"
	"os"

	"catalog-n1/internal/config"
	"catalog-n1/internal/database"
	"catalog-n1/internal/repository"
	"catalog-n1/internal/service"

	"github.com/rs/zerolog"
)

// Connects with the server configuration and prints how many SQL
// statements each fetch strategy issues against the current data.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load configuration: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	logger := zerolog.Nop()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	var dbName string
	if err := pool.QueryRow(ctx, "SELECT current_database()").Scan(&dbName); err != nil {
		fmt.Fprintf(os.Stderr, "QueryRow failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Successfully connected to database: %s\n", dbName)

	fetcher := service.NewFetcher(
		repository.NewProductRepository(pool, logger),
		repository.NewReviewRepository(pool, logger),
		nil, logger,
	)

	for _, strategy := range []service.FetchStrategy{service.FetchLazy, service.FetchEager} {
		counter := &database.QueryCounter{}
		result, err := fetcher.Fetch(database.WithQueryCounter(ctx, counter), strategy)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Fetch %s failed: %v\n", strategy, err)
			os.Exit(1)
		}
		fmt.Printf("  %-5s products=%d statements=%d\n", strategy, len(result.Products), counter.Count())
	}
}
