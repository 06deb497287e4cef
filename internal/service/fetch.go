package service

import (
	"context"
	"fmt"
	"strings"

	"catalog-n1/internal/metrics"
	"catalog-n1/internal/model"
	"catalog-n1/internal/repository"

	"github.com/rs/zerolog"
)

// FetchStrategy selects when reviews are loaded.
type FetchStrategy string

const (
	// FetchLazy loads products first and then the reviews of each product
	// with its own call: 1 + N store calls.
	FetchLazy FetchStrategy = "lazy"

	// FetchEager loads products and reviews with one joined call.
	FetchEager FetchStrategy = "eager"
)

// ParseFetchStrategy converts a case-insensitive name into a FetchStrategy.
func ParseFetchStrategy(s string) (FetchStrategy, error) {
	switch FetchStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case FetchLazy:
		return FetchLazy, nil
	case FetchEager:
		return FetchEager, nil
	default:
		return "", fmt.Errorf("unknown fetch strategy %q: %w", s, model.ErrUnknownStrategy)
	}
}

// FetchResult is the outcome of one retrieval plan.
type FetchResult struct {
	Products []model.Product

	// Retrievals is the number of store calls the plan issued.
	Retrievals int
}

// FollowUps returns the number of per-product review calls.
func (r *FetchResult) FollowUps() int {
	if r.Retrievals == 0 {
		return 0
	}
	return r.Retrievals - 1
}

// Fetcher runs the retrieval plans against the store. Every store call is
// recorded on the injected metrics.Recorder.
type Fetcher struct {
	products repository.ProductReader
	reviews  repository.ReviewReader
	recorder metrics.Recorder
	logger   zerolog.Logger
}

// NewFetcher creates a Fetcher.
func NewFetcher(
	products repository.ProductReader,
	reviews repository.ReviewReader,
	recorder metrics.Recorder,
	logger zerolog.Logger,
) *Fetcher {
	if recorder == nil {
		recorder = metrics.Nop()
	}
	return &Fetcher{
		products: products,
		reviews:  reviews,
		recorder: recorder,
		logger:   logger.With().Str("component", "fetcher").Logger(),
	}
}

// FetchAllShallow returns every product with its reviews not loaded.
func (f *Fetcher) FetchAllShallow(ctx context.Context) ([]model.Product, error) {
	defer metrics.Time(f.recorder, metrics.OpStoreFindAll)()

	products, err := f.products.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

// FetchAllWithReviews returns every product with its reviews loaded by a
// single store call.
func (f *Fetcher) FetchAllWithReviews(ctx context.Context) ([]model.Product, error) {
	defer metrics.Time(f.recorder, metrics.OpStoreFindAllJoined)()

	products, err := f.products.FindAllWithReviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products with reviews: %w", err)
	}
	return products, nil
}

// LoadReviews fetches the reviews of p and stores them on it.
func (f *Fetcher) LoadReviews(ctx context.Context, p *model.Product) error {
	defer metrics.Time(f.recorder, metrics.OpStoreFindReviews)()

	reviews, err := f.reviews.FindByProductID(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch reviews of product %s: %w", p.ID, err)
	}
	p.SetReviews(reviews)

	f.logger.Debug().
		Str("product_id", p.ID.String()).
		Int("review_count", len(reviews)).
		Msg("loaded reviews")

	return nil
}

// Fetch runs the plan named by strategy. A store failure aborts the plan
// and no partial result is returned.
func (f *Fetcher) Fetch(ctx context.Context, strategy FetchStrategy) (*FetchResult, error) {
	switch strategy {
	case FetchEager:
		products, err := f.FetchAllWithReviews(ctx)
		if err != nil {
			return nil, err
		}
		return &FetchResult{Products: products, Retrievals: 1}, nil

	case FetchLazy:
		products, err := f.FetchAllShallow(ctx)
		if err != nil {
			return nil, err
		}
		retrievals := 1
		for i := range products {
			if err := f.LoadReviews(ctx, &products[i]); err != nil {
				return nil, err
			}
			retrievals++
		}
		return &FetchResult{Products: products, Retrievals: retrievals}, nil

	default:
		return nil, fmt.Errorf("unknown fetch strategy %q", strategy)
	}
}
