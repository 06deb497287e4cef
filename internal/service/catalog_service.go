package service

import (
	"context"
	"fmt"
	"time"

	"catalog-n1/internal/metrics"
	"catalog-n1/internal/model"

	"github.com/rs/zerolog"
)

// PerformanceComparison holds one timed run of each retrieval plan.
type PerformanceComparison struct {
	N1ExecutionTime        time.Duration
	OptimizedExecutionTime time.Duration
	N1ProductCount         int
	OptimizedProductCount  int
	N1Retrievals           int
	OptimizedRetrievals    int
}

// Improvement returns how much slower the N+1 plan was, in percent of the
// optimized time. It is 0 when the optimized run measured no time.
func (c PerformanceComparison) Improvement() float64 {
	if c.OptimizedExecutionTime <= 0 {
		return 0
	}
	return (float64(c.N1ExecutionTime)/float64(c.OptimizedExecutionTime) - 1) * 100
}

// catalogService implements CatalogService.
type catalogService struct {
	fetcher  *Fetcher
	warmup   bool
	recorder metrics.Recorder
	now      func() time.Time
	logger   zerolog.Logger
}

// NewCatalogService creates a new catalog service. With warmup set,
// ComparePerformance runs both plans once before measuring.
func NewCatalogService(fetcher *Fetcher, warmup bool, recorder metrics.Recorder, logger zerolog.Logger) CatalogService {
	if recorder == nil {
		recorder = metrics.Nop()
	}
	return &catalogService{
		fetcher:  fetcher,
		warmup:   warmup,
		recorder: recorder,
		now:      time.Now,
		logger:   logger.With().Str("service", "catalog").Logger(),
	}
}

// ListWithN1 lists products using the lazy plan.
func (s *catalogService) ListWithN1(ctx context.Context) ([]model.ProductResponse, error) {
	defer metrics.Time(s.recorder, metrics.OpListProductsN1)()

	result, err := s.list(ctx, FetchLazy)
	if err != nil {
		return nil, err
	}
	return model.NewProductResponses(result.Products, true), nil
}

// ListOptimized lists products using the eager plan.
func (s *catalogService) ListOptimized(ctx context.Context) ([]model.ProductResponse, error) {
	defer metrics.Time(s.recorder, metrics.OpListProductsOptimized)()

	result, err := s.list(ctx, FetchEager)
	if err != nil {
		return nil, err
	}
	return model.NewProductResponses(result.Products, true), nil
}

// List lists products using the named plan.
func (s *catalogService) List(ctx context.Context, strategy FetchStrategy) ([]model.ProductResponse, int, error) {
	defer metrics.Time(s.recorder, metrics.OpListProducts)()

	result, err := s.list(ctx, strategy)
	if err != nil {
		return nil, 0, err
	}
	return model.NewProductResponses(result.Products, true), result.Retrievals, nil
}

// ComparePerformance times the lazy plan and then the eager plan.
func (s *catalogService) ComparePerformance(ctx context.Context) (*PerformanceComparison, error) {
	defer metrics.Time(s.recorder, metrics.OpComparePerformance)()

	if s.warmup {
		if _, err := s.list(ctx, FetchLazy); err != nil {
			return nil, fmt.Errorf("failed to warm up: %w", err)
		}
		if _, err := s.list(ctx, FetchEager); err != nil {
			return nil, fmt.Errorf("failed to warm up: %w", err)
		}
	}

	n1, n1Time, err := s.timed(ctx, FetchLazy)
	if err != nil {
		return nil, err
	}

	optimized, optimizedTime, err := s.timed(ctx, FetchEager)
	if err != nil {
		return nil, err
	}

	comparison := &PerformanceComparison{
		N1ExecutionTime:        n1Time,
		OptimizedExecutionTime: optimizedTime,
		N1ProductCount:         len(n1.Products),
		OptimizedProductCount:  len(optimized.Products),
		N1Retrievals:           n1.Retrievals,
		OptimizedRetrievals:    optimized.Retrievals,
	}

	s.logger.Info().
		Dur("n1_time", n1Time).
		Dur("optimized_time", optimizedTime).
		Int("n1_retrievals", n1.Retrievals).
		Int("optimized_retrievals", optimized.Retrievals).
		Float64("improvement_pct", comparison.Improvement()).
		Msg("performance comparison completed")

	return comparison, nil
}

// timed runs one plan, including the projection step, and measures it.
func (s *catalogService) timed(ctx context.Context, strategy FetchStrategy) (*FetchResult, time.Duration, error) {
	start := s.now()
	result, err := s.list(ctx, strategy)
	if err != nil {
		return nil, 0, err
	}
	model.NewProductResponses(result.Products, true)
	return result, s.now().Sub(start), nil
}

func (s *catalogService) list(ctx context.Context, strategy FetchStrategy) (*FetchResult, error) {
	start := s.now()

	result, err := s.fetcher.Fetch(ctx, strategy)
	if err != nil {
		s.logger.Error().Err(err).Str("strategy", string(strategy)).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	s.logger.Info().
		Str("strategy", string(strategy)).
		Int("product_count", len(result.Products)).
		Int("retrievals", result.Retrievals).
		Dur("duration", s.now().Sub(start)).
		Msg("listed products")

	return result, nil
}
