package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"catalog-n1/internal/metrics"
	"catalog-n1/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// stepClock advances by step on every call.
func stepClock(step time.Duration) func() time.Time {
	current := fixtureTime
	return func() time.Time {
		current = current.Add(step)
		return current
	}
}

func newCatalogFixture(t *testing.T, warmup bool) (*catalogService, *MockProductRepository, *MockReviewRepository, *recorderStub) {
	t.Helper()

	productRepo := new(MockProductRepository)
	reviewRepo := new(MockReviewRepository)
	recorder := newRecorderStub()

	fetcher := NewFetcher(productRepo, reviewRepo, recorder, zerolog.Nop())
	svc := NewCatalogService(fetcher, warmup, recorder, zerolog.Nop()).(*catalogService)

	return svc, productRepo, reviewRepo, recorder
}

func TestCatalogService_ListWithN1(t *testing.T) {
	ctx := context.Background()
	shallow, reviews, _ := scenario()

	svc, productRepo, reviewRepo, recorder := newCatalogFixture(t, false)
	productRepo.On("FindAll", ctx).Return(shallow, nil)
	for id, rs := range reviews {
		reviewRepo.On("FindByProductID", ctx, id).Return(rs, nil)
	}

	out, err := svc.ListWithN1(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "Laptop", out[0].Name)
	assert.Equal(t, 4.5, out[0].AverageRating)
	assert.Equal(t, 2, out[0].ReviewCount)
	require.Len(t, out[0].Reviews, 2)
	assert.Equal(t, "Excellent", out[0].Reviews[0].RatingDescription)
	assert.Equal(t, "Good", out[0].Reviews[1].RatingDescription)
	assert.Equal(t, 5.0, out[1].AverageRating)

	reviewRepo.AssertNumberOfCalls(t, "FindByProductID", 2)
	assert.Equal(t, 1, recorder.counts[metrics.OpListProductsN1])
	assert.Equal(t, 1, recorder.durations[metrics.OpListProductsN1])
}

func TestCatalogService_ListOptimized(t *testing.T) {
	ctx := context.Background()
	_, _, eager := scenario()
	empty := testProduct("Cable", 2*time.Minute)
	empty.Reviews = []model.Review{}
	eager = append(eager, empty)

	svc, productRepo, reviewRepo, recorder := newCatalogFixture(t, false)
	productRepo.On("FindAllWithReviews", ctx).Return(eager, nil)

	out, err := svc.ListOptimized(ctx)
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, []float64{4.5, 5.0, 0}, []float64{out[0].AverageRating, out[1].AverageRating, out[2].AverageRating})
	assert.Equal(t, []int{2, 1, 0}, []int{out[0].ReviewCount, out[1].ReviewCount, out[2].ReviewCount})
	assert.Nil(t, out[2].Reviews)

	reviewRepo.AssertNotCalled(t, "FindByProductID", mock.Anything, mock.Anything)
	assert.Equal(t, 1, recorder.counts[metrics.OpListProductsOptimized])
}

func TestCatalogService_ListErrors(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("database is down")

	svc, productRepo, _, _ := newCatalogFixture(t, false)
	productRepo.On("FindAll", ctx).Return(nil, storeErr)
	productRepo.On("FindAllWithReviews", ctx).Return(nil, storeErr)

	n1, err := svc.ListWithN1(ctx)
	assert.ErrorIs(t, err, storeErr)
	assert.Nil(t, n1)

	optimized, err := svc.ListOptimized(ctx)
	assert.ErrorIs(t, err, storeErr)
	assert.Nil(t, optimized)
}

func TestCatalogService_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name               string
		strategy           FetchStrategy
		expectedRetrievals int
	}{
		{name: "Lazy", strategy: FetchLazy, expectedRetrievals: 3},
		{name: "Eager", strategy: FetchEager, expectedRetrievals: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shallow, reviews, eager := scenario()
			svc, productRepo, reviewRepo, recorder := newCatalogFixture(t, false)
			productRepo.On("FindAll", ctx).Return(shallow, nil).Maybe()
			productRepo.On("FindAllWithReviews", ctx).Return(eager, nil).Maybe()
			for id, rs := range reviews {
				reviewRepo.On("FindByProductID", ctx, id).Return(rs, nil).Maybe()
			}

			out, retrievals, err := svc.List(ctx, tt.strategy)
			require.NoError(t, err)
			require.Len(t, out, 2)

			assert.Equal(t, tt.expectedRetrievals, retrievals)
			assert.Equal(t, 4.5, out[0].AverageRating)
			assert.Len(t, out[0].Reviews, 2)
			assert.Equal(t, 1, recorder.counts[metrics.OpListProducts])
		})
	}

	t.Run("Store error", func(t *testing.T) {
		storeErr := errors.New("database is down")
		svc, productRepo, _, _ := newCatalogFixture(t, false)
		productRepo.On("FindAllWithReviews", ctx).Return(nil, storeErr)

		out, retrievals, err := svc.List(ctx, FetchEager)
		assert.ErrorIs(t, err, storeErr)
		assert.Nil(t, out)
		assert.Zero(t, retrievals)
	})
}

func TestCatalogService_ComparePerformance(t *testing.T) {
	tests := []struct {
		name          string
		warmup        bool
		expectedLazy  int
		expectedEager int
	}{
		{name: "Without warm-up", warmup: false, expectedLazy: 1, expectedEager: 1},
		{name: "With warm-up", warmup: true, expectedLazy: 2, expectedEager: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			shallow, reviews, eager := scenario()

			svc, productRepo, reviewRepo, recorder := newCatalogFixture(t, tt.warmup)
			productRepo.On("FindAll", ctx).Return(shallow, nil)
			productRepo.On("FindAllWithReviews", ctx).Return(eager, nil)
			for id, rs := range reviews {
				reviewRepo.On("FindByProductID", ctx, id).Return(rs, nil)
			}

			result, err := svc.ComparePerformance(ctx)
			require.NoError(t, err)

			assert.Equal(t, 2, result.N1ProductCount)
			assert.Equal(t, 2, result.OptimizedProductCount)
			assert.Equal(t, 3, result.N1Retrievals)
			assert.Equal(t, 1, result.OptimizedRetrievals)

			productRepo.AssertNumberOfCalls(t, "FindAll", tt.expectedLazy)
			productRepo.AssertNumberOfCalls(t, "FindAllWithReviews", tt.expectedEager)
			reviewRepo.AssertNumberOfCalls(t, "FindByProductID", 2*tt.expectedLazy)
			assert.Equal(t, 1, recorder.counts[metrics.OpComparePerformance])
		})
	}
}

func TestCatalogService_ComparePerformance_FrozenClock(t *testing.T) {
	ctx := context.Background()
	shallow, reviews, eager := scenario()

	svc, productRepo, reviewRepo, _ := newCatalogFixture(t, false)
	svc.now = stepClock(0)
	productRepo.On("FindAll", ctx).Return(shallow, nil)
	productRepo.On("FindAllWithReviews", ctx).Return(eager, nil)
	for id, rs := range reviews {
		reviewRepo.On("FindByProductID", ctx, id).Return(rs, nil)
	}

	result, err := svc.ComparePerformance(ctx)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), result.OptimizedExecutionTime)
	assert.Equal(t, 0.0, result.Improvement())
}

func TestCatalogService_ComparePerformance_Error(t *testing.T) {
	ctx := context.Background()
	shallow, reviews, _ := scenario()
	storeErr := errors.New("join failed")

	svc, productRepo, reviewRepo, _ := newCatalogFixture(t, false)
	productRepo.On("FindAll", ctx).Return(shallow, nil)
	productRepo.On("FindAllWithReviews", ctx).Return(nil, storeErr)
	for id, rs := range reviews {
		reviewRepo.On("FindByProductID", ctx, id).Return(rs, nil)
	}

	result, err := svc.ComparePerformance(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	assert.Nil(t, result)
}

func TestPerformanceComparison_Improvement(t *testing.T) {
	tests := []struct {
		name      string
		n1        time.Duration
		optimized time.Duration
		expected  float64
	}{
		{name: "Optimized twice as fast", n1: 200 * time.Millisecond, optimized: 100 * time.Millisecond, expected: 100},
		{name: "Equal durations", n1: 50 * time.Millisecond, optimized: 50 * time.Millisecond, expected: 0},
		{name: "Optimized slower", n1: 50 * time.Millisecond, optimized: 100 * time.Millisecond, expected: -50},
		{name: "Zero optimized time", n1: 120 * time.Millisecond, optimized: 0, expected: 0},
		{name: "Both zero", n1: 0, optimized: 0, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := PerformanceComparison{N1ExecutionTime: tt.n1, OptimizedExecutionTime: tt.optimized}
			assert.InDelta(t, tt.expected, c.Improvement(), 1e-9)
		})
	}
}
