package handler

import (
	"context"

	"catalog-n1/internal/model"
	"catalog-n1/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockCatalogService is a mock implementation of CatalogService.
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) responses(args mock.Arguments) ([]model.ProductResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProductResponse), args.Error(1)
}

func (m *MockCatalogService) ListWithN1(ctx context.Context) ([]model.ProductResponse, error) {
	return m.responses(m.Called(ctx))
}

func (m *MockCatalogService) ListOptimized(ctx context.Context) ([]model.ProductResponse, error) {
	return m.responses(m.Called(ctx))
}

func (m *MockCatalogService) List(ctx context.Context, strategy service.FetchStrategy) ([]model.ProductResponse, int, error) {
	args := m.Called(ctx, strategy)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]model.ProductResponse), args.Int(1), args.Error(2)
}

func (m *MockCatalogService) ComparePerformance(ctx context.Context) (*service.PerformanceComparison, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PerformanceComparison), args.Error(1)
}

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) product(args mock.Arguments) (*model.Product, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	return m.product(m.Called(ctx, req))
}

func (m *MockProductService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return m.product(m.Called(ctx, id))
}

func (m *MockProductService) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) UpdateDetails(ctx context.Context, id uuid.UUID, req *model.UpdateProductRequest) (*model.Product, error) {
	return m.product(m.Called(ctx, id, req))
}

func (m *MockProductService) UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) (*model.Product, error) {
	return m.product(m.Called(ctx, id, price))
}

func (m *MockProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductService) TopRated(ctx context.Context, minReviews, limit int) ([]model.ProductRating, error) {
	args := m.Called(ctx, minReviews, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProductRating), args.Error(1)
}

func (m *MockProductService) Statistics(ctx context.Context) (*model.StatisticsResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StatisticsResponse), args.Error(1)
}

// MockReviewService is a mock implementation of ReviewService.
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) review(args mock.Arguments) (*model.Review, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewService) reviews(args mock.Arguments) ([]model.Review, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewService) Add(ctx context.Context, productID uuid.UUID, req *model.CreateReviewRequest) (*model.Review, error) {
	return m.review(m.Called(ctx, productID, req))
}

func (m *MockReviewService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.Review, error) {
	return m.reviews(m.Called(ctx, productID))
}

func (m *MockReviewService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateReviewRequest) (*model.Review, error) {
	return m.review(m.Called(ctx, id, req))
}

func (m *MockReviewService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockReviewService) Rating(ctx context.Context, productID uuid.UUID) (*model.ProductRating, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductRating), args.Error(1)
}

func (m *MockReviewService) FindByRating(ctx context.Context, rating int) ([]model.Review, error) {
	return m.reviews(m.Called(ctx, rating))
}

func (m *MockReviewService) FindByUserName(ctx context.Context, userName string) ([]model.Review, error) {
	return m.reviews(m.Called(ctx, userName))
}

func (m *MockReviewService) FindPositive(ctx context.Context) ([]model.Review, error) {
	return m.reviews(m.Called(ctx))
}

func (m *MockReviewService) FindNegative(ctx context.Context) ([]model.Review, error) {
	return m.reviews(m.Called(ctx))
}
