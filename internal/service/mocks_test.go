package service

import (
	"context"
	"time"

	"catalog-n1/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) products(args mock.Arguments) ([]model.Product, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) product(args mock.Arguments) (*model.Product, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	return m.products(m.Called(ctx))
}

func (m *MockProductRepository) FindAllWithReviews(ctx context.Context) ([]model.Product, error) {
	return m.products(m.Called(ctx))
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return m.product(m.Called(ctx, id))
}

func (m *MockProductRepository) FindByIDWithReviews(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return m.product(m.Called(ctx, id))
}

func (m *MockProductRepository) FindWithReviews(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	return m.products(m.Called(ctx, filter))
}

func (m *MockProductRepository) Create(ctx context.Context, product *model.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *model.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Statistics(ctx context.Context) (*model.ProductStatistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductStatistics), args.Error(1)
}

// MockReviewRepository is a mock implementation of ReviewRepository.
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) reviews(args mock.Arguments) ([]model.Review, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewRepository) FindByProductID(ctx context.Context, productID uuid.UUID) ([]model.Review, error) {
	return m.reviews(m.Called(ctx, productID))
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewRepository) FindByRating(ctx context.Context, rating int) ([]model.Review, error) {
	return m.reviews(m.Called(ctx, rating))
}

func (m *MockReviewRepository) FindByUserName(ctx context.Context, userName string) ([]model.Review, error) {
	return m.reviews(m.Called(ctx, userName))
}

func (m *MockReviewRepository) FindPositive(ctx context.Context) ([]model.Review, error) {
	return m.reviews(m.Called(ctx))
}

func (m *MockReviewRepository) FindNegative(ctx context.Context) ([]model.Review, error) {
	return m.reviews(m.Called(ctx))
}

func (m *MockReviewRepository) Create(ctx context.Context, review *model.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepository) Update(ctx context.Context, review *model.Review, updatedAt time.Time) error {
	return m.Called(ctx, review, updatedAt).Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uuid.UUID, updatedAt time.Time) error {
	return m.Called(ctx, id, updatedAt).Error(0)
}

func (m *MockReviewRepository) CountByProductID(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) AverageRatingByProductID(ctx context.Context, productID uuid.UUID) (float64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockReviewRepository) Statistics(ctx context.Context) (*model.ReviewStatistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReviewStatistics), args.Error(1)
}

func (m *MockReviewRepository) TopRatedProducts(ctx context.Context, minReviews, limit int) ([]model.ProductRating, error) {
	args := m.Called(ctx, minReviews, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProductRating), args.Error(1)
}

// recorderStub counts instrumentation calls per operation.
type recorderStub struct {
	counts    map[string]int
	durations map[string]int
}

func newRecorderStub() *recorderStub {
	return &recorderStub{counts: map[string]int{}, durations: map[string]int{}}
}

func (r *recorderStub) ObserveDuration(operation string, _ time.Duration) {
	r.durations[operation]++
}

func (r *recorderStub) IncCount(operation string) {
	r.counts[operation]++
}
