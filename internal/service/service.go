package service

import (
	"context"

	"catalog-n1/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogService lists the catalogue through either retrieval plan and
// compares them.
type CatalogService interface {
	// ListWithN1 loads products and then the reviews of each product with a
	// separate call. Kept deliberately for comparison.
	ListWithN1(ctx context.Context) ([]model.ProductResponse, error)

	// ListOptimized loads products and reviews with a single joined call.
	ListOptimized(ctx context.Context) ([]model.ProductResponse, error)

	// List lists the catalogue with the given plan and reports how many
	// store calls it took.
	List(ctx context.Context, strategy FetchStrategy) ([]model.ProductResponse, int, error)

	// ComparePerformance times both plans against the current data set.
	ComparePerformance(ctx context.Context) (*PerformanceComparison, error)
}

// ProductService defines operations for product management.
type ProductService interface {
	// Create creates a product, together with any initial reviews.
	Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error)

	// GetByID retrieves a product with its reviews.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// List retrieves the products matching filter with their reviews.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// UpdateDetails changes name, description and category.
	UpdateDetails(ctx context.Context, id uuid.UUID, req *model.UpdateProductRequest) (*model.Product, error)

	// UpdatePrice changes the price of a product.
	UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) (*model.Product, error)

	// Delete removes a product and its reviews.
	Delete(ctx context.Context, id uuid.UUID) error

	// TopRated returns products with at least minReviews reviews, best first.
	TopRated(ctx context.Context, minReviews, limit int) ([]model.ProductRating, error)

	// Statistics summarises products and reviews.
	Statistics(ctx context.Context) (*model.StatisticsResponse, error)
}

// ReviewService defines operations for review management.
type ReviewService interface {
	// Add attaches a new review to an existing product.
	Add(ctx context.Context, productID uuid.UUID, req *model.CreateReviewRequest) (*model.Review, error)

	// ListByProduct returns the reviews of an existing product, newest first.
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.Review, error)

	// Update changes the rating and/or comment of a review.
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateReviewRequest) (*model.Review, error)

	// Delete removes a review.
	Delete(ctx context.Context, id uuid.UUID) error

	// Rating returns the store-side review count and average of a product.
	Rating(ctx context.Context, productID uuid.UUID) (*model.ProductRating, error)

	// FindByRating returns reviews with exactly the given rating.
	FindByRating(ctx context.Context, rating int) ([]model.Review, error)

	// FindByUserName returns the reviews written by a user.
	FindByUserName(ctx context.Context, userName string) ([]model.Review, error)

	// FindPositive returns reviews rated 4 or more.
	FindPositive(ctx context.Context) ([]model.Review, error)

	// FindNegative returns reviews rated 2 or less.
	FindNegative(ctx context.Context) ([]model.Review, error)
}
