package repository

import (
	"context"
	"time"

	"catalog-n1/internal/model"

	"github.com/google/uuid"
)

// ProductReader is the minimal read boundary the fetch strategies run against.
type ProductReader interface {
	// FindAll retrieves all products without their reviews (Reviews is nil).
	FindAll(ctx context.Context) ([]model.Product, error)

	// FindAllWithReviews retrieves all products with reviews populated by a
	// single joined query.
	FindAllWithReviews(ctx context.Context) ([]model.Product, error)
}

// ReviewReader loads the reviews of one product.
type ReviewReader interface {
	// FindByProductID retrieves the reviews of a product, newest first.
	FindByProductID(ctx context.Context, productID uuid.UUID) ([]model.Review, error)
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	ProductReader

	// FindByID retrieves a single product by its ID without reviews.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// FindByIDWithReviews retrieves a single product with its reviews in one query.
	FindByIDWithReviews(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// FindWithReviews retrieves products matching filter with reviews in one query.
	FindWithReviews(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// Create inserts a product and any reviews it holds in one transaction.
	Create(ctx context.Context, product *model.Product) error

	// Update persists the scalar fields of an existing product.
	// Returns model.ErrProductNotFound when no row matches.
	Update(ctx context.Context, product *model.Product) error

	// Delete removes a product and, by cascade, its reviews.
	// Returns model.ErrProductNotFound when no row matches.
	Delete(ctx context.Context, id uuid.UUID) error

	// Exists reports whether a product with the given ID exists.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// Count returns the total number of products.
	Count(ctx context.Context) (int64, error)

	// Statistics returns aggregate figures over the whole catalogue.
	Statistics(ctx context.Context) (*model.ProductStatistics, error)
}

// ReviewRepository defines the interface for review data access operations.
type ReviewRepository interface {
	ReviewReader

	// FindByID retrieves a single review. Returns nil, nil when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error)

	// FindByRating retrieves all reviews with the given rating, newest first.
	FindByRating(ctx context.Context, rating int) ([]model.Review, error)

	// FindByUserName retrieves all reviews written by a user, newest first.
	FindByUserName(ctx context.Context, userName string) ([]model.Review, error)

	// FindPositive retrieves reviews rated 4 or more, newest first.
	FindPositive(ctx context.Context) ([]model.Review, error)

	// FindNegative retrieves reviews rated 2 or less, newest first.
	FindNegative(ctx context.Context) ([]model.Review, error)

	// Create inserts a review. The parent product's updated_at becomes the
	// review's CreatedAt.
	Create(ctx context.Context, review *model.Review) error

	// Update persists the rating and comment of a review and stamps the
	// parent product with updatedAt.
	// Returns model.ErrReviewNotFound when no row matches.
	Update(ctx context.Context, review *model.Review, updatedAt time.Time) error

	// Delete removes a review and stamps the parent product with updatedAt.
	// Returns model.ErrReviewNotFound when no row matches.
	Delete(ctx context.Context, id uuid.UUID, updatedAt time.Time) error

	// CountByProductID returns the number of reviews of a product.
	CountByProductID(ctx context.Context, productID uuid.UUID) (int64, error)

	// AverageRatingByProductID returns the mean rating of a product, 0 when unreviewed.
	AverageRatingByProductID(ctx context.Context, productID uuid.UUID) (float64, error)

	// Statistics returns aggregate figures over all reviews.
	Statistics(ctx context.Context) (*model.ReviewStatistics, error)

	// TopRatedProducts returns products with at least minReviews reviews
	// ordered by average rating then review count.
	TopRatedProducts(ctx context.Context, minReviews, limit int) ([]model.ProductRating, error)
}
