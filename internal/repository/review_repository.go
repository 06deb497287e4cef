package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog-n1/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const insertReviewQuery = `
	INSERT INTO reviews (id, product_id, user_name, rating, comment, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)`

// reviewRepository implements the ReviewRepository interface using PostgreSQL.
type reviewRepository struct {
	db     DBTX
	logger zerolog.Logger
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(db DBTX, logger zerolog.Logger) ReviewRepository {
	return &reviewRepository{
		db:     db,
		logger: logger.With().Str("repository", "review").Logger(),
	}
}

// FindByProductID retrieves the reviews of a product, newest first.
func (r *reviewRepository) FindByProductID(ctx context.Context, productID uuid.UUID) ([]model.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews r
		WHERE r.product_id = $1
		ORDER BY r.created_at DESC, r.id`

	reviews, err := r.queryReviews(ctx, query, productID)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to query reviews of product")
		return nil, err
	}

	return reviews, nil
}

// FindByID retrieves a single review. Returns nil, nil when absent.
func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews r
		WHERE r.id = $1`

	var rv model.Review
	err := r.db.QueryRow(ctx, query, id).Scan(&rv.ID, &rv.ProductID, &rv.UserName, &rv.Rating, &rv.Comment, &rv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("review_id", id.String()).Msg("failed to query review")
		return nil, fmt.Errorf("failed to query review: %w", err)
	}

	return &rv, nil
}

// FindByRating retrieves all reviews with the given rating, newest first.
func (r *reviewRepository) FindByRating(ctx context.Context, rating int) ([]model.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews r
		WHERE r.rating = $1
		ORDER BY r.created_at DESC, r.id`

	return r.queryReviews(ctx, query, rating)
}

// FindByUserName retrieves all reviews written by a user, newest first.
func (r *reviewRepository) FindByUserName(ctx context.Context, userName string) ([]model.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews r
		WHERE r.user_name = $1
		ORDER BY r.created_at DESC, r.id`

	return r.queryReviews(ctx, query, userName)
}

// FindPositive retrieves reviews rated 4 or more, newest first.
func (r *reviewRepository) FindPositive(ctx context.Context) ([]model.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews r
		WHERE r.rating >= 4
		ORDER BY r.created_at DESC, r.id`

	return r.queryReviews(ctx, query)
}

// FindNegative retrieves reviews rated 2 or less, newest first.
func (r *reviewRepository) FindNegative(ctx context.Context) ([]model.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews r
		WHERE r.rating <= 2
		ORDER BY r.created_at DESC, r.id`

	return r.queryReviews(ctx, query)
}

// Create inserts a review and refreshes the parent's updated_at to the
// review's creation time in the same statement.
func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	query := `
		WITH inserted AS (
			INSERT INTO reviews (id, product_id, user_name, rating, comment, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING product_id
		)
		UPDATE products p SET updated_at = $6
		FROM inserted
		WHERE p.id = inserted.product_id`

	_, err := r.db.Exec(ctx, query,
		review.ID, review.ProductID, review.UserName, review.Rating, review.Comment, review.CreatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("review_id", review.ID.String()).
			Str("product_id", review.ProductID.String()).
			Msg("failed to create review")
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// Update persists the rating and comment of a review and sets the parent's
// updated_at to updatedAt.
func (r *reviewRepository) Update(ctx context.Context, review *model.Review, updatedAt time.Time) error {
	query := `
		WITH changed AS (
			UPDATE reviews SET rating = $2, comment = $3
			WHERE id = $1
			RETURNING product_id
		)
		UPDATE products p SET updated_at = $4
		FROM changed
		WHERE p.id = changed.product_id`

	tag, err := r.db.Exec(ctx, query, review.ID, review.Rating, review.Comment, updatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("review_id", review.ID.String()).Msg("failed to update review")
		return fmt.Errorf("failed to update review: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrReviewNotFound
	}

	return nil
}

// Delete removes a review and sets the parent's updated_at to updatedAt.
func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID, updatedAt time.Time) error {
	query := `
		WITH removed AS (
			DELETE FROM reviews
			WHERE id = $1
			RETURNING product_id
		)
		UPDATE products p SET updated_at = $2
		FROM removed
		WHERE p.id = removed.product_id`

	tag, err := r.db.Exec(ctx, query, id, updatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("review_id", id.String()).Msg("failed to delete review")
		return fmt.Errorf("failed to delete review: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrReviewNotFound
	}

	return nil
}

// CountByProductID returns the number of reviews of a product.
func (r *reviewRepository) CountByProductID(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE product_id = $1`, productID).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to count reviews")
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return count, nil
}

// AverageRatingByProductID returns the mean rating of a product, 0 when unreviewed.
func (r *reviewRepository) AverageRatingByProductID(ctx context.Context, productID uuid.UUID) (float64, error) {
	var avg float64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(AVG(rating), 0)::float8 FROM reviews WHERE product_id = $1`, productID).Scan(&avg)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to average ratings")
		return 0, fmt.Errorf("failed to average ratings: %w", err)
	}
	return avg, nil
}

// Statistics returns aggregate figures over all reviews.
func (r *reviewRepository) Statistics(ctx context.Context) (*model.ReviewStatistics, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(AVG(rating), 0)::float8,
			COUNT(*) FILTER (WHERE rating >= 4),
			COUNT(*) FILTER (WHERE rating <= 2)
		FROM reviews`

	var stats model.ReviewStatistics
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.TotalReviews, &stats.AverageRating, &stats.PositiveReviews, &stats.NegativeReviews)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query review statistics")
		return nil, fmt.Errorf("failed to query review statistics: %w", err)
	}

	return &stats, nil
}

// TopRatedProducts returns products with at least minReviews reviews ordered
// by average rating then review count.
func (r *reviewRepository) TopRatedProducts(ctx context.Context, minReviews, limit int) ([]model.ProductRating, error) {
	query := `
		SELECT product_id, AVG(rating)::float8 AS avg_rating, COUNT(*) AS review_count
		FROM reviews
		GROUP BY product_id
		HAVING COUNT(*) >= $1
		ORDER BY avg_rating DESC, review_count DESC, product_id
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, minReviews, limit)
	if err != nil {
		r.logger.Error().Err(err).Int("min_reviews", minReviews).Msg("failed to query top rated products")
		return nil, fmt.Errorf("failed to query top rated products: %w", err)
	}
	defer rows.Close()

	ratings := []model.ProductRating{}
	for rows.Next() {
		var pr model.ProductRating
		if err := rows.Scan(&pr.ProductID, &pr.AverageRating, &pr.ReviewCount); err != nil {
			return nil, fmt.Errorf("failed to scan product rating: %w", err)
		}
		ratings = append(ratings, pr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product ratings: %w", err)
	}

	return ratings, nil
}

func (r *reviewRepository) queryReviews(ctx context.Context, query string, args ...any) ([]model.Review, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query reviews")
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}

	return scanReviews(rows)
}
