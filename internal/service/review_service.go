package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog-n1/internal/model"
	"catalog-n1/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// reviewService implements ReviewService.
type reviewService struct {
	productRepo repository.ProductRepository
	reviewRepo  repository.ReviewRepository
	now         func() time.Time
	logger      zerolog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(
	productRepo repository.ProductRepository,
	reviewRepo repository.ReviewRepository,
	logger zerolog.Logger,
) ReviewService {
	return &reviewService{
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
		now:         func() time.Time { return time.Now().UTC() },
		logger:      logger.With().Str("service", "review").Logger(),
	}
}

// Add attaches a new review to an existing product. The product's
// updated-at moves to the review's creation time.
func (s *reviewService) Add(ctx context.Context, productID uuid.UUID, req *model.CreateReviewRequest) (*model.Review, error) {
	review, err := model.NewReview(req.UserName, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}

	if err := s.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}

	review.ProductID = productID
	review.CreatedAt = s.now()
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to add review: %w", err)
	}

	s.logger.Info().
		Str("review_id", review.ID.String()).
		Str("product_id", productID.String()).
		Int("rating", review.Rating).
		Msg("review added")

	return review, nil
}

// ListByProduct returns the reviews of an existing product, newest first.
func (s *reviewService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.Review, error) {
	if err := s.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return reviews, nil
}

// Update changes the rating and/or comment of a review and refreshes the
// product's updated-at.
func (s *reviewService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateReviewRequest) (*model.Review, error) {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	if review == nil {
		return nil, model.ErrReviewNotFound
	}

	if req.Rating != nil {
		if err := review.UpdateRating(*req.Rating); err != nil {
			return nil, err
		}
	}
	if req.Comment != nil {
		review.UpdateComment(*req.Comment)
	}

	if err := s.reviewRepo.Update(ctx, review, s.now()); err != nil {
		if errors.Is(err, model.ErrReviewNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	return review, nil
}

// Delete removes a review and refreshes the product's updated-at.
func (s *reviewService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.reviewRepo.Delete(ctx, id, s.now()); err != nil {
		if errors.Is(err, model.ErrReviewNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete review: %w", err)
	}

	s.logger.Info().Str("review_id", id.String()).Msg("review deleted")
	return nil
}

// Rating returns the review count and average rating of an existing
// product, aggregated by the store without loading the reviews.
func (s *reviewService) Rating(ctx context.Context, productID uuid.UUID) (*model.ProductRating, error) {
	if err := s.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}

	count, err := s.reviewRepo.CountByProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	avg, err := s.reviewRepo.AverageRatingByProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to average ratings: %w", err)
	}

	return &model.ProductRating{ProductID: productID, AverageRating: avg, ReviewCount: count}, nil
}

// FindByRating returns reviews with exactly the given rating.
func (s *reviewService) FindByRating(ctx context.Context, rating int) ([]model.Review, error) {
	if err := model.ValidateRating(rating); err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.FindByRating(ctx, rating)
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews by rating: %w", err)
	}
	return reviews, nil
}

// FindByUserName returns the reviews written by a user.
func (s *reviewService) FindByUserName(ctx context.Context, userName string) ([]model.Review, error) {
	reviews, err := s.reviewRepo.FindByUserName(ctx, userName)
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews by user: %w", err)
	}
	return reviews, nil
}

// FindPositive returns reviews rated 4 or more.
func (s *reviewService) FindPositive(ctx context.Context) ([]model.Review, error) {
	reviews, err := s.reviewRepo.FindPositive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find positive reviews: %w", err)
	}
	return reviews, nil
}

// FindNegative returns reviews rated 2 or less.
func (s *reviewService) FindNegative(ctx context.Context) ([]model.Review, error) {
	reviews, err := s.reviewRepo.FindNegative(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find negative reviews: %w", err)
	}
	return reviews, nil
}

func (s *reviewService) ensureProduct(ctx context.Context, productID uuid.UUID) error {
	exists, err := s.productRepo.Exists(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to check product")
		return fmt.Errorf("failed to check product: %w", err)
	}
	if !exists {
		return model.ErrProductNotFound
	}
	return nil
}
