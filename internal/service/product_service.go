package service

import (
	"context"
	"errors"
	"fmt"

	"catalog-n1/internal/model"
	"catalog-n1/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	defaultTopRatedLimit = 10
	maxTopRatedLimit     = 100
)

var (
	errInvalidPriceRange = model.NewDomainError(model.ErrCodeInvalidParameter, "min_price must not exceed max_price")
	errInvalidMinRating  = model.NewDomainError(model.ErrCodeInvalidParameter, "min_rating must be between 0 and 5")
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	reviewRepo  repository.ReviewRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	productRepo repository.ProductRepository,
	reviewRepo repository.ReviewRepository,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// Create creates a product, together with any initial reviews.
func (s *productService) Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	if req.Price == nil {
		return nil, model.ErrMissingPrice
	}

	product, err := model.NewProduct(req.Name, req.Description, *req.Price, req.Category)
	if err != nil {
		return nil, err
	}

	for _, r := range req.Reviews {
		review, err := model.NewReview(r.UserName, r.Rating, r.Comment)
		if err != nil {
			return nil, err
		}
		product.AddReview(*review)
	}
	// A new product has not been updated yet.
	product.UpdatedAt = product.CreatedAt

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("product_id", product.ID.String()).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Str("product_id", product.ID.String()).
		Int("review_count", product.ReviewCount()).
		Msg("product created successfully")

	return product, nil
}

// GetByID retrieves a product with its reviews.
func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByIDWithReviews(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Str("product_id", id.String()).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// List retrieves the products matching filter with their reviews.
func (s *productService) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return nil, errInvalidPriceRange
	}
	if filter.MinRating != nil && (*filter.MinRating < 0 || *filter.MinRating > model.MaxRating) {
		return nil, errInvalidMinRating
	}

	products, err := s.productRepo.FindWithReviews(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	s.logger.Debug().Int("count", len(products)).Msg("listed products")

	return products, nil
}

// UpdateDetails changes name, description and category.
func (s *productService) UpdateDetails(ctx context.Context, id uuid.UUID, req *model.UpdateProductRequest) (*model.Product, error) {
	product, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	product.UpdateDetails(req.Name, req.Description, req.Category)

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, s.wrapWrite(err, id, "failed to update product")
	}

	return s.GetByID(ctx, id)
}

// UpdatePrice changes the price of a product.
func (s *productService) UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) (*model.Product, error) {
	product, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.UpdatePrice(price); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, s.wrapWrite(err, id, "failed to update price")
	}

	s.logger.Info().
		Str("product_id", id.String()).
		Str("price", price.StringFixed(2)).
		Msg("product price updated")

	return s.GetByID(ctx, id)
}

// Delete removes a product and its reviews.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return s.wrapWrite(err, id, "failed to delete product")
	}

	s.logger.Info().Str("product_id", id.String()).Msg("product deleted")
	return nil
}

// TopRated returns products with at least minReviews reviews, best first.
func (s *productService) TopRated(ctx context.Context, minReviews, limit int) ([]model.ProductRating, error) {
	if minReviews < 1 {
		minReviews = 1
	}
	if limit <= 0 {
		limit = defaultTopRatedLimit
	}
	if limit > maxTopRatedLimit {
		limit = maxTopRatedLimit
	}

	ratings, err := s.reviewRepo.TopRatedProducts(ctx, minReviews, limit)
	if err != nil {
		s.logger.Error().Err(err).Int("min_reviews", minReviews).Msg("failed to get top rated products")
		return nil, fmt.Errorf("failed to get top rated products: %w", err)
	}

	return ratings, nil
}

// Statistics summarises products and reviews.
func (s *productService) Statistics(ctx context.Context) (*model.StatisticsResponse, error) {
	products, err := s.productRepo.Statistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get product statistics: %w", err)
	}

	reviews, err := s.reviewRepo.Statistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get review statistics: %w", err)
	}

	stats := model.NewStatisticsResponse(*products, *reviews)
	return &stats, nil
}

// load fetches a product without reviews, mapping absence to ErrProductNotFound.
func (s *productService) load(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

func (s *productService) wrapWrite(err error, id uuid.UUID, msg string) error {
	if errors.Is(err, model.ErrProductNotFound) {
		return err
	}
	s.logger.Error().Err(err).Str("product_id", id.String()).Msg(msg)
	return fmt.Errorf("%s: %w", msg, err)
}
