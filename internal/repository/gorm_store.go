package repository

import (
	"context"
	"fmt"
	"time"

	"catalog-n1/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type productRecord struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name        string          `gorm:"size:255;not null"`
	Description string          `gorm:"size:1000;not null;default:''"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Category    string          `gorm:"size:100;not null;default:'';index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (productRecord) TableName() string { return "products" }

type reviewRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserName  string    `gorm:"size:100;not null"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"size:2000;not null;default:''"`
	CreatedAt time.Time
}

func (reviewRecord) TableName() string { return "reviews" }

// productReviewRow is one row of the product/review LEFT JOIN.
type productReviewRow struct {
	productRecord
	ReviewID        *uuid.UUID
	ReviewUserName  *string
	ReviewRating    *int
	ReviewComment   *string
	ReviewCreatedAt *time.Time
}

// GormCatalogStore serves the fetch strategies through gorm.
type GormCatalogStore struct {
	db     *gorm.DB
	logger zerolog.Logger
}

var (
	_ ProductReader = (*GormCatalogStore)(nil)
	_ ReviewReader  = (*GormCatalogStore)(nil)
)

// NewGormCatalogStore creates a gorm-backed catalog store.
func NewGormCatalogStore(db *gorm.DB, logger zerolog.Logger) *GormCatalogStore {
	return &GormCatalogStore{
		db:     db,
		logger: logger.With().Str("repository", "gorm_catalog").Logger(),
	}
}

// FindAll retrieves all products without their reviews.
func (s *GormCatalogStore) FindAll(ctx context.Context) ([]model.Product, error) {
	var records []productRecord
	if err := s.db.WithContext(ctx).Order("created_at, id").Find(&records).Error; err != nil {
		s.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	products := make([]model.Product, len(records))
	for i, rec := range records {
		products[i] = rec.toModel()
	}
	return products, nil
}

// FindAllWithReviews retrieves all products and their reviews with one joined query.
func (s *GormCatalogStore) FindAllWithReviews(ctx context.Context) ([]model.Product, error) {
	var rows []productReviewRow
	err := s.db.WithContext(ctx).
		Table("products AS p").
		Select(`p.id, p.name, p.description, p.price, p.category, p.created_at, p.updated_at,
			r.id AS review_id, r.user_name AS review_user_name, r.rating AS review_rating,
			r.comment AS review_comment, r.created_at AS review_created_at`).
		Joins("LEFT JOIN reviews AS r ON r.product_id = p.id").
		Order("p.created_at, p.id, r.created_at DESC, r.id").
		Find(&rows).Error
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to query products with reviews")
		return nil, fmt.Errorf("failed to query products with reviews: %w", err)
	}

	products := []model.Product{}
	index := make(map[uuid.UUID]int)
	for _, row := range rows {
		i, seen := index[row.ID]
		if !seen {
			p := row.toModel()
			p.Reviews = []model.Review{}
			products = append(products, p)
			i = len(products) - 1
			index[row.ID] = i
		}
		if row.ReviewID == nil {
			continue
		}
		products[i].Reviews = append(products[i].Reviews, row.review())
	}

	return products, nil
}

// FindByProductID retrieves the reviews of a product, newest first.
func (s *GormCatalogStore) FindByProductID(ctx context.Context, productID uuid.UUID) ([]model.Review, error) {
	var records []reviewRecord
	err := s.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC, id").
		Find(&records).Error
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to query reviews of product")
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}

	reviews := make([]model.Review, len(records))
	for i, rec := range records {
		reviews[i] = rec.toModel()
	}
	return reviews, nil
}

func (r productRecord) toModel() model.Product {
	return model.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r reviewRecord) toModel() model.Review {
	return model.Review{
		ID:        r.ID,
		ProductID: r.ProductID,
		UserName:  r.UserName,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func (row productReviewRow) review() model.Review {
	review := model.Review{ID: *row.ReviewID, ProductID: row.ID}
	if row.ReviewUserName != nil {
		review.UserName = *row.ReviewUserName
	}
	if row.ReviewRating != nil {
		review.Rating = *row.ReviewRating
	}
	if row.ReviewComment != nil {
		review.Comment = *row.ReviewComment
	}
	if row.ReviewCreatedAt != nil {
		review.CreatedAt = *row.ReviewCreatedAt
	}
	return review
}
