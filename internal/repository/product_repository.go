package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog-n1/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	db     DBTX
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(db DBTX, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		db:     db,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// FindAll retrieves all products without their reviews.
func (r *productRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		ORDER BY ` + productOrder

	products, err := r.queryProducts(ctx, query)
	if err != nil {
		return nil, err
	}

	// Reviews stay unloaded: callers must fetch them per product.
	for i := range products {
		products[i].Reviews = nil
	}

	return products, nil
}

// FindAllWithReviews retrieves all products and their reviews in a single query.
func (r *productRepository) FindAllWithReviews(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT ` + productWithReviewColumns + `
		FROM products p
		LEFT JOIN reviews r ON r.product_id = p.id
		ORDER BY ` + productOrder + `, r.created_at DESC, r.id`

	return r.queryProductsWithReviews(ctx, query)
}

// FindByID retrieves a single product by its ID without reviews.
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		WHERE p.id = $1`

	var p model.Product
	err := r.db.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// FindByIDWithReviews retrieves a single product with its reviews in one query.
func (r *productRepository) FindByIDWithReviews(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := `
		SELECT ` + productWithReviewColumns + `
		FROM products p
		LEFT JOIN reviews r ON r.product_id = p.id
		WHERE p.id = $1
		ORDER BY r.created_at DESC, r.id`

	products, err := r.queryProductsWithReviews(ctx, query, id)
	if err != nil {
		return nil, err
	}

	if len(products) == 0 {
		r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
		return nil, nil
	}

	return &products[0], nil
}

// FindWithReviews retrieves the products matching filter together with their
// reviews in one query.
func (r *productRepository) FindWithReviews(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	var (
		conditions []string
		args       []any
	)

	if filter.Category != nil {
		args = append(args, *filter.Category)
		conditions = append(conditions, fmt.Sprintf("p.category = $%d", len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		conditions = append(conditions, fmt.Sprintf("p.price >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		conditions = append(conditions, fmt.Sprintf("p.price <= $%d", len(args)))
	}
	if filter.MinRating != nil {
		args = append(args, *filter.MinRating)
		conditions = append(conditions, fmt.Sprintf(
			"(SELECT AVG(ar.rating) FROM reviews ar WHERE ar.product_id = p.id) >= $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := `
		SELECT ` + productWithReviewColumns + `
		FROM products p
		LEFT JOIN reviews r ON r.product_id = p.id
		` + where + `
		ORDER BY ` + productOrder + `, r.created_at DESC, r.id`

	return r.queryProductsWithReviews(ctx, query, args...)
}

// Create inserts a product and any reviews it holds in one transaction.
func (r *productRepository) Create(ctx context.Context, product *model.Product) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				r.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	query := `
		INSERT INTO products (id, name, description, price, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = tx.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Price,
		product.Category, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID.String()).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	if len(product.Reviews) > 0 {
		batch := &pgx.Batch{}
		for _, review := range product.Reviews {
			batch.Queue(insertReviewQuery,
				review.ID, product.ID, review.UserName, review.Rating, review.Comment, review.CreatedAt)
		}

		results := tx.SendBatch(ctx, batch)
		for i := range product.Reviews {
			if _, err = results.Exec(); err != nil {
				_ = results.Close()
				r.logger.Error().
					Err(err).
					Str("product_id", product.ID.String()).
					Str("review_id", product.Reviews[i].ID.String()).
					Msg("failed to create review")
				return fmt.Errorf("failed to create review: %w", err)
			}
		}
		if err = results.Close(); err != nil {
			return fmt.Errorf("failed to create reviews: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID.String()).Msg("failed to commit transaction")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().
		Str("product_id", product.ID.String()).
		Int("review_count", len(product.Reviews)).
		Msg("product created successfully")

	return nil
}

// Update persists the scalar fields of an existing product.
func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, category = $5, updated_at = $6
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Price, product.Category, product.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID.String()).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

// Delete removes a product; its reviews are removed by the foreign key cascade.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

// Exists reports whether a product with the given ID exists.
func (r *productRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to check product existence")
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return exists, nil
}

// Count returns the total number of products.
func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// Statistics returns aggregate figures over the whole catalogue.
func (r *productRepository) Statistics(ctx context.Context) (*model.ProductStatistics, error) {
	query := `
		SELECT COUNT(*), COUNT(DISTINCT category), AVG(price), MIN(price), MAX(price)
		FROM products`

	var (
		stats         model.ProductStatistics
		avg, min, max *decimal.Decimal
	)
	err := r.db.QueryRow(ctx, query).Scan(&stats.TotalProducts, &stats.TotalCategories, &avg, &min, &max)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query product statistics")
		return nil, fmt.Errorf("failed to query product statistics: %w", err)
	}

	stats.AveragePrice = decimalOrZero(avg).Round(2)
	stats.MinPrice = decimalOrZero(min)
	stats.MaxPrice = decimalOrZero(max)

	return &stats, nil
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	products, err := scanProducts(rows)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to read product rows")
		return nil, err
	}

	return products, nil
}

func (r *productRepository) queryProductsWithReviews(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products with reviews")
		return nil, fmt.Errorf("failed to query products with reviews: %w", err)
	}

	products, err := scanProductsWithReviews(rows)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to read product rows")
		return nil, err
	}

	return products, nil
}
