package repository

import (
	"context"
	"fmt"
	"time"

	"catalog-n1/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// DBTX is the subset of *pgxpool.Pool the repositories depend on.
// pgxmock pools satisfy it as well.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

const productColumns = `p.id, p.name, p.description, p.price, p.category, p.created_at, p.updated_at`

const reviewColumns = `r.id, r.product_id, r.user_name, r.rating, r.comment, r.created_at`

// productWithReviewColumns selects one row per (product, review) pair of a
// LEFT JOIN. Review columns are NULL for products without reviews.
const productWithReviewColumns = productColumns + `,
		r.id, r.user_name, r.rating, r.comment, r.created_at`

// productOrder is the listing order shared by every retrieval plan.
const productOrder = `p.created_at, p.id`

// scanProducts reads product rows selected with productColumns.
func scanProducts(rows pgx.Rows) ([]model.Product, error) {
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// scanReviews reads review rows selected with reviewColumns.
func scanReviews(rows pgx.Rows) ([]model.Review, error) {
	defer rows.Close()

	reviews := []model.Review{}
	for rows.Next() {
		var r model.Review
		if err := rows.Scan(&r.ID, &r.ProductID, &r.UserName, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}

// scanProductsWithReviews folds the rows of a product/review LEFT JOIN into
// products carrying their reviews. Rows must be ordered so that all rows of a
// product are adjacent; product order is preserved.
func scanProductsWithReviews(rows pgx.Rows) ([]model.Product, error) {
	defer rows.Close()

	products := []model.Product{}
	index := make(map[uuid.UUID]int)

	for rows.Next() {
		var (
			p               model.Product
			reviewID        *uuid.UUID
			reviewUserName  *string
			reviewRating    *int
			reviewComment   *string
			reviewCreatedAt *time.Time
		)

		err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.CreatedAt, &p.UpdatedAt,
			&reviewID, &reviewUserName, &reviewRating, &reviewComment, &reviewCreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product with reviews: %w", err)
		}

		i, seen := index[p.ID]
		if !seen {
			p.Reviews = []model.Review{}
			products = append(products, p)
			i = len(products) - 1
			index[p.ID] = i
		}

		if reviewID == nil {
			continue
		}

		review := model.Review{
			ID:        *reviewID,
			ProductID: p.ID,
		}
		if reviewUserName != nil {
			review.UserName = *reviewUserName
		}
		if reviewRating != nil {
			review.Rating = *reviewRating
		}
		if reviewComment != nil {
			review.Comment = *reviewComment
		}
		if reviewCreatedAt != nil {
			review.CreatedAt = *reviewCreatedAt
		}
		products[i].Reviews = append(products[i].Reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products with reviews: %w", err)
	}

	return products, nil
}

// decimalOrZero converts a nullable aggregate to a decimal.
func decimalOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
