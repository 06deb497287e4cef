package repository

import (
	"context"
	"testing"
	"time"

	"catalog-n1/internal/config"
	"catalog-n1/internal/database"
	"catalog-n1/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer with the catalog schema and
// returns a traced connection pool.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := database.NewPool(ctx, config.DatabaseConfig{
		URL:             connStr,
		MaxConnections:  5,
		MinConnections:  1,
		MaxConnLifetime: 5 * time.Minute,
	}, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, database.EnsureSchema(ctx, pool))

	t.Cleanup(func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	})

	return pool
}

// seedCatalog inserts products named after their index, each holding the
// given ratings, created one minute apart.
func seedCatalog(t *testing.T, repo ProductRepository, ratings ...[]int) []*model.Product {
	t.Helper()

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	products := make([]*model.Product, 0, len(ratings))

	for i, rs := range ratings {
		category := "Odd"
		if i%2 == 0 {
			category = "Even"
		}
		p, err := model.NewProduct("Product "+string(rune('A'+i)), "", decimal.NewFromInt(int64(10*(i+1))), category)
		require.NoError(t, err)
		p.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		p.UpdatedAt = p.CreatedAt

		for j, rating := range rs {
			r, err := model.NewReview("user-"+string(rune('a'+j)), rating, "")
			require.NoError(t, err)
			r.CreatedAt = p.CreatedAt.Add(time.Duration(j) * time.Second)
			p.AddReview(*r)
		}
		p.UpdatedAt = p.CreatedAt

		require.NoError(t, repo.Create(context.Background(), p))
		products = append(products, p)
	}

	return products
}

func TestRepositories_Container(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	products := NewProductRepository(pool, zerolog.Nop())
	reviews := NewReviewRepository(pool, zerolog.Nop())

	seeded := seedCatalog(t, products, []int{5, 4}, []int{5}, nil)

	t.Run("Shallow plan needs one statement per product for reviews", func(t *testing.T) {
		counter := &database.QueryCounter{}
		cctx := database.WithQueryCounter(ctx, counter)

		list, err := products.FindAll(cctx)
		require.NoError(t, err)
		require.Len(t, list, 3)

		for i := range list {
			rs, err := reviews.FindByProductID(cctx, list[i].ID)
			require.NoError(t, err)
			list[i].SetReviews(rs)
		}

		assert.Equal(t, int64(1+3), counter.Count())
		assert.Equal(t, []float64{4.5, 5.0, 0}, averages(list))
	})

	t.Run("Eager plan uses one statement", func(t *testing.T) {
		counter := &database.QueryCounter{}
		cctx := database.WithQueryCounter(ctx, counter)

		list, err := products.FindAllWithReviews(cctx)
		require.NoError(t, err)

		assert.Equal(t, int64(1), counter.Count())
		require.Len(t, list, 3)
		assert.Equal(t, []float64{4.5, 5.0, 0}, averages(list))
		assert.Equal(t, []uuid.UUID{seeded[0].ID, seeded[1].ID, seeded[2].ID},
			[]uuid.UUID{list[0].ID, list[1].ID, list[2].ID})
		assert.NotNil(t, list[2].Reviews)
		assert.Empty(t, list[2].Reviews)

		// Newest review first.
		assert.Equal(t, "user-b", list[0].Reviews[0].UserName)
	})

	t.Run("Find by ID with reviews", func(t *testing.T) {
		p, err := products.FindByIDWithReviews(ctx, seeded[0].ID)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, 2, p.ReviewCount())
		assert.True(t, decimal.NewFromInt(10).Equal(p.Price))

		missing, err := products.FindByIDWithReviews(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("Filters", func(t *testing.T) {
		even := "Even"
		byCategory, err := products.FindWithReviews(ctx, model.ProductFilter{Category: &even})
		require.NoError(t, err)
		assert.Len(t, byCategory, 2)

		minPrice, maxPrice := decimal.NewFromInt(15), decimal.NewFromInt(30)
		priced, err := products.FindWithReviews(ctx, model.ProductFilter{MinPrice: &minPrice, MaxPrice: &maxPrice})
		require.NoError(t, err)
		require.Len(t, priced, 2)

		minRating := 4.6
		rated, err := products.FindWithReviews(ctx, model.ProductFilter{MinRating: &minRating})
		require.NoError(t, err)
		require.Len(t, rated, 1)
		assert.Equal(t, seeded[1].ID, rated[0].ID)
		assert.True(t, rated[0].ReviewsLoaded())
	})

	t.Run("Statistics", func(t *testing.T) {
		ps, err := products.Statistics(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), ps.TotalProducts)
		assert.Equal(t, int64(2), ps.TotalCategories)
		assert.Equal(t, "20.00", ps.AveragePrice.StringFixed(2))

		rs, err := reviews.Statistics(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), rs.TotalReviews)
		assert.Equal(t, int64(3), rs.PositiveReviews)

		top, err := reviews.TopRatedProducts(ctx, 1, 5)
		require.NoError(t, err)
		require.Len(t, top, 2)
		assert.Equal(t, seeded[1].ID, top[0].ProductID)
	})

	t.Run("Review writes stamp the product", func(t *testing.T) {
		target := seeded[2]
		updatedAt := func() time.Time {
			p, err := products.FindByIDWithReviews(ctx, target.ID)
			require.NoError(t, err)
			require.NotNil(t, p)
			return p.UpdatedAt
		}
		assert.True(t, updatedAt().Equal(target.CreatedAt))

		review, err := model.NewReview("stamper", 3, "")
		require.NoError(t, err)
		review.ProductID = target.ID
		review.CreatedAt = target.CreatedAt.Add(time.Hour)
		require.NoError(t, reviews.Create(ctx, review))
		assert.True(t, updatedAt().Equal(review.CreatedAt))

		require.NoError(t, review.UpdateRating(4))
		edited := review.CreatedAt.Add(time.Hour)
		require.NoError(t, reviews.Update(ctx, review, edited))
		assert.True(t, updatedAt().Equal(edited))

		removed := edited.Add(time.Hour)
		require.NoError(t, reviews.Delete(ctx, review.ID, removed))
		assert.True(t, updatedAt().Equal(removed))

		assert.ErrorIs(t, reviews.Delete(ctx, review.ID, removed.Add(time.Hour)), model.ErrReviewNotFound)
		assert.True(t, updatedAt().Equal(removed))

		avg, err := reviews.AverageRatingByProductID(ctx, target.ID)
		require.NoError(t, err)
		assert.Zero(t, avg)
	})

	t.Run("Delete cascades to reviews", func(t *testing.T) {
		require.NoError(t, products.Delete(ctx, seeded[0].ID))

		count, err := reviews.CountByProductID(ctx, seeded[0].ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)

		exists, err := products.Exists(ctx, seeded[0].ID)
		require.NoError(t, err)
		assert.False(t, exists)

		assert.ErrorIs(t, products.Delete(ctx, seeded[0].ID), model.ErrProductNotFound)
	})
}

func averages(products []model.Product) []float64 {
	out := make([]float64, len(products))
	for i := range products {
		out[i] = products[i].AverageRating()
	}
	return out
}
