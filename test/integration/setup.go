package integration

import (
	"context"
	"testing"
	"time"

	"catalog-n1/internal/config"
	"catalog-n1/internal/database"
	"catalog-n1/internal/model"
	"catalog-n1/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container with the catalogue schema
// and a traced connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := database.NewPool(ctx, config.DatabaseConfig{
		URL:             connStr,
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 5 * time.Minute,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := database.EnsureSchema(ctx, pool); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedCatalog inserts one product per ratings slice, one minute apart, and
// returns them in creation order.
func SeedCatalog(t *testing.T, pool *pgxpool.Pool, ratings ...[]int) []*model.Product {
	t.Helper()

	ctx := context.Background()
	repo := repository.NewProductRepository(pool, zerolog.Nop())
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	products := make([]*model.Product, 0, len(ratings))
	for i, rs := range ratings {
		p, err := model.NewProduct(
			"Test Product "+string(rune('1'+i)), "integration", decimal.NewFromInt(int64(10*(i+1))), "Category A")
		if err != nil {
			t.Fatalf("failed to build product: %v", err)
		}
		p.CreatedAt = base.Add(time.Duration(i) * time.Minute)

		for j, rating := range rs {
			r, err := model.NewReview("reviewer", rating, "")
			if err != nil {
				t.Fatalf("failed to build review: %v", err)
			}
			r.CreatedAt = p.CreatedAt.Add(time.Duration(j) * time.Second)
			p.AddReview(*r)
		}
		p.UpdatedAt = p.CreatedAt

		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("failed to seed product %d: %v", i, err)
		}
		products = append(products, p)
	}

	return products
}

// CleanupDB removes all catalogue data; reviews go with their products.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	if _, err := pool.Exec(context.Background(), "TRUNCATE products CASCADE"); err != nil {
		t.Logf("failed to clean catalogue: %v", err)
	}
}
