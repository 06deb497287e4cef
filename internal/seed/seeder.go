package seed

import (
	"context"
	"fmt"
	"math/rand/v2"

	"catalog-n1/internal/config"
	"catalog-n1/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const insertWorkers = 4

// ProductStore is the part of the product repository the seeder writes to.
type ProductStore interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, product *model.Product) error
}

// Seeder fills an empty catalogue from a seed file, or from generated data
// when the file cannot be read.
type Seeder struct {
	cfg    config.SeedConfig
	loader Loader
	store  ProductStore
	logger zerolog.Logger
}

// NewSeeder creates a new seeder.
func NewSeeder(cfg config.SeedConfig, loader Loader, store ProductStore, logger zerolog.Logger) *Seeder {
	return &Seeder{
		cfg:    cfg,
		loader: loader,
		store:  store,
		logger: logger.With().Str("component", "seeder").Logger(),
	}
}

// Seed inserts the seed data and returns the number of products created.
// Nothing is written when seeding is disabled or the catalogue already has
// products.
func (s *Seeder) Seed(ctx context.Context) (int, error) {
	if !s.cfg.Enabled {
		return 0, nil
	}

	count, err := s.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		s.logger.Info().Int64("products", count).Msg("catalogue not empty, skipping seed")
		return 0, nil
	}

	records, err := s.records(ctx)
	if err != nil {
		return 0, err
	}

	products := make([]*model.Product, len(records))
	for i, rec := range records {
		if products[i], err = rec.Product(); err != nil {
			return 0, fmt.Errorf("invalid seed record %d: %w", i, err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(insertWorkers)
	for _, p := range products {
		g.Go(func() error {
			if err := s.store.Create(gctx, p); err != nil {
				return fmt.Errorf("failed to insert %q: %w", p.Name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	s.logger.Info().Int("products", len(products)).Msg("catalogue seeded")
	return len(products), nil
}

func (s *Seeder) records(ctx context.Context) ([]Record, error) {
	if s.cfg.File != "" && s.loader != nil {
		records, err := s.loader.Load(ctx, s.cfg.File)
		if err == nil {
			return records, nil
		}
		if s.cfg.GenerateProducts == 0 {
			return nil, fmt.Errorf("failed to load seed data: %w", err)
		}
		s.logger.Warn().Err(err).Msg("seed file unavailable, generating catalogue")
	}

	seed := uint64(s.cfg.RandomSeed)
	rng := rand.New(rand.NewPCG(seed, seed))
	return Generate(s.cfg.GenerateProducts, s.cfg.GenerateMaxReviews, rng), nil
}
