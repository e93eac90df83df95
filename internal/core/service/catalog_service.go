package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/spar-shoe/storefront-api/internal/core/domain"
	"github.com/spar-shoe/storefront-api/internal/core/ports"
)

// ListingCache caches catalog listings keyed by filter. A cache failure is
// never fatal; the service falls back to the repository and logs a warning.
type ListingCache interface {
	GetListing(ctx context.Context, filter ports.ProductFilter) ([]domain.Product, bool, error)
	SetListing(ctx context.Context, filter ports.ProductFilter, products []domain.Product) error
	Invalidate(ctx context.Context) error
}

// CatalogService implements product CRUD and search. It exists to give the
// authorization gate something to protect: reads are public, every mutation
// goes through the admin-gated routes and busts the listing cache.
type CatalogService struct {
	repo  ports.ProductRepository
	cache ListingCache
	log   zerolog.Logger
	now   func() time.Time
}

func NewCatalogService(repo ports.ProductRepository, cache ListingCache, log zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, cache: cache, log: log, now: time.Now}
}

func (s *CatalogService) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if strings.TrimSpace(product.Name) == "" || product.Price <= 0 {
		return nil, domain.ErrValidation
	}

	now := s.now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, err
	}

	s.bustCache(ctx)
	s.log.Info().Str("product_id", created.ID).Str("category", created.Category).Msg("product created")
	return created, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CatalogService) List(ctx context.Context, filter ports.ProductFilter) ([]domain.Product, error) {
	if s.cache != nil {
		cached, hit, err := s.cache.GetListing(ctx, filter)
		if err != nil {
			s.log.Warn().Err(err).Msg("listing cache read failed, falling back to store")
		} else if hit {
			return cached, nil
		}
	}

	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetListing(ctx, filter, products); err != nil {
			s.log.Warn().Err(err).Msg("listing cache write failed")
		}
	}
	return products, nil
}

func (s *CatalogService) Update(ctx context.Context, id string, product *domain.Product) (*domain.Product, error) {
	if strings.TrimSpace(product.Name) == "" || product.Price <= 0 {
		return nil, domain.ErrValidation
	}

	product.UpdatedAt = s.now().UTC()
	updated, err := s.repo.Update(ctx, id, product)
	if err != nil {
		return nil, err
	}

	s.bustCache(ctx)
	s.log.Info().Str("product_id", id).Msg("product updated")
	return updated, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.bustCache(ctx)
	s.log.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

func (s *CatalogService) bustCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("listing cache invalidation failed")
	}
}
