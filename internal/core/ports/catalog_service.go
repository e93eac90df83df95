package ports

import (
	"context"

	"github.com/spar-shoe/storefront-api/internal/core/domain"
)

// CatalogService exposes the product catalog. Reads are public; mutations
// are only reachable through the admin-gated routes.
type CatalogService interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	Update(ctx context.Context, id string, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
