package ports

import (
	"context"

	"github.com/spar-shoe/storefront-api/internal/core/domain"
)

// ProductFilter narrows catalog listings. Empty fields match everything.
type ProductFilter struct {
	Category string
	// Search matches name or description, case-insensitively.
	Search string
}

// ProductRepository defines the persistence contract for the catalog.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	Update(ctx context.Context, id string, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
