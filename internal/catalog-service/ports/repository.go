package ports

import (
	"context"

	"github.com/jcmexdev/ecommerce-services/internal/catalog-service/domain"
)

// ProductRepository is the catalog's record store. Get returns
// domain.ErrProductNotFound when no record has the id.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
}
