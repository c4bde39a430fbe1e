package ports

import (
	"context"

	"github.com/jcmexdev/ecommerce-services/internal/api-gateway/core/domain/entity"
)

// CatalogService is the gateway's view of the catalog backend. Errors are
// classified with apperr; an unknown id is apperr.KindNotFound.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
	CreateProduct(ctx context.Context, p entity.NewProduct) (*entity.Product, error)
}
