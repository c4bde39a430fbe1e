package ports

import (
	"context"

	"github.com/jcmexdev/ecommerce-services/internal/order-service/domain"
)

// OrderRepository is the order record store. Get returns
// domain.ErrOrderNotFound when no record has the id.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	Get(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
}

// ProductSnapshot is what an order needs to know about a product at the
// moment it is placed.
type ProductSnapshot struct {
	ID    string
	Name  string
	Price float64
}

// ProductCatalog resolves products for pricing. found=false means the
// catalog answered and has no such product; an error means it could not
// answer.
type ProductCatalog interface {
	GetProduct(ctx context.Context, id string) (ProductSnapshot, bool, error)
}
