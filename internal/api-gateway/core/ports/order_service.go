package ports

import (
	"context"

	"github.com/jcmexdev/ecommerce-services/internal/api-gateway/core/domain/entity"
)

// OrderService is the gateway's view of the order backend. Errors are
// classified with apperr; an unknown id is apperr.KindNotFound.
type OrderService interface {
	ListOrders(ctx context.Context) ([]entity.Order, error)
	GetOrder(ctx context.Context, id string) (*entity.Order, error)
	CreateOrder(ctx context.Context, productID string, quantity int32) (*entity.Order, error)
}
