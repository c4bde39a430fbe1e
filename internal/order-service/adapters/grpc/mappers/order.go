package mappers

import (
	orderv1 "github.com/jcmexdev/ecommerce-services/internal/api/order/v1"
	"github.com/jcmexdev/ecommerce-services/internal/order-service/domain"
)

func OrderToProto(o *domain.Order) *orderv1.Order {
	if o == nil {
		return nil
	}
	return &orderv1.Order{
		ID:         o.ID,
		ProductID:  o.ProductID,
		Quantity:   o.Quantity,
		TotalPrice: o.TotalPrice,
	}
}

func OrdersToProto(orders []*domain.Order) []*orderv1.Order {
	out := make([]*orderv1.Order, len(orders))
	for i, o := range orders {
		out[i] = OrderToProto(o)
	}
	return out
}
