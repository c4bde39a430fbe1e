// Package orderv1 describes the order.v1.OrderService RPC surface.
package orderv1

type Order struct {
	ID         string  `json:"id"`
	ProductID  string  `json:"product_id"`
	Quantity   int32   `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
}

func (o *Order) GetID() string {
	if o == nil {
		return ""
	}
	return o.ID
}

type ListOrdersRequest struct{}

type ListOrdersResponse struct {
	Orders []*Order `json:"orders"`
}

type GetOrderRequest struct {
	ID string `json:"id"`
}

type CreateOrderRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
}
