package service

import (
	"context"

	"github.com/jcmexdev/ecommerce-services/internal/api-gateway/core/domain/entity"
	"github.com/jcmexdev/ecommerce-services/internal/api-gateway/core/ports"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/apperr"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/clients/orderclient"
)

const msgOrderNotFound = "Order not found"

// GRPCOrderService is the adapter that talks to the OrderService over a
// per-call connection.
type GRPCOrderService struct {
	dialer *orderclient.Dialer
}

var _ ports.OrderService = (*GRPCOrderService)(nil)

func NewGRPCOrderService(dialer *orderclient.Dialer) ports.OrderService {
	return &GRPCOrderService{dialer: dialer}
}

func (s *GRPCOrderService) ListOrders(ctx context.Context) ([]entity.Order, error) {
	var out []entity.Order
	err := orderclient.WithConnection(ctx, s.dialer, func(ctx context.Context, c *orderclient.Client) error {
		orders, err := c.ListOrders(ctx)
		if err != nil {
			return err
		}
		out = make([]entity.Order, 0, len(orders))
		for _, o := range orders {
			out = append(out, orderToEntity(o))
		}
		return nil
	})
	return out, err
}

func (s *GRPCOrderService) GetOrder(ctx context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := orderclient.WithConnection(ctx, s.dialer, func(ctx context.Context, c *orderclient.Client) error {
		o, found, err := c.GetOrder(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return apperr.NotFound(msgOrderNotFound)
		}
		e := orderToEntity(o)
		out = &e
		return nil
	})
	return out, err
}

func (s *GRPCOrderService) CreateOrder(ctx context.Context, productID string, quantity int32) (*entity.Order, error) {
	var out *entity.Order
	err := orderclient.WithConnection(ctx, s.dialer, func(ctx context.Context, c *orderclient.Client) error {
		o, err := c.CreateOrder(ctx, productID, quantity)
		if err != nil {
			return err
		}
		e := orderToEntity(o)
		out = &e
		return nil
	})
	return out, err
}

func orderToEntity(o orderclient.Order) entity.Order {
	return entity.Order{ID: o.ID, ProductID: o.ProductID, Quantity: o.Quantity, TotalPrice: o.TotalPrice}
}
