// Package app implements the order.v1.OrderService servicer and the
// orchestration behind CreateOrder.
package app

import (
	"context"
	"errors"
	"log/slog"

	orderv1 "github.com/jcmexdev/ecommerce-services/internal/api/order/v1"
	"github.com/jcmexdev/ecommerce-services/internal/order-service/adapters/grpc/mappers"
	"github.com/jcmexdev/ecommerce-services/internal/order-service/domain"
	"github.com/jcmexdev/ecommerce-services/internal/order-service/ports"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/apperr"
)

const msgOrderNotFound = "Order not found"

type orderServer struct {
	orderv1.UnimplementedOrderServiceServer
	orders       ports.OrderRepository
	orchestrator *Orchestrator
	logger       *slog.Logger
}

func NewOrderServer(orders ports.OrderRepository, orchestrator *Orchestrator, logger *slog.Logger) *orderServer {
	return &orderServer{orders: orders, orchestrator: orchestrator, logger: logger}
}

func (s *orderServer) ListOrders(ctx context.Context, _ *orderv1.ListOrdersRequest) (*orderv1.ListOrdersResponse, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "error listing orders", "error", err)
		return nil, apperr.ToStatus(apperr.Internal(apperr.MsgInternal, err))
	}
	return &orderv1.ListOrdersResponse{Orders: mappers.OrdersToProto(orders)}, nil
}

func (s *orderServer) GetOrder(ctx context.Context, req *orderv1.GetOrderRequest) (*orderv1.Order, error) {
	o, err := s.orders.Get(ctx, req.ID)
	if errors.Is(err, domain.ErrOrderNotFound) {
		return nil, apperr.ToStatus(apperr.NotFound(msgOrderNotFound))
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "error getting order", "order_id", req.ID, "error", err)
		return nil, apperr.ToStatus(apperr.Internal(apperr.MsgInternal, err))
	}
	return mappers.OrderToProto(o), nil
}

func (s *orderServer) CreateOrder(ctx context.Context, req *orderv1.CreateOrderRequest) (*orderv1.Order, error) {
	o, err := s.orchestrator.CreateOrder(ctx, req.ProductID, req.Quantity)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	return mappers.OrderToProto(o), nil
}
