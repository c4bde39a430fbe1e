package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	catalogv1 "github.com/jcmexdev/ecommerce-services/internal/api/catalog/v1"
	orderv1 "github.com/jcmexdev/ecommerce-services/internal/api/order/v1"
	catalogapp "github.com/jcmexdev/ecommerce-services/internal/catalog-service/app"
	catalogmemory "github.com/jcmexdev/ecommerce-services/internal/catalog-service/adapters/memory"
	"github.com/jcmexdev/ecommerce-services/internal/order-service/adapters/catalog"
	"github.com/jcmexdev/ecommerce-services/internal/order-service/adapters/memory"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/clients/catalogclient"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/grpcx"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/telemetry"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/testutil"
)

type orderFixture struct {
	orders    orderv1.OrderServiceClient
	catalog   *testutil.Server
	productID string
}

// startOrderService wires a real catalog servicer and a real order servicer
// over in-memory connections, seeded with one product priced at 10.00.
func startOrderService(t *testing.T) *orderFixture {
	t.Helper()
	ctx := context.Background()

	catalogSrv := catalogapp.NewCatalogServer(catalogmemory.NewRepository(), telemetry.Discard())
	widget, err := catalogSrv.CreateProduct(ctx, &catalogv1.CreateProductRequest{Name: "Widget", Description: "A widget", Price: 10.00})
	require.NoError(t, err)

	catalogBuf := testutil.StartServer(t, func(s *grpc.Server) {
		catalogv1.RegisterCatalogServiceServer(s, catalogSrv)
	})
	dialer := catalogclient.NewDialer(catalogBuf.Target, time.Second, catalogBuf.DialOptions()...)

	repo := memory.NewRepository()
	orchestrator, err := NewOrchestrator(catalog.New(dialer), repo, telemetry.Discard())
	require.NoError(t, err)

	orderBuf := testutil.StartServer(t, func(s *grpc.Server) {
		orderv1.RegisterOrderServiceServer(s, NewOrderServer(repo, orchestrator, telemetry.Discard()))
	})
	conn, err := grpcx.Dial(orderBuf.Target, orderBuf.DialOptions()...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &orderFixture{orders: orderv1.NewOrderServiceClient(conn), catalog: catalogBuf, productID: widget.ID}
}

func TestCreateGetListOrders(t *testing.T) {
	ctx := context.Background()
	f := startOrderService(t)

	created, err := f.orders.CreateOrder(ctx, &orderv1.CreateOrderRequest{ProductID: f.productID, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 30.00, created.TotalPrice)
	assert.Equal(t, int32(3), created.Quantity)

	got, err := f.orders.GetOrder(ctx, &orderv1.GetOrderRequest{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, created, got)

	list, err := f.orders.ListOrders(ctx, &orderv1.ListOrdersRequest{})
	require.NoError(t, err)
	assert.Equal(t, []*orderv1.Order{created}, list.Orders)
}

func TestGetOrderNotFound(t *testing.T) {
	f := startOrderService(t)

	_, err := f.orders.GetOrder(context.Background(), &orderv1.GetOrderRequest{ID: "missing"})
	st, _ := status.FromError(err)
	assert.Equal(t, codes.NotFound, st.Code())
	assert.Equal(t, "Order not found", st.Message())
}

func TestCreateOrderStatusCodes(t *testing.T) {
	f := startOrderService(t)

	tests := []struct {
		name      string
		productID string
		quantity  int32
		code      codes.Code
		message   string
	}{
		{"invalid quantity", f.productID, 0, codes.InvalidArgument, "Invalid order data"},
		{"missing product id", "", 2, codes.InvalidArgument, "Invalid order data"},
		{"unknown product", "P404", 1, codes.NotFound, "Product not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.orders.CreateOrder(context.Background(), &orderv1.CreateOrderRequest{ProductID: tt.productID, Quantity: tt.quantity})
			st, _ := status.FromError(err)
			assert.Equal(t, tt.code, st.Code())
			assert.Equal(t, tt.message, st.Message())
		})
	}

	list, err := f.orders.ListOrders(context.Background(), &orderv1.ListOrdersRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Orders)
}

func TestCreateOrderWhenCatalogIsDown(t *testing.T) {
	ctx := context.Background()
	f := startOrderService(t)
	f.catalog.Stop()

	_, err := f.orders.CreateOrder(ctx, &orderv1.CreateOrderRequest{ProductID: f.productID, Quantity: 1})
	st, _ := status.FromError(err)
	assert.Equal(t, codes.Unavailable, st.Code())
	assert.Equal(t, "Product service unavailable", st.Message())

	list, err := f.orders.ListOrders(ctx, &orderv1.ListOrdersRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Orders)
}
