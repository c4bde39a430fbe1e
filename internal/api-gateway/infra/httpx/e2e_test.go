package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/jcmexdev/ecommerce-services/internal/api-gateway/infra/adapters/service"
	"github.com/jcmexdev/ecommerce-services/internal/api-gateway/infra/httpx"
	catalogv1 "github.com/jcmexdev/ecommerce-services/internal/api/catalog/v1"
	orderv1 "github.com/jcmexdev/ecommerce-services/internal/api/order/v1"
	catalogmemory "github.com/jcmexdev/ecommerce-services/internal/catalog-service/adapters/memory"
	catalogapp "github.com/jcmexdev/ecommerce-services/internal/catalog-service/app"
	ordercatalog "github.com/jcmexdev/ecommerce-services/internal/order-service/adapters/catalog"
	ordermemory "github.com/jcmexdev/ecommerce-services/internal/order-service/adapters/memory"
	orderapp "github.com/jcmexdev/ecommerce-services/internal/order-service/app"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/clients/catalogclient"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/clients/orderclient"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/telemetry"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/testutil"
)

type stack struct {
	client  *resty.Client
	catalog *testutil.Server
	orders  *testutil.Server
}

// startStack runs catalog, order service and gateway in-process, wired the
// same way the three binaries are.
func startStack(t *testing.T) *stack {
	t.Helper()
	logger := telemetry.Discard()

	catalogSrv := testutil.StartServer(t, func(s *grpc.Server) {
		catalogv1.RegisterCatalogServiceServer(s, catalogapp.NewCatalogServer(catalogmemory.NewRepository(), logger))
	})
	catalogSrv.Health.SetServingStatus(catalogv1.CatalogService_ServiceDesc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	catalogDialer := catalogclient.NewDialer(catalogSrv.Target, time.Second, catalogSrv.DialOptions()...)

	orderRepo := ordermemory.NewRepository()
	orchestrator, err := orderapp.NewOrchestrator(ordercatalog.New(catalogDialer), orderRepo, logger)
	require.NoError(t, err)
	orderSrv := testutil.StartServer(t, func(s *grpc.Server) {
		orderv1.RegisterOrderServiceServer(s, orderapp.NewOrderServer(orderRepo, orchestrator, logger))
	})
	orderSrv.Health.SetServingStatus(orderv1.OrderService_ServiceDesc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	orderDialer := orderclient.NewDialer(orderSrv.Target, time.Second, orderSrv.DialOptions()...)

	handler := httpx.NewHandler(
		service.NewGRPCCatalogService(catalogDialer),
		service.NewGRPCOrderService(orderDialer),
		logger,
		service.NewGRPCHealthProbe("catalog", catalogSrv.Target, catalogv1.CatalogService_ServiceDesc.ServiceName, catalogSrv.DialOptions()...),
		service.NewGRPCHealthProbe("orders", orderSrv.Target, orderv1.OrderService_ServiceDesc.ServiceName, orderSrv.DialOptions()...),
	)
	srv := httptest.NewServer(httpx.NewRouter(handler))
	t.Cleanup(srv.Close)

	return &stack{client: resty.New().SetBaseURL(srv.URL), catalog: catalogSrv, orders: orderSrv}
}

func TestPlaceOrderEndToEnd(t *testing.T) {
	s := startStack(t)

	var product httpx.ProductResponse
	resp, err := s.client.R().
		SetBody(httpx.CreateProductRequest{Name: "Widget", Description: "A widget", Price: 10.00}).
		SetResult(&product).
		Post("/products")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	require.NotEmpty(t, product.ID)

	var order httpx.OrderResponse
	resp, err = s.client.R().
		SetBody(httpx.CreateOrderRequest{ProductID: product.ID, Quantity: 3}).
		SetResult(&order).
		Post("/orders")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, 30.00, order.TotalPrice)
	assert.Equal(t, int32(3), order.Quantity)

	var fetched httpx.OrderResponse
	resp, err = s.client.R().SetResult(&fetched).Get("/orders/" + order.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, order, fetched)

	var orders httpx.OrderListResponse
	_, err = s.client.R().SetResult(&orders).Get("/orders")
	require.NoError(t, err)
	assert.Equal(t, []httpx.OrderResponse{order}, orders.Orders)

	var products httpx.ProductListResponse
	_, err = s.client.R().SetResult(&products).Get("/products")
	require.NoError(t, err)
	assert.Equal(t, []httpx.ProductResponse{product}, products.Products)
}

func TestEndToEndErrorMapping(t *testing.T) {
	s := startStack(t)

	tests := []struct {
		name    string
		method  string
		path    string
		body    any
		status  int
		message string
	}{
		{"unknown product", http.MethodGet, "/products/P404", nil, http.StatusNotFound, "Product not found"},
		{"unknown order", http.MethodGet, "/orders/missing", nil, http.StatusNotFound, "Order not found"},
		{"invalid product", http.MethodPost, "/products", httpx.CreateProductRequest{Name: "Widget", Description: "A widget", Price: 0}, http.StatusBadRequest, "Invalid product data"},
		{"invalid order", http.MethodPost, "/orders", httpx.CreateOrderRequest{ProductID: "p1", Quantity: 0}, http.StatusBadRequest, "Invalid order data"},
		{"order for unknown product", http.MethodPost, "/orders", httpx.CreateOrderRequest{ProductID: "P404", Quantity: 1}, http.StatusNotFound, "Product not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e httpx.ErrorResponse
			req := s.client.R().SetError(&e)
			if tt.body != nil {
				req.SetBody(tt.body)
			}
			resp, err := req.Execute(tt.method, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode())
			assert.Equal(t, tt.message, e.Message)
			assert.NotEmpty(t, e.RequestID)
		})
	}

	var orders httpx.OrderListResponse
	_, err := s.client.R().SetResult(&orders).Get("/orders")
	require.NoError(t, err)
	assert.Empty(t, orders.Orders)
}

func TestCatalogOutageDuringOrder(t *testing.T) {
	s := startStack(t)
	s.catalog.Stop()

	var e httpx.ErrorResponse
	resp, err := s.client.R().
		SetBody(httpx.CreateOrderRequest{ProductID: "p1", Quantity: 1}).
		SetError(&e).
		Post("/orders")
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode())
	assert.Equal(t, "internal_error", e.Error)
	assert.Equal(t, "Internal server error", e.Message)
}

func TestReadiness(t *testing.T) {
	s := startStack(t)

	resp, err := s.client.R().Get("/health/ready")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())

	s.orders.Stop()

	var ready httpx.ReadinessResponse
	resp, err = s.client.R().SetError(&ready).Get("/health/ready")
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode())
	assert.Equal(t, map[string]string{"catalog": "ok", "orders": "unavailable"}, ready.Checks)
}
