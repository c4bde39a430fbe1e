package grpcx_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/jcmexdev/ecommerce-services/internal/pkg/grpcx"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/telemetry"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/testutil"
)

func TestCheckHealthServing(t *testing.T) {
	srv := testutil.StartServer(t, func(*grpc.Server) {})
	srv.Health.SetServingStatus("catalog.v1.CatalogService", healthpb.HealthCheckResponse_SERVING)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, grpcx.CheckHealth(ctx, srv.Target, "", srv.DialOptions()...))
	require.NoError(t, grpcx.CheckHealth(ctx, srv.Target, "catalog.v1.CatalogService", srv.DialOptions()...))
}

func TestCheckHealthNotServing(t *testing.T) {
	srv := testutil.StartServer(t, func(*grpc.Server) {})
	srv.Health.SetServingStatus("order.v1.OrderService", healthpb.HealthCheckResponse_NOT_SERVING)

	err := grpcx.CheckHealth(context.Background(), srv.Target, "order.v1.OrderService", srv.DialOptions()...)
	assert.ErrorContains(t, err, "NOT_SERVING")
}

func TestCheckHealthUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := grpcx.CheckHealth(ctx, testutil.UnreachableAddr(t), "")
	assert.Error(t, err)
}

func TestServeStopsOnCancel(t *testing.T) {
	srv, hs := grpcx.NewServer(telemetry.Discard())
	lis := bufconn.Listen(1 << 16)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- grpcx.Serve(ctx, srv, hs, lis, time.Second) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
