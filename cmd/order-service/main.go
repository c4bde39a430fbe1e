package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	orderv1 "github.com/jcmexdev/ecommerce-services/internal/api/order/v1"
	"github.com/jcmexdev/ecommerce-services/internal/order-service/adapters/catalog"
	"github.com/jcmexdev/ecommerce-services/internal/order-service/adapters/memory"
	"github.com/jcmexdev/ecommerce-services/internal/order-service/adapters/sqlstore"
	"github.com/jcmexdev/ecommerce-services/internal/order-service/app"
	"github.com/jcmexdev/ecommerce-services/internal/order-service/ports"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/clients/catalogclient"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/config"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/grpcx"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/telemetry"
)

func main() {
	cfg := config.LoadOrderService()
	logger := telemetry.InitLogger(cfg.Telemetry.ServiceName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		logger.Error("failed to initialise telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}()

	orders, closeStore, err := openOrderStore(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to open order store", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	productCatalog := catalog.New(catalogclient.NewDialer(cfg.CatalogAddr, cfg.RPCTimeout))
	orchestrator, err := app.NewOrchestrator(productCatalog, orders, logger)
	if err != nil {
		logger.Error("failed to create order orchestrator", "error", err)
		os.Exit(1)
	}

	addr := ":" + cfg.Port
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Error("failed to listen", "addr", addr, "error", err)
		os.Exit(1)
	}

	grpcServer, healthServer := grpcx.NewServer(logger)
	orderv1.RegisterOrderServiceServer(grpcServer, app.NewOrderServer(orders, orchestrator, logger))
	healthServer.SetServingStatus(orderv1.OrderService_ServiceDesc.ServiceName, healthpb.HealthCheckResponse_SERVING)

	logger.Info("order service gRPC running", "addr", addr, "catalog_addr", cfg.CatalogAddr, "driver", cfg.Database.Driver)

	if err := grpcx.Serve(ctx, grpcServer, healthServer, lis, cfg.ShutdownTimeout); err != nil {
		logger.Error("failed to serve", "error", err)
		os.Exit(1)
	}
	logger.Info("order service stopped")
}

func openOrderStore(ctx context.Context, db config.Database) (ports.OrderRepository, func(), error) {
	if db.Driver == "memory" {
		return memory.NewRepository(), func() {}, nil
	}
	repo, err := sqlstore.Open(ctx, db.Driver, db.URL)
	if err != nil {
		return nil, nil, err
	}
	return repo, func() {
		if err := repo.Close(); err != nil {
			slog.Error("failed to close order store", "error", err)
		}
	}, nil
}
