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

	catalogv1 "github.com/jcmexdev/ecommerce-services/internal/api/catalog/v1"
	"github.com/jcmexdev/ecommerce-services/internal/catalog-service/adapters/memory"
	"github.com/jcmexdev/ecommerce-services/internal/catalog-service/adapters/sqlstore"
	"github.com/jcmexdev/ecommerce-services/internal/catalog-service/app"
	"github.com/jcmexdev/ecommerce-services/internal/catalog-service/ports"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/cache"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/config"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/grpcx"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/telemetry"
)

func main() {
	cfg := config.LoadCatalogService()
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

	products, closeStore, err := openProductStore(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to open product store", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	var opts []app.Option
	if cfg.RedisAddr != "" {
		redisCache, closeCache := cache.NewRedisCache(cfg.RedisAddr, "catalog")
		defer closeCache()
		opts = append(opts, app.WithCache(redisCache, cfg.CacheTTL))
		logger.Info("product cache enabled", "redis_addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
	}

	addr := ":" + cfg.Port
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Error("failed to listen", "addr", addr, "error", err)
		os.Exit(1)
	}

	grpcServer, healthServer := grpcx.NewServer(logger)
	catalogv1.RegisterCatalogServiceServer(grpcServer, app.NewCatalogServer(products, logger, opts...))
	healthServer.SetServingStatus(catalogv1.CatalogService_ServiceDesc.ServiceName, healthpb.HealthCheckResponse_SERVING)

	logger.Info("catalog service gRPC running", "addr", addr, "driver", cfg.Database.Driver)

	if err := grpcx.Serve(ctx, grpcServer, healthServer, lis, cfg.ShutdownTimeout); err != nil {
		logger.Error("failed to serve", "error", err)
		os.Exit(1)
	}
	logger.Info("catalog service stopped")
}

func openProductStore(ctx context.Context, db config.Database) (ports.ProductRepository, func(), error) {
	if db.Driver == "memory" {
		return memory.NewRepository(), func() {}, nil
	}
	repo, err := sqlstore.Open(ctx, db.Driver, db.URL)
	if err != nil {
		return nil, nil, err
	}
	return repo, func() {
		if err := repo.Close(); err != nil {
			slog.Error("failed to close product store", "error", err)
		}
	}, nil
}
