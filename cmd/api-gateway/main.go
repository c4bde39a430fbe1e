package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jcmexdev/ecommerce-services/internal/api-gateway/infra/adapters/service"
	"github.com/jcmexdev/ecommerce-services/internal/api-gateway/infra/httpx"
	catalogv1 "github.com/jcmexdev/ecommerce-services/internal/api/catalog/v1"
	orderv1 "github.com/jcmexdev/ecommerce-services/internal/api/order/v1"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/clients/catalogclient"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/clients/orderclient"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/config"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/telemetry"
)

func main() {
	cfg := config.LoadGateway()
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

	catalogService := service.NewGRPCCatalogService(catalogclient.NewDialer(cfg.CatalogAddr, cfg.RPCTimeout))
	orderService := service.NewGRPCOrderService(orderclient.NewDialer(cfg.OrderAddr, cfg.RPCTimeout))

	handler := httpx.NewHandler(catalogService, orderService, logger,
		service.NewGRPCHealthProbe("catalog", cfg.CatalogAddr, catalogv1.CatalogService_ServiceDesc.ServiceName),
		service.NewGRPCHealthProbe("orders", cfg.OrderAddr, orderv1.OrderService_ServiceDesc.ServiceName),
	)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           otelhttp.NewHandler(httpx.NewRouter(handler), "api-gateway"),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("API gateway running", "addr", cfg.HTTPAddr, "catalog_addr", cfg.CatalogAddr, "order_addr", cfg.OrderAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
		logger.Info("API gateway stopped")
	}
}
