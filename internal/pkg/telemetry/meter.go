package telemetry

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// otlpHTTPPort is the collector's OTLP/HTTP receiver; traces use the gRPC
// receiver on the configured endpoint.
const otlpHTTPPort = "4318"

func setupMeter(ctx context.Context, endpoint string, res *resource.Resource) (ShutdownFunc, error) {
	exporter, err := otlpmetrichttp.New(ctx,
		otlpmetrichttp.WithEndpoint(metricsEndpoint(endpoint)),
		otlpmetrichttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: failed to create OTLP metric exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(15*time.Second))),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	return func(ctx context.Context) error {
		if err := mp.Shutdown(ctx); err != nil {
			return fmt.Errorf("telemetry: error shutting down MeterProvider: %w", err)
		}
		return nil
	}, nil
}

func metricsEndpoint(endpoint string) string {
	host, _, err := net.SplitHostPort(stripScheme(endpoint))
	if err != nil {
		return net.JoinHostPort("localhost", otlpHTTPPort)
	}
	return net.JoinHostPort(host, otlpHTTPPort)
}
