// Package grpcx builds the gRPC servers and client connections shared by
// all three processes.
package grpcx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/jcmexdev/ecommerce-services/internal/pkg/interceptors"
)

// NewServer returns a gRPC server with tracing, request-id logging and the
// standard health service already registered. Callers register their own
// services and then mark them serving on the returned health server.
func NewServer(logger *slog.Logger, opts ...grpc.ServerOption) (*grpc.Server, *health.Server) {
	base := []grpc.ServerOption{
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.UnaryInterceptor(interceptors.TraceServerInterceptor(logger)),
	}
	srv := grpc.NewServer(append(base, opts...)...)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	return srv, hs
}

// Dial creates a client connection. grpc.NewClient does not perform I/O, so
// an unreachable peer surfaces on the first call as codes.Unavailable.
func Dial(addr string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	base := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
		grpc.WithUnaryInterceptor(interceptors.PropagateRequestID()),
	}
	conn, err := grpc.NewClient(addr, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("grpcx: could not connect to %s: %w", addr, err)
	}
	return conn, nil
}

// CheckHealth opens a connection scoped to this probe and asks the peer
// whether service is SERVING. An empty service name checks the whole server.
func CheckHealth(ctx context.Context, addr, service string, opts ...grpc.DialOption) error {
	conn, err := Dial(addr, opts...)
	if err != nil {
		return err
	}
	defer conn.Close()

	res, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return fmt.Errorf("grpcx: health check %s: %w", addr, err)
	}
	if res.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("grpcx: %s reports %s", addr, res.GetStatus())
	}
	return nil
}

// Serve runs srv on lis until ctx is cancelled, then flips every health
// status to NOT_SERVING and drains in-flight calls for at most timeout
// before forcing the server closed.
func Serve(ctx context.Context, srv *grpc.Server, hs *health.Server, lis net.Listener, timeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(lis) }()

	select {
	case err := <-errCh:
		if errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	hs.Shutdown()
	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(timeout):
		srv.Stop()
	}
	return nil
}
