// Package testutil starts in-process gRPC servers for tests.
package testutil

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/test/bufconn"

	"github.com/jcmexdev/ecommerce-services/internal/pkg/grpcx"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/telemetry"
)

const bufSize = 1 << 20

// Server is a gRPC server listening on an in-memory pipe.
type Server struct {
	Target string
	Health *health.Server

	lis *bufconn.Listener
	srv *grpc.Server
}

// StartServer starts a server, lets register add services to it, and stops
// it when the test ends.
func StartServer(t *testing.T, register func(*grpc.Server)) *Server {
	t.Helper()

	lis := bufconn.Listen(bufSize)
	srv, hs := grpcx.NewServer(telemetry.Discard())
	register(srv)

	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	return &Server{Target: "passthrough:///bufnet", Health: hs, lis: lis, srv: srv}
}

// DialOptions routes connections for Target through the in-memory pipe.
func (s *Server) DialOptions() []grpc.DialOption {
	return []grpc.DialOption{
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return s.lis.DialContext(ctx)
		}),
	}
}

// ConnCounter tracks transport connections dialled to a Server.
type ConnCounter struct {
	open   atomic.Int64
	opened atomic.Int64
}

// Open is the number of connections dialled and not yet closed.
func (c *ConnCounter) Open() int64 { return c.open.Load() }

// Opened is the number of connections ever dialled.
func (c *ConnCounter) Opened() int64 { return c.opened.Load() }

type countedConn struct {
	net.Conn
	counter *ConnCounter
	once    sync.Once
}

func (c *countedConn) Close() error {
	c.once.Do(func() { c.counter.open.Add(-1) })
	return c.Conn.Close()
}

// CountingDialOptions is DialOptions with every connection recorded in counter.
func (s *Server) CountingDialOptions(counter *ConnCounter) []grpc.DialOption {
	return []grpc.DialOption{
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			conn, err := s.lis.DialContext(ctx)
			if err != nil {
				return nil, err
			}
			counter.open.Add(1)
			counter.opened.Add(1)
			return &countedConn{Conn: conn, counter: counter}, nil
		}),
	}
}

// Stop shuts the server down, simulating a peer going away.
func (s *Server) Stop() {
	s.srv.Stop()
}

// UnreachableAddr returns a loopback address nothing is listening on.
func UnreachableAddr(t *testing.T) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := lis.Addr().String()
	_ = lis.Close()
	return addr
}
