package service

import (
	"context"

	"google.golang.org/grpc"

	"github.com/jcmexdev/ecommerce-services/internal/api-gateway/core/ports"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/grpcx"
)

// GRPCHealthProbe asks a backend's grpc.health.v1 service whether it is
// serving, over a connection scoped to the probe.
type GRPCHealthProbe struct {
	name    string
	addr    string
	service string
	opts    []grpc.DialOption
}

var _ ports.ReadinessProbe = (*GRPCHealthProbe)(nil)

func NewGRPCHealthProbe(name, addr, service string, opts ...grpc.DialOption) *GRPCHealthProbe {
	return &GRPCHealthProbe{name: name, addr: addr, service: service, opts: opts}
}

func (p *GRPCHealthProbe) Name() string { return p.name }

func (p *GRPCHealthProbe) Check(ctx context.Context) error {
	return grpcx.CheckHealth(ctx, p.addr, p.service, p.opts...)
}
