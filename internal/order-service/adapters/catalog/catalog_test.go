package catalog

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
	"github.com/jcmexdev/ecommerce-services/internal/order-service/ports"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/apperr"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/clients/catalogclient"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/testutil"
)

type stubCatalog struct {
	catalogv1.UnimplementedCatalogServiceServer
}

func (stubCatalog) GetProduct(_ context.Context, req *catalogv1.GetProductRequest) (*catalogv1.Product, error) {
	if req.ID != "p1" {
		return nil, status.Error(codes.NotFound, "Product not found")
	}
	return &catalogv1.Product{ID: "p1", Name: "Widget", Description: "A widget", Price: 10}, nil
}

func TestGetProduct(t *testing.T) {
	srv := testutil.StartServer(t, func(s *grpc.Server) {
		catalogv1.RegisterCatalogServiceServer(s, stubCatalog{})
	})
	c := New(catalogclient.NewDialer(srv.Target, time.Second, srv.DialOptions()...))

	p, found, err := c.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, ports.ProductSnapshot{ID: "p1", Name: "Widget", Price: 10}, p)

	_, found, err = c.GetProduct(context.Background(), "P404")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetProductUnreachable(t *testing.T) {
	c := New(catalogclient.NewDialer(testutil.UnreachableAddr(t), time.Second))

	_, found, err := c.GetProduct(context.Background(), "p1")
	assert.False(t, found)
	assert.True(t, apperr.Is(err, apperr.KindUnavailable))
}
