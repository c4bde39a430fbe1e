// Package app implements the catalog.v1.CatalogService servicer.
package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	catalogv1 "github.com/jcmexdev/ecommerce-services/internal/api/catalog/v1"
	"github.com/jcmexdev/ecommerce-services/internal/catalog-service/adapters/grpc/mappers"
	"github.com/jcmexdev/ecommerce-services/internal/catalog-service/domain"
	"github.com/jcmexdev/ecommerce-services/internal/catalog-service/ports"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/apperr"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/cache"
)

const (
	msgProductNotFound = "Product not found"
	msgInvalidProduct  = "Invalid product data"
)

type Option func(*catalogServer)

// WithCache puts a read-through cache in front of GetProduct.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *catalogServer) {
		if c != nil {
			s.cache = &productCache{cache: c, ttl: ttl, logger: s.logger}
		}
	}
}

type catalogServer struct {
	catalogv1.UnimplementedCatalogServiceServer
	products ports.ProductRepository
	cache    *productCache
	logger   *slog.Logger
}

func NewCatalogServer(products ports.ProductRepository, logger *slog.Logger, opts ...Option) *catalogServer {
	s := &catalogServer{products: products, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *catalogServer) ListProducts(ctx context.Context, _ *catalogv1.ListProductsRequest) (*catalogv1.ListProductsResponse, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "error listing products", "error", err)
		return nil, apperr.ToStatus(apperr.Internal(apperr.MsgInternal, err))
	}
	return &catalogv1.ListProductsResponse{Products: mappers.ProductsToProto(products)}, nil
}

func (s *catalogServer) GetProduct(ctx context.Context, req *catalogv1.GetProductRequest) (*catalogv1.Product, error) {
	if p, ok := s.cache.get(ctx, req.ID); ok {
		return mappers.ProductToProto(p), nil
	}

	p, err := s.products.Get(ctx, req.ID)
	if errors.Is(err, domain.ErrProductNotFound) {
		return nil, apperr.ToStatus(apperr.NotFound(msgProductNotFound))
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "error getting product", "product_id", req.ID, "error", err)
		return nil, apperr.ToStatus(apperr.Internal(apperr.MsgInternal, err))
	}

	s.cache.put(ctx, p)
	return mappers.ProductToProto(p), nil
}

func (s *catalogServer) CreateProduct(ctx context.Context, req *catalogv1.CreateProductRequest) (*catalogv1.Product, error) {
	p, err := domain.NewProduct(req.Name, req.Description, req.Price)
	if err != nil {
		return nil, apperr.ToStatus(apperr.InvalidArgument(msgInvalidProduct))
	}

	if err := s.products.Create(ctx, p); err != nil {
		s.logger.ErrorContext(ctx, "error creating product", "error", err)
		return nil, apperr.ToStatus(apperr.Internal(apperr.MsgInternal, err))
	}

	s.logger.InfoContext(ctx, "product created", "product_id", p.ID)
	return mappers.ProductToProto(p), nil
}
