package service

import (
	"context"

	"github.com/jcmexdev/ecommerce-services/internal/api-gateway/core/domain/entity"
	"github.com/jcmexdev/ecommerce-services/internal/api-gateway/core/ports"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/apperr"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/clients/catalogclient"
)

const msgProductNotFound = "Product not found"

// GRPCCatalogService talks to the catalog over a connection opened for,
// and closed after, each call.
type GRPCCatalogService struct {
	dialer *catalogclient.Dialer
}

var _ ports.CatalogService = (*GRPCCatalogService)(nil)

func NewGRPCCatalogService(dialer *catalogclient.Dialer) ports.CatalogService {
	return &GRPCCatalogService{dialer: dialer}
}

func (s *GRPCCatalogService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	var out []entity.Product
	err := catalogclient.WithConnection(ctx, s.dialer, func(ctx context.Context, c *catalogclient.Client) error {
		products, err := c.ListProducts(ctx)
		if err != nil {
			return err
		}
		out = make([]entity.Product, 0, len(products))
		for _, p := range products {
			out = append(out, productToEntity(p))
		}
		return nil
	})
	return out, err
}

func (s *GRPCCatalogService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := catalogclient.WithConnection(ctx, s.dialer, func(ctx context.Context, c *catalogclient.Client) error {
		p, found, err := c.GetProduct(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return apperr.NotFound(msgProductNotFound)
		}
		e := productToEntity(p)
		out = &e
		return nil
	})
	return out, err
}

func (s *GRPCCatalogService) CreateProduct(ctx context.Context, np entity.NewProduct) (*entity.Product, error) {
	var out *entity.Product
	err := catalogclient.WithConnection(ctx, s.dialer, func(ctx context.Context, c *catalogclient.Client) error {
		p, err := c.CreateProduct(ctx, catalogclient.NewProduct{
			Name:        np.Name,
			Description: np.Description,
			Price:       np.Price,
		})
		if err != nil {
			return err
		}
		e := productToEntity(p)
		out = &e
		return nil
	})
	return out, err
}

func productToEntity(p catalogclient.Product) entity.Product {
	return entity.Product{ID: p.ID, Name: p.Name, Description: p.Description, Price: p.Price}
}
