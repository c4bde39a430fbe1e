package mappers

import (
	catalogv1 "github.com/jcmexdev/ecommerce-services/internal/api/catalog/v1"
	"github.com/jcmexdev/ecommerce-services/internal/catalog-service/domain"
)

func ProductToProto(p *domain.Product) *catalogv1.Product {
	if p == nil {
		return nil
	}
	return &catalogv1.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
	}
}

func ProductsToProto(ps []*domain.Product) []*catalogv1.Product {
	out := make([]*catalogv1.Product, len(ps))
	for i, p := range ps {
		out[i] = ProductToProto(p)
	}
	return out
}
