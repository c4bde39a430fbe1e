// Package memory is an in-process ProductRepository.
package memory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jcmexdev/ecommerce-services/internal/catalog-service/domain"
	"github.com/jcmexdev/ecommerce-services/internal/catalog-service/ports"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/recordstore"
)

var _ ports.ProductRepository = (*Repository)(nil)

type Repository struct {
	records *recordstore.Memory[domain.Product]
}

func NewRepository() *Repository {
	return &Repository{records: recordstore.NewMemory[domain.Product]()}
}

func (r *Repository) Create(_ context.Context, p *domain.Product) error {
	if err := r.records.Insert(p.ID, *p); err != nil {
		return fmt.Errorf("memory: create product %q: %w", p.ID, err)
	}
	return nil
}

func (r *Repository) Get(_ context.Context, id string) (*domain.Product, error) {
	p, err := r.records.Get(id)
	if errors.Is(err, recordstore.ErrNotFound) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Product, error) {
	all := r.records.List()
	out := make([]*domain.Product, len(all))
	for i := range all {
		out[i] = &all[i]
	}
	return out, nil
}
