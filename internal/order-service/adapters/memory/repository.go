// Package memory is an in-process OrderRepository.
package memory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jcmexdev/ecommerce-services/internal/order-service/domain"
	"github.com/jcmexdev/ecommerce-services/internal/order-service/ports"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/recordstore"
)

var _ ports.OrderRepository = (*Repository)(nil)

type Repository struct {
	records *recordstore.Memory[domain.Order]
}

func NewRepository() *Repository {
	return &Repository{records: recordstore.NewMemory[domain.Order]()}
}

func (r *Repository) Create(_ context.Context, o *domain.Order) error {
	if err := r.records.Insert(o.ID, *o); err != nil {
		return fmt.Errorf("memory: create order %q: %w", o.ID, err)
	}
	return nil
}

func (r *Repository) Get(_ context.Context, id string) (*domain.Order, error) {
	o, err := r.records.Get(id)
	if errors.Is(err, recordstore.ErrNotFound) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Order, error) {
	all := r.records.List()
	out := make([]*domain.Order, len(all))
	for i := range all {
		out[i] = &all[i]
	}
	return out, nil
}
