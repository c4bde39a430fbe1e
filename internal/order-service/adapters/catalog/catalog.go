// Package catalog adapts catalogclient to the ProductCatalog port.
package catalog

import (
	"context"

	"github.com/jcmexdev/ecommerce-services/internal/order-service/ports"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/clients/catalogclient"
)

var _ ports.ProductCatalog = (*Catalog)(nil)

// Catalog opens a fresh catalog connection for every lookup and closes it
// before returning.
type Catalog struct {
	dialer *catalogclient.Dialer
}

func New(dialer *catalogclient.Dialer) *Catalog {
	return &Catalog{dialer: dialer}
}

func (c *Catalog) GetProduct(ctx context.Context, id string) (ports.ProductSnapshot, bool, error) {
	var (
		snapshot ports.ProductSnapshot
		found    bool
	)
	err := catalogclient.WithConnection(ctx, c.dialer, func(ctx context.Context, client *catalogclient.Client) error {
		p, ok, err := client.GetProduct(ctx, id)
		if err != nil {
			return err
		}
		snapshot = ports.ProductSnapshot{ID: p.ID, Name: p.Name, Price: p.Price}
		found = ok
		return nil
	})
	if err != nil {
		return ports.ProductSnapshot{}, false, err
	}
	return snapshot, found, nil
}
