// Package sqlstore is the SQL-backed OrderRepository (SQLite or PostgreSQL).
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jcmexdev/ecommerce-services/internal/order-service/domain"
	"github.com/jcmexdev/ecommerce-services/internal/order-service/ports"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/database"
)

// Schema is applied on every start. product_id is not a foreign key: the
// catalog lives in another process and another database.
const Schema = `
CREATE TABLE IF NOT EXISTS orders (
    id          TEXT             PRIMARY KEY,
    product_id  TEXT             NOT NULL,
    quantity    INTEGER          NOT NULL CHECK (quantity > 0),
    total_price DOUBLE PRECISION NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_product_id ON orders(product_id);
`

var _ ports.OrderRepository = (*Repository)(nil)

type Repository struct {
	db *database.DB
}

// Open opens the store and applies Schema.
func Open(ctx context.Context, driver, url string) (*Repository, error) {
	db, err := database.Open(ctx, driver, url, Schema)
	if err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) Create(ctx context.Context, o *domain.Order) error {
	const q = `INSERT INTO orders (id, product_id, quantity, total_price) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(q), o.ID, o.ProductID, o.Quantity, o.TotalPrice); err != nil {
		return fmt.Errorf("sqlstore: create order %q: %w", o.ID, err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, id string) (*domain.Order, error) {
	const q = `SELECT id, product_id, quantity, total_price FROM orders WHERE id = ?`

	var o domain.Order
	err := r.db.QueryRowContext(ctx, r.db.Rebind(q), id).Scan(&o.ID, &o.ProductID, &o.Quantity, &o.TotalPrice)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlstore: get order %q: %w", id, err)
	}
	return &o, nil
}

func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	const q = `SELECT id, product_id, quantity, total_price FROM orders`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: list orders: %w", err)
	}
	defer rows.Close()

	var out []*domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.ProductID, &o.Quantity, &o.TotalPrice); err != nil {
			return nil, fmt.Errorf("sqlstore: scan order: %w", err)
		}
		out = append(out, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlstore: list orders: %w", err)
	}
	return out, nil
}
