// Package sqlstore is the SQL-backed ProductRepository (SQLite or PostgreSQL).
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jcmexdev/ecommerce-services/internal/catalog-service/domain"
	"github.com/jcmexdev/ecommerce-services/internal/catalog-service/ports"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/database"
)

// Schema is applied on every start; it only ever creates missing objects.
const Schema = `
CREATE TABLE IF NOT EXISTS products (
    id          TEXT             PRIMARY KEY,
    name        TEXT             NOT NULL,
    description TEXT             NOT NULL,
    price       DOUBLE PRECISION NOT NULL CHECK (price > 0)
);
CREATE INDEX IF NOT EXISTS idx_products_name ON products(name);
`

var _ ports.ProductRepository = (*Repository)(nil)

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

// Close releases the database handle. Call it with defer in main().
func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) Create(ctx context.Context, p *domain.Product) error {
	const q = `INSERT INTO products (id, name, description, price) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(q), p.ID, p.Name, p.Description, p.Price); err != nil {
		return fmt.Errorf("sqlstore: create product %q: %w", p.ID, err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, id string) (*domain.Product, error) {
	const q = `SELECT id, name, description, price FROM products WHERE id = ?`

	var p domain.Product
	err := r.db.QueryRowContext(ctx, r.db.Rebind(q), id).Scan(&p.ID, &p.Name, &p.Description, &p.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlstore: get product %q: %w", id, err)
	}
	return &p, nil
}

func (r *Repository) List(ctx context.Context) ([]*domain.Product, error) {
	const q = `SELECT id, name, description, price FROM products`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: list products: %w", err)
	}
	defer rows.Close()

	var out []*domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price); err != nil {
			return nil, fmt.Errorf("sqlstore: scan product: %w", err)
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlstore: list products: %w", err)
	}
	return out, nil
}
