package domain

import (
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product data")
)

// Product is immutable once created.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
}

// NewProduct validates the fields and assigns a fresh identity.
func NewProduct(name, description string, price float64) (*Product, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(description) == "" {
		return nil, ErrInvalidProduct
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return nil, ErrInvalidProduct
	}
	return &Product{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Price:       price,
	}, nil
}
