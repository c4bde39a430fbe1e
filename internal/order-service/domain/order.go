package domain

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidOrder  = errors.New("invalid order data")
)

// Order is immutable once created. TotalPrice is the unit price observed
// when the order was placed multiplied by Quantity.
type Order struct {
	ID         string
	ProductID  string
	Quantity   int32
	TotalPrice float64
}

// ValidateRequest checks the caller-supplied fields of a new order.
func ValidateRequest(productID string, quantity int32) error {
	if productID == "" || quantity <= 0 {
		return ErrInvalidOrder
	}
	return nil
}

// TotalPrice is unitPrice * quantity with no further rounding.
func TotalPrice(unitPrice float64, quantity int32) float64 {
	return unitPrice * float64(quantity)
}

// NewOrder assigns a fresh identity to a priced order.
func NewOrder(productID string, quantity int32, total float64) *Order {
	return &Order{
		ID:         uuid.NewString(),
		ProductID:  productID,
		Quantity:   quantity,
		TotalPrice: total,
	}
}
