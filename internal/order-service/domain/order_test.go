package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name      string
		productID string
		quantity  int32
		wantErr   bool
	}{
		{"valid", "p1", 3, false},
		{"empty product", "", 1, true},
		{"blank product is left to the catalog", "   ", 1, false},
		{"zero quantity", "p1", 0, true},
		{"negative quantity", "p1", -2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(tt.productID, tt.quantity)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidOrder)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTotalPrice(t *testing.T) {
	assert.Equal(t, 30.0, TotalPrice(10.00, 3))
	assert.Equal(t, 24.5, TotalPrice(24.5, 1))
}

func TestNewOrderAssignsUUID(t *testing.T) {
	a := NewOrder("p1", 2, 20)
	b := NewOrder("p1", 2, 20)

	_, err := uuid.Parse(a.ID)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, int32(2), a.Quantity)
}
