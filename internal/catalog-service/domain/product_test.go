package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	p, err := NewProduct("Widget", "A widget", 10.00)
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Widget", p.Name)
	assert.Equal(t, "A widget", p.Description)
	assert.Equal(t, 10.00, p.Price)

	other, err := NewProduct("Widget", "A widget", 10.00)
	require.NoError(t, err)
	assert.NotEqual(t, p.ID, other.ID)
}

func TestNewProductRejectsInvalidData(t *testing.T) {
	tests := []struct {
		name        string
		pname, desc string
		price       float64
	}{
		{"empty name", "", "A widget", 1},
		{"blank name", "   ", "A widget", 1},
		{"empty description", "Widget", "", 1},
		{"zero price", "Widget", "A widget", 0},
		{"negative price", "Widget", "A widget", -5},
		{"nan price", "Widget", "A widget", math.NaN()},
		{"infinite price", "Widget", "A widget", math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProduct(tt.pname, tt.desc, tt.price)
			assert.ErrorIs(t, err, ErrInvalidProduct)
		})
	}
}
