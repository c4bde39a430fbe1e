package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKey(t *testing.T) {
	assert.Equal(t, "catalog:product:p1", GenerateKey("catalog", "product", "p1"))

	c, closeFn := NewRedisCache("127.0.0.1:0", "catalog")
	defer closeFn()
	assert.Equal(t, "catalog:product:p1", c.GenerateKey("product", "p1"))
}

func TestRedisCacheUnreachableReturnsError(t *testing.T) {
	c, closeFn := NewRedisCache("127.0.0.1:1", "catalog")
	defer closeFn()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := c.Get(ctx, "catalog:product:p1")
	require.Error(t, err)
}
