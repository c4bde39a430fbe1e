package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jcmexdev/ecommerce-services/internal/catalog-service/domain"
	"github.com/jcmexdev/ecommerce-services/internal/pkg/cache"
)

const cacheOpProduct = "product"

// productCache is a read-through cache in front of product lookups. Any
// cache fault is logged and treated as a miss.
type productCache struct {
	cache  cache.Cache
	ttl    time.Duration
	logger *slog.Logger
}

func (c *productCache) get(ctx context.Context, id string) (*domain.Product, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.cache.Get(ctx, c.cache.GenerateKey(cacheOpProduct, id))
	if err != nil {
		c.logger.WarnContext(ctx, "product cache read failed", "product_id", id, "error", err)
		return nil, false
	}
	if raw == "" {
		return nil, false
	}
	var p domain.Product
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		c.logger.WarnContext(ctx, "product cache entry corrupt", "product_id", id, "error", err)
		return nil, false
	}
	return &p, true
}

func (c *productCache) put(ctx context.Context, p *domain.Product) {
	if c == nil {
		return
	}
	b, err := json.Marshal(p)
	if err != nil {
		c.logger.WarnContext(ctx, "product cache entry not encodable", "product_id", p.ID, "error", err)
		return
	}
	if err := c.cache.Set(ctx, c.cache.GenerateKey(cacheOpProduct, p.ID), string(b), c.ttl); err != nil {
		c.logger.WarnContext(ctx, "product cache write failed", "product_id", p.ID, "error", err)
	}
}
