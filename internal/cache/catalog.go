package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

const (
	keyServices = "catalog:services"
	keyTrends   = "catalog:trends"
)

// CatalogSource is the authoritative catalog behind the cache.
type CatalogSource interface {
	GetService(ctx context.Context, id uint) (*models.Service, error)
	ListServices(ctx context.Context) ([]models.Service, error)
	ListTrends(ctx context.Context) ([]models.Trend, error)
}

// Catalog is a read-through cache over CatalogSource. Redis failures
// degrade to direct reads; a nil client disables caching entirely.
type Catalog struct {
	src    CatalogSource
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewCatalog(src CatalogSource, client *redis.Client, ttl time.Duration, log *zap.Logger) *Catalog {
	return &Catalog{src: src, client: client, ttl: ttl, log: log}
}

func serviceKey(id uint) string {
	return fmt.Sprintf("catalog:service:%d", id)
}

func (c *Catalog) GetService(ctx context.Context, id uint) (*models.Service, error) {
	var s models.Service
	if c.get(ctx, serviceKey(id), &s) {
		return &s, nil
	}

	svc, err := c.src.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	c.set(ctx, serviceKey(id), svc)
	return svc, nil
}

func (c *Catalog) ListServices(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if c.get(ctx, keyServices, &services) {
		return services, nil
	}

	services, err := c.src.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, keyServices, services)
	return services, nil
}

func (c *Catalog) ListTrends(ctx context.Context) ([]models.Trend, error) {
	var trends []models.Trend
	if c.get(ctx, keyTrends, &trends) {
		return trends, nil
	}

	trends, err := c.src.ListTrends(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, keyTrends, trends)
	return trends, nil
}

// InvalidateServices drops the listing and, when given, single entries.
func (c *Catalog) InvalidateServices(ctx context.Context, ids ...uint) {
	if c.client == nil {
		return
	}
	keys := []string{keyServices}
	for _, id := range ids {
		keys = append(keys, serviceKey(id))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}

func (c *Catalog) get(ctx context.Context, key string, dst any) bool {
	if c.client == nil {
		return false
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
		metrics.CatalogCacheHits.WithLabelValues("miss").Inc()
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		metrics.CatalogCacheHits.WithLabelValues("miss").Inc()
		return false
	}
	metrics.CatalogCacheHits.WithLabelValues("hit").Inc()
	return true
}

func (c *Catalog) set(ctx context.Context, key string, v any) {
	if c.client == nil {
		return
	}

	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
		c.log.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}
