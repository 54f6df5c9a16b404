package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Domenick1991/airadmin/config"
	"github.com/Domenick1991/airadmin/internal/domain"
	"github.com/redis/go-redis/v9"
)

const dashboardKey = "cache:admin:dashboard"

// RedisCache keeps the dashboard summary between mutations.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg config.RedisConfig) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:    time.Duration(cfg.TTLSeconds) * time.Second,
	}
}

// GetDashboard returns nil without error on a cache miss.
func (c *RedisCache) GetDashboard(ctx context.Context) (*domain.Dashboard, error) {
	data, err := c.client.Get(ctx, dashboardKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var d domain.Dashboard
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *RedisCache) SetDashboard(ctx context.Context, d domain.Dashboard) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, dashboardKey, payload, c.ttl).Err()
}

// Invalidate drops the cached summary after any mutation.
func (c *RedisCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, dashboardKey).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
