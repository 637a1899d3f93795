// Package cache keeps sanitized profiles in Redis for the /me endpoint.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-auth-api/internal/domain/entity"
	"github.com/oksasatya/go-auth-api/pkg/helpers"
)

const keyPrefix = "auth:profile:"

type ProfileCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewProfileCache(rdb redis.Cmdable, ttl time.Duration) *ProfileCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ProfileCache{rdb: rdb, ttl: ttl}
}

func profileKey(accountID string) string {
	return keyPrefix + accountID
}

// Get reports a miss as (nil, nil).
func (c *ProfileCache) Get(ctx context.Context, accountID string) (*entity.Profile, error) {
	var p entity.Profile
	ok, err := helpers.CacheGetJSON(ctx, c.rdb, profileKey(accountID), &p)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

func (c *ProfileCache) Set(ctx context.Context, p *entity.Profile) error {
	return helpers.CacheSetJSON(ctx, c.rdb, profileKey(p.ID), p, c.ttl)
}

func (c *ProfileCache) Invalidate(ctx context.Context, accountID string) error {
	return helpers.CacheDel(ctx, c.rdb, profileKey(accountID))
}
