// Package cache keeps the admin dashboard counters in Redis for a short
// TTL so the dashboard poll does not hit Postgres on every refresh.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"wadhifa/models"
)

const (
	statsKey = "admin:stats"
	statsTTL = 30 * time.Second
)

type StatsCache struct {
	client *redis.Client
	log    *logrus.Logger
}

// New connects to Redis at url. Cache errors are never fatal: a broken
// cache degrades to direct database reads.
func New(url string, log *logrus.Logger) (*StatsCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &StatsCache{client: redis.NewClient(opts), log: log}, nil
}

// Get returns the cached stats and true on a hit.
func (c *StatsCache) Get(ctx context.Context) (*models.AdminStats, bool) {
	raw, err := c.client.Get(ctx, statsKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.WithField("error", err.Error()).Warn("stats cache read failed")
		}
		return nil, false
	}
	stats := &models.AdminStats{}
	if err := json.Unmarshal(raw, stats); err != nil {
		return nil, false
	}
	return stats, true
}

// Set stores stats for the cache TTL.
func (c *StatsCache) Set(ctx context.Context, stats *models.AdminStats) {
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, statsKey, raw, statsTTL).Err(); err != nil {
		c.log.WithField("error", err.Error()).Warn("stats cache write failed")
	}
}

func (c *StatsCache) Close() error {
	return c.client.Close()
}
