package throttle

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type Options struct {
	Limit  int
	Window time.Duration
	Redis  *redis.Client
}

// New picks the redis engine when a client is given and the in-process one
// otherwise. It returns nil when no limit is configured.
func New(o Options) Limiter {
	if o.Limit <= 0 {
		return nil
	}

	window := o.Window
	if window <= 0 {
		window = time.Minute
	}

	if o.Redis != nil {
		return &redisLimiter{
			redis:  o.Redis,
			limit:  o.Limit,
			window: window,
		}
	}

	return newMemoryLimiter(o.Limit, window)
}
