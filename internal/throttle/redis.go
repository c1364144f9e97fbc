package throttle

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "throttle:booking:"

// redisLimiter is a fixed window counter shared by all service instances.
type redisLimiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
}

// Allow counts the hit and opens the window in one transaction. EXPIRE NX only
// sets a TTL on a counter which has none, so a window whose expiry was lost
// gets one on the next hit.
func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	counterKey := keyPrefix + key

	var count *redis.IntCmd
	_, err := l.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		count = pipe.Incr(ctx, counterKey)
		pipe.ExpireNX(ctx, counterKey, l.window)
		return nil
	})
	if err != nil {
		return false, err
	}

	return count.Val() <= int64(l.limit), nil
}
