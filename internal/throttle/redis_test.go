package throttle

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

const counterKey = "throttle:booking:10.0.0.1"

func expectHit(mock redismock.ClientMock, count int64, expireErr error) {
	mock.ExpectTxPipeline()
	mock.ExpectIncr(counterKey).SetVal(count)
	expire := mock.ExpectExpireNX(counterKey, time.Minute)
	if expireErr != nil {
		expire.SetErr(expireErr)
	} else {
		expire.SetVal(count == 1)
	}
	mock.ExpectTxPipelineExec()
}

func TestRedisLimiter(t *testing.T) {
	tests := []struct {
		name    string
		count   int64
		allowed bool
	}{
		{name: "first hit opens the window", count: 1, allowed: true},
		{name: "allowed up to the limit", count: 2, allowed: true},
		{name: "refused above the limit", count: 3, allowed: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			redisClient, redisMock := redismock.NewClientMock()
			limiter := &redisLimiter{redis: redisClient, limit: 2, window: time.Minute}
			expectHit(redisMock, test.count, nil)

			allowed, err := limiter.Allow(context.TODO(), "10.0.0.1")

			assert.NoError(t, err)
			assert.Equal(t, test.allowed, allowed)
			assert.NoError(t, redisMock.ExpectationsWereMet())
		})
	}

	t.Run("should return redis errors", func(t *testing.T) {
		redisClient, redisMock := redismock.NewClientMock()
		limiter := &redisLimiter{redis: redisClient, limit: 2, window: time.Minute}

		redisMock.ExpectTxPipeline()
		redisMock.ExpectIncr(counterKey).SetErr(assert.AnError)

		allowed, err := limiter.Allow(context.TODO(), "10.0.0.1")

		assert.Error(t, err)
		assert.False(t, allowed)
	})

	t.Run("should set the expiry again after it failed", func(t *testing.T) {
		redisClient, redisMock := redismock.NewClientMock()
		limiter := &redisLimiter{redis: redisClient, limit: 2, window: time.Minute}

		expectHit(redisMock, 1, assert.AnError)
		expectHit(redisMock, 2, nil)

		_, err := limiter.Allow(context.TODO(), "10.0.0.1")
		assert.Error(t, err)

		allowed, err := limiter.Allow(context.TODO(), "10.0.0.1")
		assert.NoError(t, err)
		assert.True(t, allowed)

		// the second hit carried EXPIRE NX for the key left without TTL
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}
