package throttle

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type memoryEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// memoryLimiter keeps a token bucket per key inside the process: a burst of
// limit requests, refilled at limit per window. A bucket idle for a whole
// window is full again, so it is dropped and recreated on demand.
type memoryLimiter struct {
	entries   map[string]*memoryEntry
	every     rate.Limit
	burst     int
	window    time.Duration
	lastSweep time.Time
	now       func() time.Time
	sync.Mutex
}

func newMemoryLimiter(limit int, window time.Duration) *memoryLimiter {
	return &memoryLimiter{
		entries: make(map[string]*memoryEntry),
		every:   rate.Every(window / time.Duration(limit)),
		burst:   limit,
		window:  window,
		now:     time.Now,
	}
}

func (l *memoryLimiter) Allow(ctx context.Context, key string) (bool, error) {
	l.Lock()
	defer l.Unlock()

	now := l.now()
	l.sweep(now)

	entry, ok := l.entries[key]
	if !ok {
		entry = &memoryEntry{limiter: rate.NewLimiter(l.every, l.burst)}
		l.entries[key] = entry
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1), nil
}

// sweep runs at most once per window.
func (l *memoryLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = now

	for key, entry := range l.entries {
		if now.Sub(entry.lastSeen) >= l.window {
			delete(l.entries, key)
		}
	}
}
