package proctor

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const debounceKeyPrefix = "violation:debounce:"

// Debouncer admits the first event per key within a window.
type Debouncer interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type memoryDebouncer struct {
	mu     sync.Mutex
	window time.Duration
	last   map[string]time.Time
	now    func() time.Time
}

func NewMemoryDebouncer(window time.Duration) Debouncer {
	return newMemoryDebouncer(window, time.Now)
}

func newMemoryDebouncer(window time.Duration, now func() time.Time) *memoryDebouncer {
	return &memoryDebouncer{window: window, last: map[string]time.Time{}, now: now}
}

func (d *memoryDebouncer) Allow(_ context.Context, key string) (bool, error) {
	if d.window <= 0 {
		return true, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if prev, ok := d.last[key]; ok && now.Sub(prev) < d.window {
		return false, nil
	}
	d.last[key] = now

	// Keep the map bounded by the keys seen inside one window.
	if len(d.last) > 1024 {
		for k, t := range d.last {
			if now.Sub(t) >= d.window {
				delete(d.last, k)
			}
		}
	}
	return true, nil
}

type redisDebouncer struct {
	client *redis.Client
	window time.Duration
}

// NewRedisDebouncer shares the window across instances with SET NX PX.
func NewRedisDebouncer(client *redis.Client, window time.Duration) Debouncer {
	return &redisDebouncer{client: client, window: window}
}

func (d *redisDebouncer) Allow(ctx context.Context, key string) (bool, error) {
	if d.window <= 0 {
		return true, nil
	}
	return d.client.SetNX(ctx, debounceKeyPrefix+key, 1, d.window).Result()
}
