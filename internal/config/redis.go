package config

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisPingAttempts = 5

// Redis stays nil when REDIS_ADDR is unset; callers fall back to in-process
// implementations.
var Redis *redis.Client

func ConnectRedis(ctx context.Context) error {
	addr := Conf.GetString("redis_addr")
	if addr == "" {
		WithContext(ctx).Info("REDIS_ADDR not set, running single instance")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: Conf.GetString("redis_password"),
		DB:       0,
	})

	var err error
	for i := 1; i <= redisPingAttempts; i++ {
		if err = client.Ping(ctx).Err(); err == nil {
			break
		}
		WithContext(ctx).WithError(err).Warnf("Waiting for Redis (%d/%d)", i, redisPingAttempts)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
	if err != nil {
		client.Close()
		return fmt.Errorf("connect redis at %s: %w", addr, err)
	}

	Redis = client
	WithContext(ctx).WithField("addr", addr).Info("Connected to Redis")
	return nil
}
