package proctor

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/saulo-duarte/quiz-proctor/internal/config"
	"github.com/saulo-duarte/quiz-proctor/internal/group"
)

type ProctorContainer struct {
	Hub     *Hub
	Handler *Handler
	Service ProctorService

	relay *RedisBroadcaster
}

// NewProctorContainer wires the live-event pipeline. With a nil rdb both the
// debounce window and the fan-out stay inside this process.
func NewProctorContainer(groups group.GroupService, rdb *redis.Client) *ProctorContainer {
	window := config.Conf.GetDuration("violation_debounce")
	hub := NewHub()

	var (
		debouncer   Debouncer
		broadcaster Broadcaster
		relay       *RedisBroadcaster
	)
	if rdb != nil {
		debouncer = NewRedisDebouncer(rdb, window)
		relay = NewRedisBroadcaster(rdb, hub)
		broadcaster = relay
	} else {
		debouncer = NewMemoryDebouncer(window)
		broadcaster = NewLocalBroadcaster(hub)
	}

	service := NewService(groups, debouncer, broadcaster)

	return &ProctorContainer{
		Hub:     hub,
		Handler: NewHandler(hub, service),
		Service: service,
		relay:   relay,
	}
}

// Start runs the hub, and the Redis relay when configured, until ctx ends.
func (c *ProctorContainer) Start(ctx context.Context) {
	go c.Hub.Run(ctx)
	if c.relay == nil {
		return
	}
	go func() {
		if err := c.relay.Relay(ctx); err != nil {
			config.WithContext(ctx).WithError(err).Error("Redis relay stopped")
		}
	}()
}
