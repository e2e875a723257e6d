package proctor

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/saulo-duarte/quiz-proctor/internal/config"
)

const EventsChannel = "quiz:events"

// Broadcaster delivers a message to every socket of every instance.
type Broadcaster interface {
	Publish(ctx context.Context, msg Message) error
}

type localBroadcaster struct {
	hub *Hub
}

func NewLocalBroadcaster(hub *Hub) Broadcaster {
	return &localBroadcaster{hub: hub}
}

func (b *localBroadcaster) Publish(_ context.Context, msg Message) error {
	return b.hub.Broadcast(msg)
}

// RedisBroadcaster publishes on a shared channel; every instance, this one
// included, relays what it receives to its own hub.
type RedisBroadcaster struct {
	client *redis.Client
	hub    *Hub
}

func NewRedisBroadcaster(client *redis.Client, hub *Hub) *RedisBroadcaster {
	return &RedisBroadcaster{client: client, hub: hub}
}

func (b *RedisBroadcaster) Publish(ctx context.Context, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, EventsChannel, data).Err()
}

// Relay forwards channel messages to the local hub until ctx is done.
func (b *RedisBroadcaster) Relay(ctx context.Context) error {
	log := config.WithContext(ctx)

	sub := b.client.Subscribe(ctx, EventsChannel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	log.WithField("channel", EventsChannel).Info("Relaying socket events from Redis")

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var msg Message
			if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
				log.WithError(err).Warn("Ignoring malformed relayed event")
				continue
			}
			if err := b.hub.Broadcast(msg); err != nil {
				log.WithError(err).Warn("Failed to relay event")
			}
		}
	}
}
