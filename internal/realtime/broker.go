package realtime

import (
	"context"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"recruitment-platform/internal/domain"
	"recruitment-platform/pkg/logger"
)

const channelPrefix = "chat:user:"

// UserChannel is the pub/sub channel carrying pushes for username.
func UserChannel(username string) string {
	return channelPrefix + username
}

// RedisBroker publishes pushes to Redis so every instance can relay them to
// its own WebSocket clients.
type RedisBroker struct {
	client *goredis.Client
	hub    *Hub
}

func NewRedisBroker(client *goredis.Client, hub *Hub) *RedisBroker {
	return &RedisBroker{client: client, hub: hub}
}

func (b *RedisBroker) Notify(ctx context.Context, username string, msg *domain.Message) error {
	payload, err := EncodeMessage(msg)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, UserChannel(username), payload).Err()
}

// Run relays published frames to the local hub until ctx is done.
func (b *RedisBroker) Run(ctx context.Context) error {
	ps := b.client.PSubscribe(ctx, channelPrefix+"*")
	defer ps.Close()

	// Wait for the subscription to be confirmed
	if _, err := ps.Receive(ctx); err != nil {
		return err
	}
	logger.Log.Info("chat relay subscribed", "pattern", channelPrefix+"*")

	ch := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			username := strings.TrimPrefix(m.Channel, channelPrefix)
			b.hub.Deliver(username, []byte(m.Payload))
		}
	}
}
