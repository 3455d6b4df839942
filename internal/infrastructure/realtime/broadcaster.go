package realtime

import (
	"context"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Broadcaster fans a payload out to every live session listening to a room.
type Broadcaster interface {
	Publish(ctx context.Context, roomID string, payload []byte) error
}

// LocalBroadcaster delivers to sessions attached to this process only.
type LocalBroadcaster struct {
	router *Router
}

func NewLocalBroadcaster(router *Router) *LocalBroadcaster {
	return &LocalBroadcaster{router: router}
}

func (b *LocalBroadcaster) Publish(_ context.Context, roomID string, payload []byte) error {
	b.router.Broadcast(roomID, payload)
	return nil
}

// RedisBridge publishes room payloads on Redis pub/sub and relays every
// room channel back into the local Router, so sessions on any node see
// messages appended through any other node.
type RedisBridge struct {
	client *redis.Client
	router *Router
	logger *zap.Logger
	prefix string
}

const defaultChannelPrefix = "chat:room:"

func NewRedisBridge(client *redis.Client, router *Router, logger *zap.Logger) *RedisBridge {
	return &RedisBridge{client: client, router: router, logger: logger, prefix: defaultChannelPrefix}
}

func (b *RedisBridge) Publish(ctx context.Context, roomID string, payload []byte) error {
	return b.client.Publish(ctx, b.prefix+roomID, payload).Err()
}

// Run relays subscribed payloads until ctx is canceled.
func (b *RedisBridge) Run(ctx context.Context) error {
	sub := b.client.PSubscribe(ctx, b.prefix+"*")
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			roomID := strings.TrimPrefix(msg.Channel, b.prefix)
			n := b.router.Broadcast(roomID, []byte(msg.Payload))
			b.logger.Debug("relayed room payload", zap.String("room_id", roomID), zap.Int("sessions", n))
		}
	}
}
