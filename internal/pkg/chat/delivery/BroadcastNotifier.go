package delivery

import (
	"context"
	"fmt"
	"time"

	"recovery-chat/internal/infrastructure/realtime"
	chat "recovery-chat/internal/pkg/chat/application/domain"
	"recovery-chat/internal/pkg/chat/application/port"
)

const defaultNotifyTimeout = time.Second

// BroadcastNotifier publishes a message frame to the room's live sessions.
// With a RedisBridge behind it, sessions on every node receive the frame.
type BroadcastNotifier struct {
	broadcaster realtime.Broadcaster
	timeout     time.Duration
}

func NewBroadcastNotifier(b realtime.Broadcaster, timeout time.Duration) *BroadcastNotifier {
	if timeout <= 0 {
		timeout = defaultNotifyTimeout
	}
	return &BroadcastNotifier{broadcaster: b, timeout: timeout}
}

var _ port.Notifier = (*BroadcastNotifier)(nil)

func (n *BroadcastNotifier) Notify(ctx context.Context, msg chat.Message) error {
	payload, err := EncodeMessage(FrameMessage, msg)
	if err != nil {
		return fmt.Errorf("encode message frame: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()
	if err := n.broadcaster.Publish(ctx, msg.ChatRoomID, payload); err != nil {
		return fmt.Errorf("publish to room %s: %w", msg.ChatRoomID, err)
	}
	return nil
}
