package port

import (
	"context"

	chat "recovery-chat/internal/pkg/chat/application/domain"
)

//go:generate mockgen -source=Notifier.go -destination=mocks/mock_notifier.go -package=mocks

// Notifier signals live clients that a message was appended to a room.
// Delivery is best-effort: implementations must not block for long, and
// callers treat a returned error as loggable, never as a failed send.
type Notifier interface {
	Notify(ctx context.Context, msg chat.Message) error
}
