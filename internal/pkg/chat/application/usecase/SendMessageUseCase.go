package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"recovery-chat/internal/infrastructure/metrics"
	chat "recovery-chat/internal/pkg/chat/application/domain"
	"recovery-chat/internal/pkg/chat/application/port"
	repository "recovery-chat/internal/pkg/chat/persistence/repository/port"
)

// SendMessageInput carries the data needed to append a message.
// SenderID is the authenticated caller, supplied by the transport layer.
type SendMessageInput struct {
	ChatRoomID string
	SenderID   string
	Content    string
}

// SendMessageUseCase appends to a room's message log and then notifies live clients.
type SendMessageUseCase struct {
	Repo           repository.ChatRepository
	Notifier       port.Notifier
	Logger         *zap.Logger
	Metrics        *metrics.Chat
	Clock          Clock
	StorageTimeout time.Duration
}

func NewSendMessageUseCase(repo repository.ChatRepository, notifier port.Notifier, logger *zap.Logger, m *metrics.Chat, storageTimeout time.Duration) *SendMessageUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SendMessageUseCase{Repo: repo, Notifier: notifier, Logger: logger, Metrics: m, StorageTimeout: storageTimeout}
}

// Execute persists the message and returns it with its id and timestamp.
//
// The insert is detached from the caller's cancellation: once issued it runs
// to completion (bounded by StorageTimeout). A caller that gave up must
// re-list messages to learn the outcome. Notification failures are logged only.
func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*chat.Message, error) {
	if in.ChatRoomID == "" {
		return nil, chat.ErrMissingRoom
	}
	if in.SenderID == "" {
		return nil, chat.ErrMissingSender
	}

	room, err := uc.Repo.GetRoom(ctx, in.ChatRoomID)
	if err != nil {
		return nil, storageError(err)
	}

	msg, err := room.PostMessage(in.SenderID, in.Content, uc.Clock.now())
	if err != nil {
		return nil, err
	}

	storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.storageTimeout())
	defer cancel()
	if err := uc.Repo.SaveMessage(storeCtx, msg); err != nil {
		return nil, storageError(err)
	}
	uc.Metrics.MessageAppended()

	if uc.Notifier != nil {
		if err := uc.Notifier.Notify(context.WithoutCancel(ctx), msg); err != nil {
			uc.Metrics.NotifyFailed()
			uc.Logger.Warn("message notification failed",
				zap.String("room_id", msg.ChatRoomID),
				zap.String("message_id", msg.ID),
				zap.Error(err),
			)
		}
	}
	return &msg, nil
}

func (uc *SendMessageUseCase) storageTimeout() time.Duration {
	if uc.StorageTimeout <= 0 {
		return 5 * time.Second
	}
	return uc.StorageTimeout
}
