package usecase

import (
	"context"
	"time"

	chat "recovery-chat/internal/pkg/chat/application/domain"
	repository "recovery-chat/internal/pkg/chat/persistence/repository/port"
)

// ListMessagesInput selects a room's log; Since enables incremental refresh.
type ListMessagesInput struct {
	ChatRoomID string
	Since      *time.Time
}

type ListMessagesUseCase struct {
	Repo repository.ChatRepository
}

func NewListMessagesUseCase(repo repository.ChatRepository) *ListMessagesUseCase {
	return &ListMessagesUseCase{Repo: repo}
}

// Execute returns messages in log order: createdAt ascending, then id.
func (uc *ListMessagesUseCase) Execute(ctx context.Context, in ListMessagesInput) ([]chat.Message, error) {
	if in.ChatRoomID == "" {
		return nil, chat.ErrMissingRoom
	}
	if _, err := uc.Repo.GetRoom(ctx, in.ChatRoomID); err != nil {
		return nil, storageError(err)
	}
	msgs, err := uc.Repo.ListMessages(ctx, in.ChatRoomID, in.Since)
	if err != nil {
		return nil, storageError(err)
	}
	return msgs, nil
}
