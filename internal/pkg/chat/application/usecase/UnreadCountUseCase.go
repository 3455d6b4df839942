package usecase

import (
	"context"

	chat "recovery-chat/internal/pkg/chat/application/domain"
	repository "recovery-chat/internal/pkg/chat/persistence/repository/port"
)

type UnreadCountInput struct {
	ChatRoomID string
	ViewerID   string
}

// UnreadCountUseCase counts the messages in a room not authored by the viewer.
// No read marker is kept, so this is recomputed from the log on every call.
type UnreadCountUseCase struct {
	Repo repository.ChatRepository
}

func NewUnreadCountUseCase(repo repository.ChatRepository) *UnreadCountUseCase {
	return &UnreadCountUseCase{Repo: repo}
}

func (uc *UnreadCountUseCase) Execute(ctx context.Context, in UnreadCountInput) (int, error) {
	if in.ChatRoomID == "" {
		return 0, chat.ErrMissingRoom
	}
	if in.ViewerID == "" {
		return 0, chat.ErrMissingParticipant
	}
	if _, err := uc.Repo.GetRoom(ctx, in.ChatRoomID); err != nil {
		return 0, storageError(err)
	}
	n, err := uc.Repo.CountMessagesNotFrom(ctx, in.ChatRoomID, in.ViewerID)
	if err != nil {
		return 0, storageError(err)
	}
	return n, nil
}
