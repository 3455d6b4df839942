package usecase

import (
	"context"

	chat "recovery-chat/internal/pkg/chat/application/domain"
	repository "recovery-chat/internal/pkg/chat/persistence/repository/port"
)

// JoinRoomInput validates a request to attach a user session to a room's live feed.
type JoinRoomInput struct {
	ChatRoomID string
	UserID     string
}

// JoinRoomUseCase ensures the user belongs to the room before it joins the realtime feed.
type JoinRoomUseCase struct {
	Repo repository.ChatRepository
}

func NewJoinRoomUseCase(repo repository.ChatRepository) *JoinRoomUseCase {
	return &JoinRoomUseCase{Repo: repo}
}

func (uc *JoinRoomUseCase) Execute(ctx context.Context, in JoinRoomInput) error {
	if in.ChatRoomID == "" {
		return chat.ErrMissingRoom
	}
	room, err := uc.Repo.GetRoom(ctx, in.ChatRoomID)
	if err != nil {
		return storageError(err)
	}
	if !room.HasParticipant(in.UserID) {
		return chat.ErrNotAParticipant
	}
	return nil
}
