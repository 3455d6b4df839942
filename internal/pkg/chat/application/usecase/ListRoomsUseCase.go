package usecase

import (
	"context"

	chat "recovery-chat/internal/pkg/chat/application/domain"
	"recovery-chat/internal/pkg/chat/application/port"
	repository "recovery-chat/internal/pkg/chat/persistence/repository/port"
)

// ListRoomsInput selects the rooms where ParticipantID holds Role.
// The participant is also the viewer for unread counts.
type ListRoomsInput struct {
	ParticipantID string
	Role          chat.Role
}

// RoomSummary drives one dashboard row.
type RoomSummary struct {
	RoomDetails
	LatestMessage *chat.Message
	UnreadCount   int
}

type ListRoomsUseCase struct {
	Repo     repository.ChatRepository
	Profiles port.ProfileDirectory
}

func NewListRoomsUseCase(repo repository.ChatRepository, profiles port.ProfileDirectory) *ListRoomsUseCase {
	return &ListRoomsUseCase{Repo: repo, Profiles: profiles}
}

// Execute returns rooms newest first. Every call is a fresh query.
func (uc *ListRoomsUseCase) Execute(ctx context.Context, in ListRoomsInput) ([]RoomSummary, error) {
	if in.ParticipantID == "" {
		return nil, chat.ErrMissingParticipant
	}
	if _, err := chat.ParseRole(string(in.Role)); err != nil {
		return nil, err
	}

	rooms, err := uc.Repo.ListRoomsByParticipant(ctx, in.ParticipantID, in.Role)
	if err != nil {
		return nil, storageError(err)
	}

	summaries := make([]RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		details, err := describeRoom(ctx, uc.Profiles, room)
		if err != nil {
			return nil, err
		}
		latest, err := uc.Repo.LatestMessage(ctx, room.ID)
		if err != nil {
			return nil, storageError(err)
		}
		unread, err := uc.Repo.CountMessagesNotFrom(ctx, room.ID, in.ParticipantID)
		if err != nil {
			return nil, storageError(err)
		}
		summaries = append(summaries, RoomSummary{RoomDetails: *details, LatestMessage: latest, UnreadCount: unread})
	}
	return summaries, nil
}
