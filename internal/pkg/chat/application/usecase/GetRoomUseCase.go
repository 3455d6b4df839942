package usecase

import (
	"context"
	"errors"

	chat "recovery-chat/internal/pkg/chat/application/domain"
	"recovery-chat/internal/pkg/chat/application/port"
	repository "recovery-chat/internal/pkg/chat/persistence/repository/port"
)

// RoomDetails is a room with its participants' display data.
// A participant whose profile has since disappeared is nil.
type RoomDetails struct {
	Room    chat.ChatRoom
	Mentor  *port.Participant
	Patient *port.Participant
}

type GetRoomUseCase struct {
	Repo     repository.ChatRepository
	Profiles port.ProfileDirectory
}

func NewGetRoomUseCase(repo repository.ChatRepository, profiles port.ProfileDirectory) *GetRoomUseCase {
	return &GetRoomUseCase{Repo: repo, Profiles: profiles}
}

func (uc *GetRoomUseCase) Execute(ctx context.Context, roomID string) (*RoomDetails, error) {
	if roomID == "" {
		return nil, chat.ErrMissingRoom
	}
	room, err := uc.Repo.GetRoom(ctx, roomID)
	if err != nil {
		return nil, storageError(err)
	}
	return describeRoom(ctx, uc.Profiles, room)
}

func describeRoom(ctx context.Context, profiles port.ProfileDirectory, room chat.ChatRoom) (*RoomDetails, error) {
	mentor, err := lookupParticipant(ctx, profiles, room.MentorID)
	if err != nil {
		return nil, err
	}
	patient, err := lookupParticipant(ctx, profiles, room.PatientID)
	if err != nil {
		return nil, err
	}
	return &RoomDetails{Room: room, Mentor: mentor, Patient: patient}, nil
}

func lookupParticipant(ctx context.Context, profiles port.ProfileDirectory, userID string) (*port.Participant, error) {
	p, err := profiles.Resolve(ctx, userID)
	if errors.Is(err, chat.ErrProfileNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError(err)
	}
	return &p, nil
}
