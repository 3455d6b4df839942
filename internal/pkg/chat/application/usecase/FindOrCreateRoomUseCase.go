package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"recovery-chat/internal/infrastructure/metrics"
	chat "recovery-chat/internal/pkg/chat/application/domain"
	"recovery-chat/internal/pkg/chat/application/port"
	repository "recovery-chat/internal/pkg/chat/persistence/repository/port"
)

// FindOrCreateRoomInput names the exact (mentor, patient) pair.
type FindOrCreateRoomInput struct {
	MentorID  string
	PatientID string
}

// FindOrCreateRoomUseCase returns the single room of a mentor/patient pair,
// creating it on first contact.
type FindOrCreateRoomUseCase struct {
	Repo     repository.ChatRepository
	Profiles port.ProfileDirectory
	Logger   *zap.Logger
	Metrics  *metrics.Chat
	Clock    Clock
}

func NewFindOrCreateRoomUseCase(repo repository.ChatRepository, profiles port.ProfileDirectory, logger *zap.Logger, m *metrics.Chat) *FindOrCreateRoomUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FindOrCreateRoomUseCase{Repo: repo, Profiles: profiles, Logger: logger, Metrics: m}
}

// Execute's bool result is true only for the call that inserted the room.
//
// Concurrent first-contact calls race on insert; the loser hits the unique
// (mentor_id, patient_id) constraint and returns the winner's room.
func (uc *FindOrCreateRoomUseCase) Execute(ctx context.Context, in FindOrCreateRoomInput) (*chat.ChatRoom, bool, error) {
	candidate, err := chat.NewChatRoom(in.MentorID, in.PatientID, uc.Clock.now())
	if err != nil {
		return nil, false, err
	}

	for _, id := range []string{candidate.MentorID, candidate.PatientID} {
		if _, err := uc.Profiles.Resolve(ctx, id); err != nil {
			return nil, false, storageError(err)
		}
	}

	existing, err := uc.Repo.FindRoomByPair(ctx, candidate.MentorID, candidate.PatientID)
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, chat.ErrRoomNotFound) {
		return nil, false, storageError(err)
	}

	err = uc.Repo.CreateRoom(ctx, candidate)
	switch {
	case err == nil:
		uc.Metrics.RoomCreated()
		uc.Logger.Info("chat room created",
			zap.String("room_id", candidate.ID),
			zap.String("mentor_id", candidate.MentorID),
			zap.String("patient_id", candidate.PatientID),
		)
		return &candidate, true, nil
	case errors.Is(err, chat.ErrConflict):
		uc.Metrics.RoomConflict()
		existing, err := uc.Repo.FindRoomByPair(ctx, candidate.MentorID, candidate.PatientID)
		if err != nil {
			return nil, false, storageError(err)
		}
		return &existing, false, nil
	default:
		return nil, false, storageError(err)
	}
}
