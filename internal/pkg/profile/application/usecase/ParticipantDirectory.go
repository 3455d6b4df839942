package usecase

import (
	"context"
	"errors"

	chat "recovery-chat/internal/pkg/chat/application/domain"
	"recovery-chat/internal/pkg/chat/application/port"
	profile "recovery-chat/internal/pkg/profile/application/domain"
	repository "recovery-chat/internal/pkg/profile/persistence/repository/port"
)

// ParticipantDirectory lets the chat rooms resolve user ids against profiles.
type ParticipantDirectory struct {
	Repo repository.ProfileRepository
}

func NewParticipantDirectory(repo repository.ProfileRepository) *ParticipantDirectory {
	return &ParticipantDirectory{Repo: repo}
}

var _ port.ProfileDirectory = (*ParticipantDirectory)(nil)

func (d *ParticipantDirectory) Resolve(ctx context.Context, userID string) (port.Participant, error) {
	p, err := d.Repo.GetProfile(ctx, userID)
	if errors.Is(err, profile.ErrProfileNotFound) {
		return port.Participant{}, chat.ErrProfileNotFound
	}
	if err != nil {
		return port.Participant{}, err
	}
	return port.Participant{
		UserID:    p.UserID,
		Username:  p.Username,
		FullName:  p.FullName,
		UserType:  string(p.UserType),
		AvatarURL: p.AvatarURL,
	}, nil
}
