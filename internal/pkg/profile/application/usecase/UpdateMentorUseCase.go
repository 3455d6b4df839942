package usecase

import (
	"context"
	"time"

	profile "recovery-chat/internal/pkg/profile/application/domain"
	repository "recovery-chat/internal/pkg/profile/persistence/repository/port"
)

type UpdateMentorUseCase struct {
	Repo repository.ProfileRepository
	Now  func() time.Time
}

func NewUpdateMentorUseCase(repo repository.ProfileRepository) *UpdateMentorUseCase {
	return &UpdateMentorUseCase{Repo: repo, Now: time.Now}
}

func (uc *UpdateMentorUseCase) Execute(ctx context.Context, userID string, changes profile.MentorChanges) (*profile.Mentor, error) {
	current, err := uc.Repo.GetMentor(ctx, userID)
	if err != nil {
		return nil, storageError(err)
	}
	updated, err := current.Apply(changes, uc.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.Repo.UpdateMentor(ctx, updated); err != nil {
		return nil, storageError(err)
	}
	return &updated, nil
}
