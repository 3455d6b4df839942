package usecase

import (
	"context"
	"time"

	profile "recovery-chat/internal/pkg/profile/application/domain"
	repository "recovery-chat/internal/pkg/profile/persistence/repository/port"
)

type UpdateProfileUseCase struct {
	Repo repository.ProfileRepository
	Now  func() time.Time
}

func NewUpdateProfileUseCase(repo repository.ProfileRepository) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{Repo: repo, Now: time.Now}
}

func (uc *UpdateProfileUseCase) Execute(ctx context.Context, userID string, changes profile.ProfileChanges) (*profile.Profile, error) {
	current, err := uc.Repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, storageError(err)
	}
	updated, err := current.Apply(changes, uc.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.Repo.UpdateProfile(ctx, updated); err != nil {
		return nil, storageError(err)
	}
	return &updated, nil
}
