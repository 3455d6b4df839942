package usecase

import (
	"context"
	"time"

	profile "recovery-chat/internal/pkg/profile/application/domain"
	repository "recovery-chat/internal/pkg/profile/persistence/repository/port"
)

type CreateProfileUseCase struct {
	Repo repository.ProfileRepository
	Now  func() time.Time
}

func NewCreateProfileUseCase(repo repository.ProfileRepository) *CreateProfileUseCase {
	return &CreateProfileUseCase{Repo: repo, Now: time.Now}
}

// Execute validates in, which carries the caller-supplied fields only.
func (uc *CreateProfileUseCase) Execute(ctx context.Context, in profile.Profile) (*profile.Profile, error) {
	p, err := profile.NewProfile(in, uc.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.Repo.CreateProfile(ctx, p); err != nil {
		return nil, storageError(err)
	}
	return &p, nil
}
