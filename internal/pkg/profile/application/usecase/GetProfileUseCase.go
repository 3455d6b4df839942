package usecase

import (
	"context"

	profile "recovery-chat/internal/pkg/profile/application/domain"
	repository "recovery-chat/internal/pkg/profile/persistence/repository/port"
)

type GetProfileUseCase struct {
	Repo repository.ProfileRepository
}

func NewGetProfileUseCase(repo repository.ProfileRepository) *GetProfileUseCase {
	return &GetProfileUseCase{Repo: repo}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, userID string) (*profile.Profile, error) {
	p, err := uc.Repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, storageError(err)
	}
	return &p, nil
}
