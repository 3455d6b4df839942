package usecase

import (
	"context"

	repository "recovery-chat/internal/pkg/profile/persistence/repository/port"
)

type GetMentorUseCase struct {
	Repo repository.ProfileRepository
}

func NewGetMentorUseCase(repo repository.ProfileRepository) *GetMentorUseCase {
	return &GetMentorUseCase{Repo: repo}
}

func (uc *GetMentorUseCase) Execute(ctx context.Context, userID string) (*MentorView, error) {
	m, err := uc.Repo.GetMentor(ctx, userID)
	if err != nil {
		return nil, storageError(err)
	}
	v, err := withProfile(ctx, uc.Repo, m)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
