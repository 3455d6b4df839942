package usecase

import (
	"context"
	"time"

	profile "recovery-chat/internal/pkg/profile/application/domain"
	repository "recovery-chat/internal/pkg/profile/persistence/repository/port"
)

type CreateMentorUseCase struct {
	Repo repository.ProfileRepository
	Now  func() time.Time
}

func NewCreateMentorUseCase(repo repository.ProfileRepository) *CreateMentorUseCase {
	return &CreateMentorUseCase{Repo: repo, Now: time.Now}
}

func (uc *CreateMentorUseCase) Execute(ctx context.Context, in profile.Mentor) (*profile.Mentor, error) {
	m, err := profile.NewMentor(in, uc.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.Repo.CreateMentor(ctx, m); err != nil {
		return nil, storageError(err)
	}
	return &m, nil
}
