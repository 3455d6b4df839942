package usecase

import (
	"context"
	"errors"

	profile "recovery-chat/internal/pkg/profile/application/domain"
	repository "recovery-chat/internal/pkg/profile/persistence/repository/port"
)

// MentorView is a directory entry with the mentor's profile, nil when the
// mentor never created one.
type MentorView struct {
	profile.Mentor
	Profile *profile.Profile `json:"profile"`
}

type ListMentorsUseCase struct {
	Repo repository.ProfileRepository
}

func NewListMentorsUseCase(repo repository.ProfileRepository) *ListMentorsUseCase {
	return &ListMentorsUseCase{Repo: repo}
}

// Execute lists available mentors, optionally narrowed by a case-insensitive
// specialization substring.
func (uc *ListMentorsUseCase) Execute(ctx context.Context, specialization string) ([]MentorView, error) {
	mentors, err := uc.Repo.ListAvailableMentors(ctx, specialization)
	if err != nil {
		return nil, storageError(err)
	}
	out := make([]MentorView, 0, len(mentors))
	for _, m := range mentors {
		v, err := withProfile(ctx, uc.Repo, m)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func withProfile(ctx context.Context, repo repository.ProfileRepository, m profile.Mentor) (MentorView, error) {
	p, err := repo.GetProfile(ctx, m.UserID)
	if errors.Is(err, profile.ErrProfileNotFound) {
		return MentorView{Mentor: m}, nil
	}
	if err != nil {
		return MentorView{}, storageError(err)
	}
	return MentorView{Mentor: m, Profile: &p}, nil
}
