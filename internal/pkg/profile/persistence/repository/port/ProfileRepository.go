package repository

import (
	"context"

	profile "recovery-chat/internal/pkg/profile/application/domain"
)

// ProfileRepository stores profiles and the mentor directory, keyed by user id.
//
// Lookups of unknown user ids return profile.ErrProfileNotFound or
// profile.ErrMentorNotFound; unique violations on insert or update return
// profile.ErrProfileExists or profile.ErrMentorExists.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID string) (profile.Profile, error)
	GetProfileByUsername(ctx context.Context, username string) (profile.Profile, error)
	CreateProfile(ctx context.Context, p profile.Profile) error
	UpdateProfile(ctx context.Context, p profile.Profile) error

	GetMentor(ctx context.Context, userID string) (profile.Mentor, error)
	// ListAvailableMentors returns available mentors, oldest first. A non-empty
	// specialization keeps those whose specialization contains it, ignoring case.
	ListAvailableMentors(ctx context.Context, specialization string) ([]profile.Mentor, error)
	CreateMentor(ctx context.Context, m profile.Mentor) error
	UpdateMentor(ctx context.Context, m profile.Mentor) error
}
