package port

import "context"

//go:generate mockgen -source=ProfileDirectory.go -destination=mocks/mock_profile_directory.go -package=mocks

// Participant carries the display fields of a chat participant.
type Participant struct {
	UserID    string  `json:"userId"`
	Username  *string `json:"username"`
	FullName  *string `json:"fullName"`
	UserType  string  `json:"userType"`
	AvatarURL *string `json:"avatarUrl"`
}

// ProfileDirectory resolves user ids against the profile store.
// Resolve returns chat.ErrProfileNotFound for unknown ids.
type ProfileDirectory interface {
	Resolve(ctx context.Context, userID string) (Participant, error)
}
