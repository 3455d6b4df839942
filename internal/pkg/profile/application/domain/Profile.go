package profile

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type UserType string

const (
	UserTypeMentor  UserType = "mentor"
	UserTypePatient UserType = "patient"
)

// Profile is the public face of a user. UserID is the identifier chat rooms
// and messages reference; it is unique, as is Username when set.
type Profile struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id" validate:"required,max=255"`
	Username  *string   `json:"username" db:"username" validate:"omitempty,min=1,max=64"`
	FullName  *string   `json:"fullName" db:"full_name" validate:"omitempty,max=255"`
	UserType  UserType  `json:"userType" db:"user_type" validate:"required,oneof=mentor patient"`
	AvatarURL *string   `json:"avatarUrl" db:"avatar_url" validate:"omitempty,url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// ProfileChanges is a partial update; nil fields are left alone.
type ProfileChanges struct {
	Username  *string
	FullName  *string
	UserType  *UserType
	AvatarURL *string
}

// NewProfile validates p and stamps id and timestamps.
func NewProfile(p Profile, now time.Time) (Profile, error) {
	p.UserID = strings.TrimSpace(p.UserID)
	p.Username = trimmed(p.Username)
	if err := check(p); err != nil {
		return Profile{}, err
	}
	now = Timestamp(now)
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now
	return p, nil
}

// Apply returns a copy of p with changes merged in and UpdatedAt bumped.
func (p Profile) Apply(changes ProfileChanges, now time.Time) (Profile, error) {
	if changes.Username != nil {
		p.Username = trimmed(changes.Username)
	}
	if changes.FullName != nil {
		p.FullName = changes.FullName
	}
	if changes.UserType != nil {
		p.UserType = *changes.UserType
	}
	if changes.AvatarURL != nil {
		p.AvatarURL = changes.AvatarURL
	}
	if err := check(p); err != nil {
		return Profile{}, err
	}
	p.UpdatedAt = Timestamp(now)
	return p, nil
}

// Timestamp truncates to what both stores keep (microseconds, UTC).
func Timestamp(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Truncate(time.Microsecond)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
