package profile

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Mentor is the directory entry of a user offering mentorship.
type Mentor struct {
	ID              string    `json:"id" db:"id"`
	UserID          string    `json:"userId" db:"user_id" validate:"required,max=255"`
	Specialization  string    `json:"specialization" db:"specialization" validate:"required,max=255"`
	Bio             *string   `json:"bio" db:"bio" validate:"omitempty,max=4000"`
	ExperienceYears *int      `json:"experienceYears" db:"experience_years" validate:"omitempty,min=0,max=80"`
	IsAvailable     bool      `json:"isAvailable" db:"is_available"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

type MentorChanges struct {
	Specialization  *string
	Bio             *string
	ExperienceYears *int
	IsAvailable     *bool
}

func NewMentor(m Mentor, now time.Time) (Mentor, error) {
	m.UserID = strings.TrimSpace(m.UserID)
	m.Specialization = strings.TrimSpace(m.Specialization)
	if err := check(m); err != nil {
		return Mentor{}, err
	}
	now = Timestamp(now)
	m.ID = uuid.NewString()
	m.CreatedAt = now
	m.UpdatedAt = now
	return m, nil
}

func (m Mentor) Apply(changes MentorChanges, now time.Time) (Mentor, error) {
	if changes.Specialization != nil {
		m.Specialization = strings.TrimSpace(*changes.Specialization)
	}
	if changes.Bio != nil {
		m.Bio = changes.Bio
	}
	if changes.ExperienceYears != nil {
		m.ExperienceYears = changes.ExperienceYears
	}
	if changes.IsAvailable != nil {
		m.IsAvailable = *changes.IsAvailable
	}
	if err := check(m); err != nil {
		return Mentor{}, err
	}
	m.UpdatedAt = Timestamp(now)
	return m, nil
}
