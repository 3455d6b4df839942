package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestNewProfile(t *testing.T) {
	req := require.New(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.Local)

	p, err := NewProfile(Profile{UserID: " u-1 ", Username: ptr(" sam "), UserType: UserTypePatient}, now)
	req.NoError(err)
	req.NotEmpty(p.ID)
	req.Equal("u-1", p.UserID)
	req.Equal("sam", *p.Username)
	req.Equal(now.UTC().Truncate(time.Microsecond), p.CreatedAt)
	req.Equal(p.CreatedAt, p.UpdatedAt)

	_, err = NewProfile(Profile{UserID: "u-2", UserType: "admin"}, now)
	req.ErrorIs(err, ErrValidation)
	req.Contains(err.Error(), "userType")

	_, err = NewProfile(Profile{UserType: UserTypeMentor}, now)
	req.ErrorIs(err, ErrValidation)
	req.Contains(err.Error(), "userId")

	_, err = NewProfile(Profile{UserID: "u-3", UserType: UserTypeMentor, AvatarURL: ptr("not a url")}, now)
	req.ErrorIs(err, ErrValidation)
	req.Contains(err.Error(), "avatarUrl")
}

func TestProfile_Apply(t *testing.T) {
	req := require.New(t)
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p, err := NewProfile(Profile{UserID: "u-1", FullName: ptr("Sam"), UserType: UserTypePatient}, created)
	req.NoError(err)

	later := created.Add(time.Hour)
	mentor := UserTypeMentor
	updated, err := p.Apply(ProfileChanges{UserType: &mentor, AvatarURL: ptr("https://cdn.example.org/a.png")}, later)
	req.NoError(err)
	req.Equal(UserTypeMentor, updated.UserType)
	req.Equal("Sam", *updated.FullName)
	req.Equal(created, updated.CreatedAt)
	req.Equal(later, updated.UpdatedAt)
	req.Equal(p.ID, updated.ID)

	bad := UserType("robot")
	_, err = p.Apply(ProfileChanges{UserType: &bad}, later)
	req.ErrorIs(err, ErrValidation)
	req.Equal(UserTypePatient, p.UserType)
}

func TestMentor_NewAndApply(t *testing.T) {
	req := require.New(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	m, err := NewMentor(Mentor{UserID: "m-1", Specialization: " Alcohol recovery ", IsAvailable: true}, now)
	req.NoError(err)
	req.Equal("Alcohol recovery", m.Specialization)

	_, err = NewMentor(Mentor{UserID: "m-2"}, now)
	req.ErrorIs(err, ErrValidation)
	req.Contains(err.Error(), "specialization")

	_, err = NewMentor(Mentor{UserID: "m-3", Specialization: "x", ExperienceYears: ptr(-1)}, now)
	req.ErrorIs(err, ErrValidation)

	off, err := m.Apply(MentorChanges{IsAvailable: ptr(false), ExperienceYears: ptr(12)}, now.Add(time.Minute))
	req.NoError(err)
	req.False(off.IsAvailable)
	req.Equal(12, *off.ExperienceYears)
	req.True(m.IsAvailable)
}
