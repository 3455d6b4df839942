package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	profile "recovery-chat/internal/pkg/profile/application/domain"
	repository "recovery-chat/internal/pkg/profile/persistence/repository/port"
)

// Session is what a sign-in hands back to the client. There is no server-side
// session store; the client keeps the user and passes its id on later calls.
type Session struct {
	User profile.Profile `json:"user"`
}

type AuthResult struct {
	User    profile.Profile `json:"user"`
	Session Session         `json:"session"`
}

func authResult(p profile.Profile) *AuthResult {
	return &AuthResult{User: p, Session: Session{User: p}}
}

type SignUpInput struct {
	Email    string
	Password string
	Username string
	FullName string
	UserType string
}

type SignUpUseCase struct {
	Repo  repository.ProfileRepository
	Now   func() time.Time
	NewID func() string
}

func NewSignUpUseCase(repo repository.ProfileRepository) *SignUpUseCase {
	return &SignUpUseCase{
		Repo:  repo,
		Now:   time.Now,
		NewID: func() string { return "user_" + uuid.NewString() },
	}
}

// Execute registers a profile under username, falling back to the email.
// Full name falls back to the username and user type to patient. Passwords
// are accepted but not stored.
func (uc *SignUpUseCase) Execute(ctx context.Context, in SignUpInput) (*AuthResult, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		username = strings.TrimSpace(in.Email)
	}
	if username == "" {
		return nil, profile.ErrMissingIdentity
	}

	_, err := uc.Repo.GetProfileByUsername(ctx, username)
	if err == nil {
		return nil, profile.ErrUserExists
	}
	if !errors.Is(err, profile.ErrProfileNotFound) {
		return nil, storageError(err)
	}

	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		fullName = username
	}
	userType := profile.UserType(strings.TrimSpace(in.UserType))
	if userType == "" {
		userType = profile.UserTypePatient
	}

	p, err := profile.NewProfile(profile.Profile{
		UserID:   uc.NewID(),
		Username: &username,
		FullName: &fullName,
		UserType: userType,
	}, uc.Now())
	if err != nil {
		return nil, err
	}
	err = uc.Repo.CreateProfile(ctx, p)
	if errors.Is(err, profile.ErrProfileExists) {
		// lost a race for the username
		return nil, profile.ErrUserExists
	}
	if err != nil {
		return nil, storageError(err)
	}
	return authResult(p), nil
}
