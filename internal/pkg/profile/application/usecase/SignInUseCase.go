package usecase

import (
	"context"
	"errors"
	"strings"

	profile "recovery-chat/internal/pkg/profile/application/domain"
	repository "recovery-chat/internal/pkg/profile/persistence/repository/port"
)

type SignInInput struct {
	Email    string
	Username string
	Password string
}

type SignInUseCase struct {
	Repo repository.ProfileRepository
}

func NewSignInUseCase(repo repository.ProfileRepository) *SignInUseCase {
	return &SignInUseCase{Repo: repo}
}

// Execute resolves the profile registered under the email (or username).
// The password is not verified; there are no stored credentials.
func (uc *SignInUseCase) Execute(ctx context.Context, in SignInInput) (*AuthResult, error) {
	key := strings.TrimSpace(in.Email)
	if key == "" {
		key = strings.TrimSpace(in.Username)
	}
	if key == "" {
		return nil, profile.ErrBadCredentials
	}

	p, err := uc.Repo.GetProfileByUsername(ctx, key)
	if errors.Is(err, profile.ErrProfileNotFound) {
		return nil, profile.ErrBadCredentials
	}
	if err != nil {
		return nil, storageError(err)
	}
	return authResult(p), nil
}
