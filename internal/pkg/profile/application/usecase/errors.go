package usecase

import (
	"errors"
	"fmt"

	profile "recovery-chat/internal/pkg/profile/application/domain"
)

var ErrStorageUnavailable = errors.New("profile: storage unavailable")

func storageError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, profile.ErrNotFound) || errors.Is(err, profile.ErrValidation) || errors.Is(err, profile.ErrConflict) ||
		errors.Is(err, profile.ErrUnauthenticated) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}
