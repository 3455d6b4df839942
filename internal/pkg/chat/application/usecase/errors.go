package usecase

import (
	"errors"
	"fmt"

	chat "recovery-chat/internal/pkg/chat/application/domain"
)

// ErrStorageUnavailable indicates the backing store failed; callers may retry with backoff.
var ErrStorageUnavailable = errors.New("chat: storage unavailable")

// storageError passes domain errors through and wraps everything else.
func storageError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, chat.ErrNotFound) || errors.Is(err, chat.ErrValidation) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}
