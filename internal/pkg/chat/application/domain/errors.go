package chat

import (
	"errors"
	"fmt"
)

// Error kinds. Every domain error wraps exactly one of them so the edges can
// classify failures with errors.Is.
var (
	ErrValidation = errors.New("chat: invalid input")
	ErrNotFound   = errors.New("chat: not found")
	ErrConflict   = errors.New("chat: conflict")
)

// Domain-level errors for chat behaviors
var (
	ErrMissingParticipant = fmt.Errorf("%w: mentorId and patientId are required", ErrValidation)
	ErrInvalidPair        = fmt.Errorf("%w: mentor and patient must be different users", ErrValidation)
	ErrMissingRoom        = fmt.Errorf("%w: chatRoomId is required", ErrValidation)
	ErrMissingSender      = fmt.Errorf("%w: senderId is required", ErrValidation)
	ErrEmptyContent       = fmt.Errorf("%w: message content is empty", ErrValidation)
	ErrNotAParticipant    = fmt.Errorf("%w: sender is not a participant in the chat room", ErrValidation)
	ErrInvalidRole        = fmt.Errorf("%w: role must be mentor or patient", ErrValidation)
	ErrRoomNotFound       = fmt.Errorf("%w: chat room", ErrNotFound)
	ErrProfileNotFound    = fmt.Errorf("%w: profile", ErrNotFound)
)
