package profile

import (
	"errors"
	"fmt"
)

// Error kinds, classified with errors.Is at the edges.
var (
	ErrValidation = errors.New("profile: invalid input")
	ErrNotFound   = errors.New("profile: not found")
	ErrConflict   = errors.New("profile: conflict")
	// ErrUnauthenticated covers unknown sign-in identities and requests
	// without a session.
	ErrUnauthenticated = errors.New("profile: not authenticated")
)

var (
	ErrProfileNotFound = fmt.Errorf("%w: profile", ErrNotFound)
	ErrMentorNotFound  = fmt.Errorf("%w: mentor", ErrNotFound)
	ErrProfileExists   = fmt.Errorf("%w: userId or username already taken", ErrConflict)
	ErrMentorExists    = fmt.Errorf("%w: mentor already registered for userId", ErrConflict)
	ErrUserExists      = fmt.Errorf("%w: user already exists", ErrValidation)
	ErrMissingIdentity = fmt.Errorf("%w: email or username is required", ErrValidation)
	ErrBadCredentials  = fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
)
