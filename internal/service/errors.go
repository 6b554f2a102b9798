package service

import (
	"errors"

	"github.com/iliyamo/wonderland-tickets/internal/repository"
)

// Booking and catalog failures.  Handlers map them with errors.Is.
var (
	ErrShowingNotFound   = repository.ErrShowingNotFound
	ErrInsufficientSeats = errors.New("insufficient seats")
	ErrInvalidSeatCount  = errors.New("invalid seat count")
	ErrUpdateConflict    = errors.New("update conflict")
	ErrInvalidShowing    = errors.New("invalid showing")
	// ErrStoreUnavailable wraps every failure reported by a backing store.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Credential failures.
var (
	ErrUnknownUser        = errors.New("unknown user")
	ErrWrongPassword      = errors.New("wrong password")
	ErrUsernameTaken      = errors.New("username taken")
	ErrMissingCredentials = errors.New("username and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
