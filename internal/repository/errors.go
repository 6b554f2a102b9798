// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// booking service and the handlers to distinguish between different
// failure scenarios without knowing which backing store is in use.
package repository

import "errors"

// ErrShowingNotFound is returned when no showing matches the requested
// business key or id.  Handlers translate it into a plain "Movie not found"
// message or an HTTP 404 for JSON endpoints.
var ErrShowingNotFound = errors.New("showing not found")

// ErrGuestNotFound is returned when no guest account has the username.
var ErrGuestNotFound = errors.New("guest not found")

// ErrUsernameExists is returned when a guest registration collides with an
// existing username.
var ErrUsernameExists = errors.New("username already exists")
