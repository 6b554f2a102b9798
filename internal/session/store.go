// Package session keeps server-side login state.  A session record lives in
// a Store keyed by an opaque random id; the browser only holds a signed
// cookie naming that id.
package session

import (
	"context"
	"time"

	"github.com/iliyamo/wonderland-tickets/internal/model"
)

// Session is one authenticated browser session.  ExpiresAt is absolute:
// activity does not extend it.
type Session struct {
	ID            string         `json:"id"`
	Identity      model.Identity `json:"identity"`
	Authenticated bool           `json:"authenticated"`
	ExpiresAt     time.Time      `json:"expires_at"`
}

// Expired reports whether the session is past its absolute expiry.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store defines how sessions are stored and retrieved.  Get returns
// (nil, nil) when the session does not exist.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
