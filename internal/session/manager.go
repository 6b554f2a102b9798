package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/iliyamo/wonderland-tickets/internal/model"
	"github.com/iliyamo/wonderland-tickets/internal/utils"
)

// CookieName is the name of the cookie carrying the signed session id.
const CookieName = "wonderland.sid"

// DefaultTTL is the absolute session lifetime: one day.
const DefaultTTL = 24 * time.Hour

// Manager ties the Store to the browser cookie.
type Manager struct {
	store  Store
	secret string
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// NewManager builds a Manager.  secure marks cookies Secure (production).
func NewManager(store Store, secret string, ttl time.Duration, secure bool) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{store: store, secret: secret, ttl: ttl, secure: secure, now: time.Now}
}

// Start persists a new authenticated session for id and issues its cookie.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, id model.Identity) (*Session, error) {
	sid, err := utils.RandomHex(32)
	if err != nil {
		return nil, fmt.Errorf("session: generate id: %w", err)
	}
	s := Session{
		ID:            sid,
		Identity:      id,
		Authenticated: true,
		ExpiresAt:     m.now().Add(m.ttl).UTC(),
	}
	if err := m.store.Create(ctx, s); err != nil {
		return nil, err
	}
	token, err := utils.NewSessionToken(m.secret, sid, s.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("session: sign cookie: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return &s, nil
}

// Rotate deletes the session the request carries, if any, and starts a new
// one for id.  Logins go through Rotate so the session id changes.
func (m *Manager) Rotate(ctx context.Context, w http.ResponseWriter, r *http.Request, id model.Identity) (*Session, error) {
	if old, _ := m.Load(ctx, r); old != nil {
		if err := m.store.Delete(ctx, old.ID); err != nil {
			return nil, err
		}
	}
	return m.Start(ctx, w, id)
}

// Load resolves the request's cookie to a live session.  A missing,
// tampered or expired cookie yields (nil, nil); only store failures are
// returned as errors.
func (m *Manager) Load(ctx context.Context, r *http.Request) (*Session, error) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return nil, nil
	}
	sid, err := utils.ParseSessionToken(m.secret, c.Value)
	if err != nil {
		return nil, nil
	}
	s, err := m.store.Get(ctx, sid)
	if err != nil || s == nil {
		return nil, err
	}
	if s.Expired(m.now()) {
		_ = m.store.Delete(ctx, sid)
		return nil, nil
	}
	return s, nil
}

// Destroy deletes the request's session (if any) and clears the cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var err error
	if s, _ := m.Load(ctx, r); s != nil {
		err = m.store.Delete(ctx, s.ID)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return err
}
