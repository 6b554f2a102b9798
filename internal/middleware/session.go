package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wonderland-tickets/internal/model"
	"github.com/iliyamo/wonderland-tickets/internal/session"
)

// Redirect targets for rejected requests.
const (
	LoginPage      = "/login"
	AdminLoginPage = "/admin-login"
)

const sessionKey = "session"

// LoadSession resolves the session cookie once per request and stores the
// live session (if any) in the context.  A store failure is logged and the
// request continues unauthenticated.
func LoadSession(mgr *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s, err := mgr.Load(c.Request().Context(), c.Request())
			if err != nil {
				c.Logger().Warnf("session lookup failed: %v", err)
			}
			if s != nil && s.Authenticated {
				c.Set(sessionKey, s)
			}
			return next(c)
		}
	}
}

// CurrentSession returns the session LoadSession attached, or nil.
func CurrentSession(c echo.Context) *session.Session {
	s, _ := c.Get(sessionKey).(*session.Session)
	return s
}

// CurrentIdentity returns the caller's identity and whether they are
// authenticated.
func CurrentIdentity(c echo.Context) (model.Identity, bool) {
	if s := CurrentSession(c); s != nil {
		return s.Identity, true
	}
	return model.Identity{}, false
}

// RequireAuth redirects unauthenticated requests to the guest login page.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := CurrentIdentity(c); !ok {
			return c.Redirect(http.StatusFound, LoginPage)
		}
		return next(c)
	}
}
