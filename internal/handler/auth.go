package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wonderland-tickets/internal/service"
	"github.com/iliyamo/wonderland-tickets/internal/session"
)

// Login outcome routes.
const (
	AdminErrorPage = "/admin-error"
	UserErrorPage  = "/user-error"
)

// AuthHandler bundles dependencies for login, registration and logout.
type AuthHandler struct {
	Sessions *session.Manager
	Admin    service.Verifier
	Guests   service.Verifier
	Creds    *service.CredentialService
}

func NewAuthHandler(sessions *session.Manager, creds *service.CredentialService) *AuthHandler {
	return &AuthHandler{
		Sessions: sessions,
		Admin:    service.AdminVerifier{Creds: creds},
		Guests:   service.GuestVerifier{Creds: creds},
		Creds:    creds,
	}
}

// AdminLogin: POST /admin-login.
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	return h.login(c, h.Admin, service.AdminDashboard, AdminErrorPage)
}

// UserLogin: POST /user-local.
func (h *AuthHandler) UserLogin(c echo.Context) error {
	return h.login(c, h.Guests, service.UserDashboard, UserErrorPage)
}

func (h *AuthHandler) login(c echo.Context, v service.Verifier, success, failure string) error {
	ctx, cancel := requestCtx(c)
	defer cancel()

	id, err := v.Verify(ctx, c.FormValue("username"), c.FormValue("password"))
	if err != nil {
		if errors.Is(err, service.ErrStoreUnavailable) {
			c.Logger().Errorf("login: %v", err)
			return alert(c, http.StatusServiceUnavailable, "Login is temporarily unavailable", "/")
		}
		return c.Redirect(http.StatusFound, failure)
	}
	if _, err := h.Sessions.Rotate(ctx, c.Response(), c.Request(), id); err != nil {
		c.Logger().Errorf("login: start session: %v", err)
		return alert(c, http.StatusServiceUnavailable, "Login is temporarily unavailable", "/")
	}
	return c.Redirect(http.StatusFound, success)
}

// AdminError: GET /admin-error.
func (h *AuthHandler) AdminError(c echo.Context) error {
	return alert(c, http.StatusOK, "Incorrect Admin username or password", "/")
}

// UserError: GET /user-error.
func (h *AuthHandler) UserError(c echo.Context) error {
	return alert(c, http.StatusOK, "Incorrect username or password", "/")
}

// Register: POST /register creates a guest account.
func (h *AuthHandler) Register(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()

	_, err := h.Creds.Register(ctx, c.FormValue("username"), c.FormValue("password"))
	switch {
	case err == nil:
		return alert(c, http.StatusOK, "Registration successful! Please login.", "/login")
	case errors.Is(err, service.ErrUsernameTaken):
		return alert(c, http.StatusOK, "Username already exists!", "/register")
	case errors.Is(err, service.ErrMissingCredentials):
		return alert(c, http.StatusOK, "Username and password are required", "/register")
	default:
		c.Logger().Errorf("register: %v", err)
		return alert(c, http.StatusInternalServerError, "Registration failed, please try again later", "/register")
	}
}

// AdminRegister: POST /admin-register is always refused.
func (h *AuthHandler) AdminRegister(c echo.Context) error {
	return alert(c, http.StatusOK, "Admin registration is restricted. Please contact system administrator.", "/")
}

// Logout: GET /logout destroys the session and shows the landing page.
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := h.Sessions.Destroy(ctx, c.Response(), c.Request()); err != nil {
		c.Logger().Warnf("logout: %v", err)
	}
	return c.Redirect(http.StatusFound, "/")
}
