package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/wonderland-tickets/internal/config"
	"github.com/iliyamo/wonderland-tickets/internal/model"
	"github.com/iliyamo/wonderland-tickets/internal/session"
)

func ok(c echo.Context) error { return c.String(http.StatusOK, "ok") }

// loginCookies starts a session for id and returns its cookies.
func loginCookies(t *testing.T, mgr *session.Manager, id model.Identity) []*http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	_, err := mgr.Start(context.Background(), rec, id)
	require.NoError(t, err)
	return rec.Result().Cookies()
}

func serve(e *echo.Echo, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGates(t *testing.T) {
	mgr := session.NewManager(session.NewMemoryStore(), "secret", time.Hour, false)
	e := echo.New()
	e.Use(LoadSession(mgr))
	e.GET("/user-dashboard", ok, RequireAuth)
	e.GET("/admin-dashboard", ok, RequireAdmin)

	guest := loginCookies(t, mgr, model.Identity{UserID: 1, Username: "abc", Role: model.RoleGuest})
	admin := loginCookies(t, mgr, model.Identity{Username: "Aptech", Role: model.RoleAdmin})

	rec := serve(e, "/user-dashboard", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, LoginPage, rec.Header().Get(echo.HeaderLocation))

	rec = serve(e, "/admin-dashboard", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, AdminLoginPage, rec.Header().Get(echo.HeaderLocation))

	assert.Equal(t, http.StatusOK, serve(e, "/user-dashboard", guest).Code)
	assert.Equal(t, http.StatusOK, serve(e, "/user-dashboard", admin).Code)
	assert.Equal(t, http.StatusOK, serve(e, "/admin-dashboard", admin).Code)

	rec = serve(e, "/admin-dashboard", guest)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, AdminLoginPage, rec.Header().Get(echo.HeaderLocation))
}

func TestGates_TamperedCookieIsAnonymous(t *testing.T) {
	mgr := session.NewManager(session.NewMemoryStore(), "secret", time.Hour, false)
	e := echo.New()
	e.Use(LoadSession(mgr))
	e.GET("/user-dashboard", ok, RequireAuth)

	cookies := loginCookies(t, mgr, model.Identity{UserID: 1, Username: "abc", Role: model.RoleGuest})
	cookies[0].Value += "x"
	assert.Equal(t, http.StatusFound, serve(e, "/user-dashboard", cookies).Code)
}

func TestUserID(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Equal(t, "anon", userID(c))

	c.Set(sessionKey, &session.Session{Authenticated: true, Identity: model.Identity{UserID: 42, Role: model.RoleGuest}})
	assert.Equal(t, "42", userID(c))

	c.Set(sessionKey, &session.Session{Authenticated: true, Identity: model.Identity{Username: "Aptech", Role: model.RoleAdmin}})
	assert.Equal(t, "admin", userID(c))
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/user-local", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.1")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/user-local")

	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_route"}
	assert.Equal(t, "rl:ip:10.0.0.1:route:POST /user-local", buildRateKey(cfg, c))

	cfg.KeyStrategy = "ip_user"
	assert.Equal(t, "rl:ip:10.0.0.1:user:anon", buildRateKey(cfg, c))
}

func TestWithoutRedisEverythingPassesThrough(t *testing.T) {
	e := echo.New()
	e.GET("/get-all-movies", ok,
		NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil),
		NewResponseCache(config.CacheConfig{Enabled: true}, nil).Middleware())

	rec := serve(e, "/get-all-movies", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))

	var rc *ResponseCache
	assert.NoError(t, rc.Purge(context.Background()))
}

func TestCachePayload(t *testing.T) {
	hdr := http.Header{echo.HeaderContentType: []string{echo.MIMEApplicationJSON}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte(`[]`))
	require.NoError(t, err)

	status, got, body, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, echo.MIMEApplicationJSON, got.Get(echo.HeaderContentType))
	assert.Equal(t, "[]", string(body))

	_, _, _, ok = decodePayload(bs[:5])
	assert.False(t, ok)
}

func TestCaptureWriterLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}
	_, _ = cw.Write([]byte("abc"))
	assert.False(t, cw.truncated())
	_, _ = cw.Write([]byte("def"))
	assert.True(t, cw.truncated())
	assert.Equal(t, "abcdef", rec.Body.String())
}
