package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	return e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec), rec
}

func TestAlertEscapesMessage(t *testing.T) {
	c, rec := newContext()
	require.NoError(t, alert(c, http.StatusOK, `Movie "X"</script><script>evil()`, "/admin-dashboard"))

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, body, "</script><script>")
	assert.Contains(t, body, `\"X\"`)
	assert.Contains(t, body, `window.location.href = "/admin-dashboard"`)
}

func TestHealth(t *testing.T) {
	c, rec := newContext()
	require.NoError(t, HealthHandler{}.Health(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	c, rec = newContext()
	h := HealthHandler{Ping: func(context.Context) error { return errors.New("down") }}
	require.NoError(t, h.Health(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

type countingPurger struct{ calls int }

func (p *countingPurger) Purge(context.Context) error {
	p.calls++
	return nil
}

func TestPurgeSkipsNilCache(t *testing.T) {
	c, _ := newContext()
	(&CatalogHandler{}).purge(c)

	p := &countingPurger{}
	(&CatalogHandler{Cache: p}).purge(c)
	assert.Equal(t, 1, p.calls)
}
