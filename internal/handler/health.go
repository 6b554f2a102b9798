package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler answers load balancer probes.  Ping, when set, checks the
// catalog store.
type HealthHandler struct {
	Ping func(ctx context.Context) error
}

func (h HealthHandler) Health(c echo.Context) error {
	if h.Ping != nil {
		ctx, cancel := requestCtx(c)
		defer cancel()
		if err := h.Ping(ctx); err != nil {
			c.Logger().Errorf("health: catalog store: %v", err)
			return c.String(http.StatusServiceUnavailable, "catalog store unavailable")
		}
	}
	return c.String(http.StatusOK, "ok")
}
