package handler

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wonderland-tickets/internal/middleware"
	"github.com/iliyamo/wonderland-tickets/internal/web"
)

// storeTimeout bounds every store round trip made on behalf of a request.
const storeTimeout = 5 * time.Second

func requestCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), storeTimeout)
}

// alert acknowledges a form post the way the browser pages expect: an inline
// alert followed by a client-side redirect.
func alert(c echo.Context, status int, msg, target string) error {
	return c.HTML(status, fmt.Sprintf(
		`<script>alert("%s"); window.location.href = "%s";</script>`,
		template.JSEscapeString(msg), template.JSEscapeString(target)))
}

// Page renders one of the embedded pages with the caller's identity.
func Page(name, title string) echo.HandlerFunc {
	return func(c echo.Context) error {
		p := web.Page{Title: title}
		if id, ok := middleware.CurrentIdentity(c); ok {
			p.Username = id.Username
			p.Admin = id.IsAdmin()
		}
		return c.Render(http.StatusOK, name, p)
	}
}
