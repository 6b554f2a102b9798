package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wonderland-tickets/internal/model"
)

// RequireRole returns a middleware that only lets sessions holding one of
// roles through.  Anonymous callers and callers with another role are
// redirected to loginPage.
func RequireRole(loginPage string, roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := CurrentIdentity(c)
			if !ok || !allowed[id.Role] {
				return c.Redirect(http.StatusFound, loginPage)
			}
			return next(c)
		}
	}
}

// RequireAdmin gates the catalog management routes.
var RequireAdmin = RequireRole(AdminLoginPage, model.RoleAdmin)
