package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// userID returns a stable per-caller key for rate limiting: the guest id,
// "admin" for the administrator, or "anon" without a session.
func userID(c echo.Context) string {
	id, ok := CurrentIdentity(c)
	if !ok {
		return "anon"
	}
	if id.IsAdmin() {
		return "admin"
	}
	return strconv.FormatUint(id.UserID, 10)
}
