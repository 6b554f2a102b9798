package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wonderland-tickets/internal/middleware"
	"github.com/iliyamo/wonderland-tickets/internal/service"
)

// BookSeats: POST /book-seats.  Behind RequireAuth, so an identity is
// always present.
func (h *CatalogHandler) BookSeats(c echo.Context) error {
	id, _ := middleware.CurrentIdentity(c)
	name := c.FormValue("Movie name")

	seats, err := service.ParseSeatCount(c.FormValue("seats-to-book"))
	if err != nil {
		return alert(c, http.StatusOK, "Please enter a valid number of seats", service.DashboardFor(id))
	}

	ctx, cancel := requestCtx(c)
	defer cancel()
	out, err := h.Svc.BookSeats(ctx, name, seats, id)
	switch {
	case err == nil:
		c.Logger().Infof("booking: %s booked %d seat(s) in %q, %d left", id.Username, seats, name, out.Remaining)
		h.purge(c)
		return alert(c, http.StatusOK, out.Message, out.Redirect)
	case errors.Is(err, service.ErrShowingNotFound):
		return c.String(http.StatusOK, out.Message)
	case errors.Is(err, service.ErrInsufficientSeats),
		errors.Is(err, service.ErrInvalidSeatCount),
		errors.Is(err, service.ErrUpdateConflict):
		c.Logger().Infof("booking: %s for %d seat(s) in %q: %v", id.Username, seats, name, err)
		return alert(c, http.StatusOK, out.Message, out.Redirect)
	default:
		c.Logger().Errorf("booking: %q: %v", name, err)
		return c.String(http.StatusInternalServerError, "Failed to book seats")
	}
}
