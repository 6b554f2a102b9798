package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wonderland-tickets/internal/model"
	"github.com/iliyamo/wonderland-tickets/internal/service"
)

// CachePurger drops cached catalog reads after a mutation.
type CachePurger interface {
	Purge(ctx context.Context) error
}

// CatalogHandler serves the showing catalog: JSON queries for everyone and
// form-driven mutations for the admin.
type CatalogHandler struct {
	Svc   *service.BookingService
	Cache CachePurger // may be nil
}

func NewCatalogHandler(svc *service.BookingService, cache CachePurger) *CatalogHandler {
	return &CatalogHandler{Svc: svc, Cache: cache}
}

// purge runs after a successful mutation; a failure only leaves stale reads
// until the cache TTL runs out.
func (h *CatalogHandler) purge(c echo.Context) {
	if h.Cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request().Context()), storeTimeout)
	defer cancel()
	if err := h.Cache.Purge(ctx); err != nil {
		c.Logger().Warnf("catalog: purge cache: %v", err)
	}
}

// ListByCategory: GET /get-movies?category=
func (h *CatalogHandler) ListByCategory(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	showings, err := h.Svc.ListByCategory(ctx, c.QueryParam("category"))
	if err != nil {
		c.Logger().Errorf("catalog: list by category: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch movies"})
	}
	return c.JSON(http.StatusOK, showings)
}

// ListAll: GET /get-all-movies
func (h *CatalogHandler) ListAll(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	showings, err := h.Svc.ListShowings(ctx)
	if err != nil {
		c.Logger().Errorf("catalog: list all: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch movies"})
	}
	return c.JSON(http.StatusOK, showings)
}

// Details: GET /get-movie-details?name=
func (h *CatalogHandler) Details(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	sh, err := h.Svc.ShowingDetails(ctx, c.QueryParam("name"))
	if err != nil {
		if errors.Is(err, service.ErrShowingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Movie not found"})
		}
		c.Logger().Errorf("catalog: details: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch movie details"})
	}
	return c.JSON(http.StatusOK, sh.Detail())
}

// Add: POST /add-movie
func (h *CatalogHandler) Add(c echo.Context) error {
	available, err := service.ParseSeatCount(c.FormValue("Available Seats"))
	if err != nil {
		return alert(c, http.StatusOK, "Available Seats must be a non-negative number", service.AdminDashboard)
	}
	total := 0
	if raw := strings.TrimSpace(c.FormValue("Total Seats")); raw != "" {
		if total, err = service.ParseSeatCount(raw); err != nil {
			return alert(c, http.StatusOK, "Total Seats must be a non-negative number", service.AdminDashboard)
		}
	}

	ctx, cancel := requestCtx(c)
	defer cancel()
	out, _, err := h.Svc.AddShowing(ctx, model.Showing{
		Name:           c.FormValue("Movie name"),
		Category:       strings.TrimSpace(c.FormValue("Category")),
		Description:    c.FormValue("Description"),
		Actors:         c.FormValue("Actors"),
		ShowTime:       strings.TrimSpace(c.FormValue("Show time")),
		ScreenNo:       strings.TrimSpace(c.FormValue("Screen no")),
		TotalSeats:     total,
		AvailableSeats: available,
	})
	if err != nil {
		if errors.Is(err, service.ErrStoreUnavailable) {
			c.Logger().Errorf("catalog: add %q: %v", out.Showing, err)
			return alert(c, http.StatusInternalServerError, out.Message, out.Redirect)
		}
		return alert(c, http.StatusOK, out.Message, out.Redirect)
	}
	h.purge(c)
	return alert(c, http.StatusOK, out.Message, out.Redirect)
}

// Delete: POST /delete-movie
func (h *CatalogHandler) Delete(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	out, err := h.Svc.DeleteShowing(ctx, c.FormValue("Movie name"))
	if err != nil {
		if errors.Is(err, service.ErrStoreUnavailable) {
			c.Logger().Errorf("catalog: delete %q: %v", out.Showing, err)
			return c.String(http.StatusInternalServerError, out.Message)
		}
		// Same plain-text answer as an unknown name on /book-seats.
		return c.String(http.StatusOK, out.Message)
	}
	h.purge(c)
	return alert(c, http.StatusOK, out.Message, out.Redirect)
}

// UpdateSeats: POST /update-seats sets the absolute number of available seats.
func (h *CatalogHandler) UpdateSeats(c echo.Context) error {
	value, err := service.ParseSeatCount(c.FormValue("Available Seats"))
	if err != nil {
		return alert(c, http.StatusOK, "Available Seats must be a non-negative number", service.AdminDashboard)
	}
	ctx, cancel := requestCtx(c)
	defer cancel()
	out, err := h.Svc.SetAvailableSeats(ctx, c.FormValue("Movie name"), value)
	if err != nil {
		if errors.Is(err, service.ErrStoreUnavailable) {
			c.Logger().Errorf("catalog: update seats %q: %v", out.Showing, err)
			return c.String(http.StatusInternalServerError, out.Message)
		}
		return alert(c, http.StatusOK, out.Message, out.Redirect)
	}
	h.purge(c)
	return alert(c, http.StatusOK, out.Message, out.Redirect)
}
