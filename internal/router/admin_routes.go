package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wonderland-tickets/internal/handler"
	"github.com/iliyamo/wonderland-tickets/internal/middleware"
)

// RegisterAdmin registers the catalog management routes.  Every one of them
// requires the admin role; others are sent to the admin login.
func RegisterAdmin(e *echo.Echo, d Deps) {
	admin := middleware.RequireAdmin
	e.GET("/admin-dashboard", handler.Page("admin-dashboard.html", "Admin dashboard"), admin)
	e.GET("/add-movie-form", handler.Page("add-movie-form.html", "Add a movie"), admin)
	e.GET("/delete-movie-form", handler.Page("delete-movie-form.html", "Delete a movie"), admin)
	e.GET("/update-seats-form", handler.Page("update-seats-form.html", "Update available seats"), admin)

	e.POST("/add-movie", d.Catalog.Add, admin)
	e.POST("/delete-movie", d.Catalog.Delete, admin)
	e.POST("/update-seats", d.Catalog.UpdateSeats, admin)
}
