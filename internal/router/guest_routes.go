package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wonderland-tickets/internal/handler"
	"github.com/iliyamo/wonderland-tickets/internal/middleware"
)

// RegisterGuest registers the routes any signed-in caller may use.  The
// admin passes this gate too and can book seats.  The gate is attached per
// route since the paths share no prefix.
func RegisterGuest(e *echo.Echo, d Deps) {
	e.GET("/user-dashboard", handler.Page("user-dashboard.html", "Book seats"), middleware.RequireAuth)
	e.GET("/book-seats-form", handler.Page("book-seats-form.html", "Book seats"), middleware.RequireAuth)
	e.POST("/book-seats", d.Catalog.BookSeats, middleware.RequireAuth)
}
