package router // package router defines how HTTP routes are registered

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wonderland-tickets/internal/handler"
	"github.com/iliyamo/wonderland-tickets/internal/middleware"
	"github.com/iliyamo/wonderland-tickets/internal/session"
	"github.com/iliyamo/wonderland-tickets/internal/web"
)

// Deps is everything the routes need.  Limiter guards the credential
// endpoints; Cache fronts the catalog JSON queries.
type Deps struct {
	Auth    *handler.AuthHandler
	Catalog *handler.CatalogHandler
	Health  handler.HealthHandler
	Limiter echo.MiddlewareFunc
	Cache   echo.MiddlewareFunc
}

// RegisterRoutes registers every route.  The session cookie is resolved on
// every request so the gates and pages can see the caller.
func RegisterRoutes(e *echo.Echo, sessions *session.Manager, d Deps) {
	if d.Limiter == nil {
		d.Limiter = passThrough
	}
	if d.Cache == nil {
		d.Cache = passThrough
	}
	if e.Renderer == nil {
		e.Renderer = web.NewRenderer()
	}
	e.Use(middleware.LoadSession(sessions))

	RegisterPublic(e, d)
	RegisterAuth(e, d)
	RegisterGuest(e, d)
	RegisterAdmin(e, d)
}

func passThrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

// RegisterPublic registers the landing page, health check and catalog
// queries.  None of them need a session.
func RegisterPublic(e *echo.Echo, d Deps) {
	e.GET("/", handler.Page("index.html", "Wonderland Tickets"))
	e.GET("/healthz", d.Health.Health)

	e.GET("/get-movies", d.Catalog.ListByCategory, d.Cache)
	e.GET("/get-all-movies", d.Catalog.ListAll, d.Cache)
	e.GET("/get-movie-details", d.Catalog.Details, d.Cache)
}

// RegisterAuth registers login, registration and logout.  The paths under
// /views keep old bookmarks working.
func RegisterAuth(e *echo.Echo, d Deps) {
	login := handler.Page("login.html", "Login")
	e.GET("/login", login)
	e.GET("/views/login.ejs", login)
	e.POST("/user-local", d.Auth.UserLogin, d.Limiter)
	e.GET("/user-error", d.Auth.UserError)

	adminLogin := handler.Page("admin-login.html", "Admin login")
	e.GET("/admin-login", adminLogin)
	e.GET("/views/admin-login.ejs", adminLogin)
	e.POST("/admin-login", d.Auth.AdminLogin, d.Limiter)
	e.GET("/admin-error", d.Auth.AdminError)

	register := handler.Page("register.html", "Register")
	e.GET("/register", register)
	e.GET("/views/register.ejs", register)
	e.POST("/register", d.Auth.Register, d.Limiter)

	adminRegister := handler.Page("admin-register.html", "Admin registration")
	e.GET("/admin-register", adminRegister)
	e.GET("/views/admin-register.ejs", adminRegister)
	e.POST("/admin-register", d.Auth.AdminRegister)

	e.GET("/logout", d.Auth.Logout)
}
