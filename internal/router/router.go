// Package router wires handlers, authentication and role checks onto the
// Echo instance.  Route registration is split by audience: public browse,
// authenticated customers, staff, and the payment endpoints.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/avlonti/restobook/internal/handler"
	"github.com/avlonti/restobook/internal/middleware"
	"github.com/avlonti/restobook/internal/model"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints.  Register, login,
// the two refresh variants and logout live under /v1/auth and need no
// session; /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleCustomer, model.RoleStaff),
	)
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated browse endpoints: the
// floor plan, the menu and slot availability.  cacheMW, when non-nil,
// fronts these read-heavy routes with the Redis response cache.
func RegisterPublic(e *echo.Echo, b *handler.BrowseHandler, cacheMW echo.MiddlewareFunc) {
	g := e.Group("/v1")
	if cacheMW != nil {
		g.Use(cacheMW)
	}
	g.GET("/tables", b.GetTables)
	g.GET("/menu", b.GetMenu)
	g.GET("/availability", b.GetAvailability)
}
