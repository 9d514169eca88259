package router

import (
	"github.com/labstack/echo/v4"

	"github.com/avlonti/restobook/internal/handler"
	"github.com/avlonti/restobook/internal/middleware"
	"github.com/avlonti/restobook/internal/model"
)

// RegisterCustomer registers the customer booking endpoints under /v1.
// All routes require a valid JWT with the CUSTOMER role.  Customers
// create reservations (optionally with a food order), list and inspect
// their own bookings, and cancel upcoming ones.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleCustomer),
	)
	g.POST("/reservations", h.Create)
	g.GET("/my-reservations", h.List)
	g.GET("/reservations/:id", h.Get)
	g.DELETE("/reservations/:id", h.Cancel)
}
