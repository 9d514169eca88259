package router

import (
	"github.com/labstack/echo/v4"

	"github.com/avlonti/restobook/internal/handler"
	"github.com/avlonti/restobook/internal/middleware"
	"github.com/avlonti/restobook/internal/model"
)

// RegisterStaff registers the staff-only endpoints under /v1/staff.  All
// routes require a valid JWT with the STAFF role.
func RegisterStaff(e *echo.Echo, h *handler.StaffHandler, jwtSecret string) {
	g := e.Group(
		"/v1/staff",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleStaff),
	)
	g.GET("/reservations", h.ListByDate)
}
