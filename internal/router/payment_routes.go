package router

import (
	"github.com/labstack/echo/v4"

	"github.com/avlonti/restobook/internal/handler"
	"github.com/avlonti/restobook/internal/middleware"
	"github.com/avlonti/restobook/internal/model"
)

// RegisterPayments registers the payment endpoints.  Intent creation is
// customer-scoped; the webhook is unauthenticated because the processor
// authenticates itself through the payload signature, which the handler
// verifies before acting.
func RegisterPayments(e *echo.Echo, h *handler.PaymentHandler, jwtSecret string) {
	g := e.Group(
		"/v1/payments",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleCustomer),
	)
	g.POST("/intent", h.CreateIntent)

	e.POST("/v1/payments/webhook", h.Webhook)
}
