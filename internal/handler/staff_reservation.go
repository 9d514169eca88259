package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avlonti/restobook/internal/repository"
)

// StaffHandler serves the staff-only views of the reservation book.
type StaffHandler struct {
	ResvRepo *repository.ReservationRepo
}

// NewStaffHandler constructs a StaffHandler.
func NewStaffHandler(resvRepo *repository.ReservationRepo) *StaffHandler {
	if resvRepo == nil {
		panic("nil repository passed to NewStaffHandler")
	}
	return &StaffHandler{ResvRepo: resvRepo}
}

// ListByDate handles GET /v1/staff/reservations?date=YYYY-MM-DD.  It
// returns every reservation for the service date ordered by slot time, so
// the floor staff can see the whole day at a glance.  The date defaults
// to today when omitted.
func (h *StaffHandler) ListByDate(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
	}
	details, err := h.ResvRepo.ListByDate(c.Request().Context(), date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"date": date, "items": details})
}
