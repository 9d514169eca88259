// Package handler exposes HTTP handlers for both authenticated and public
// endpoints. This file defines the public browsing API: the floor plan,
// the menu and slot availability. These routes allow unauthenticated users
// to look around before signing in to book.
package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avlonti/restobook/internal/repository"
)

// BrowseHandler aggregates repositories needed for unauthenticated
// browsing.  It produces sanitized responses suitable for public
// consumption (no user ids, no payment references).
type BrowseHandler struct {
	TableRepo *repository.TableRepo // provides access to table reference data
	MenuRepo  *repository.MenuRepo  // provides access to the menu
}

// NewBrowseHandler constructs a BrowseHandler with the provided
// repositories.  All dependencies must be non-nil.
func NewBrowseHandler(tableRepo *repository.TableRepo, menuRepo *repository.MenuRepo) *BrowseHandler {
	if tableRepo == nil || menuRepo == nil {
		panic("nil repository passed to NewBrowseHandler")
	}
	return &BrowseHandler{TableRepo: tableRepo, MenuRepo: menuRepo}
}

// PublicTable represents a table exposed via the public API.
type PublicTable struct {
	ID          uint64 `json:"id"`
	TableNumber uint32 `json:"table_number"`
	Capacity    uint32 `json:"capacity"`
}

// PublicMenuItem represents a menu item in list responses.
type PublicMenuItem struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	PriceCents  uint32  `json:"price_cents"`
}

// GetTables handles GET /v1/tables.  It returns the raw floor plan
// without availability annotations.
func (h *BrowseHandler) GetTables(c echo.Context) error {
	ctx := c.Request().Context()
	tables, err := h.TableRepo.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch tables"})
	}
	out := make([]PublicTable, 0, len(tables))
	for _, t := range tables {
		out = append(out, PublicTable{ID: t.ID, TableNumber: t.TableNumber, Capacity: t.Capacity})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetMenu handles GET /v1/menu.  It returns the full menu.
func (h *BrowseHandler) GetMenu(c echo.Context) error {
	ctx := c.Request().Context()
	items, err := h.MenuRepo.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch menu"})
	}
	out := make([]PublicMenuItem, 0, len(items))
	for _, it := range items {
		out = append(out, PublicMenuItem{ID: it.ID, Name: it.Name, Description: it.Description, PriceCents: it.PriceCents})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// parseSlot validates the date and time query parameters of an
// availability request.  Dates use "2006-01-02" and times "15:04"; dates
// in the past are rejected outright rather than silently filtered.
func parseSlot(date, timeSlot string) (string, string, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", timeSlot); err != nil {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, "invalid time, expected HH:MM")
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if d.Before(today) {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, "date must not be in the past")
	}
	return d.Format("2006-01-02"), timeSlot, nil
}

// GetAvailability handles GET /v1/availability?date=YYYY-MM-DD&time=HH:MM.
// Every table is returned annotated with is_available for the requested
// slot: a table is unavailable iff a non-cancelled reservation exists
// with exactly that date and time referencing it.  Any fetch error aborts
// the whole query with a generic failure message.
func (h *BrowseHandler) GetAvailability(c echo.Context) error {
	date, slot, err := parseSlot(c.QueryParam("date"), c.QueryParam("time"))
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	tables, err := h.TableRepo.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch tables"})
	}
	reserved, err := h.TableRepo.ReservedTableIDs(ctx, date, slot)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch tables"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date":  date,
		"time":  slot,
		"items": repository.MarkAvailability(tables, reserved),
	})
}
