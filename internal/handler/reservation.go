package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avlonti/restobook/internal/cart"
	"github.com/avlonti/restobook/internal/model"
	"github.com/avlonti/restobook/internal/repository"
)

// CustomerHandler serves the authenticated customer endpoints: booking a
// table with an optional food pre-order, listing and inspecting one's own
// reservations, and cancelling them.
type CustomerHandler struct {
	ResvRepo  *repository.ReservationRepo
	OrderRepo *repository.OrderRepo
	MenuRepo  *repository.MenuRepo
	UserRepo  *repository.UserRepo
}

// NewCustomerHandler constructs a CustomerHandler.  All dependencies must
// be non-nil.
func NewCustomerHandler(resvRepo *repository.ReservationRepo, orderRepo *repository.OrderRepo, menuRepo *repository.MenuRepo, userRepo *repository.UserRepo) *CustomerHandler {
	if resvRepo == nil || orderRepo == nil || menuRepo == nil || userRepo == nil {
		panic("nil repository passed to NewCustomerHandler")
	}
	return &CustomerHandler{ResvRepo: resvRepo, OrderRepo: orderRepo, MenuRepo: menuRepo, UserRepo: userRepo}
}

// checkoutItem is one requested order line.  Prices are never accepted
// from the client; they are resolved from the menu at checkout.
type checkoutItem struct {
	MenuItemID uint64 `json:"menu_item_id"`
	Quantity   uint32 `json:"quantity"`
}

// checkoutReq is the body of POST /v1/reservations.
type checkoutReq struct {
	TableID uint64         `json:"table_id"`
	Date    string         `json:"date"`
	Time    string         `json:"time"`
	Items   []checkoutItem `json:"items"`
}

// maxItemQuantity caps the units of one dish per order.  The quantity
// field is client-controlled, so without a bound a single request could
// ask for billions of units.
const maxItemQuantity = 50

// buildCart resolves the requested lines against the menu and returns the
// priced cart.  Duplicate lines for the same dish are merged before the
// cap applies; zero, excessive or unknown items are rejected.  All
// quantity validation happens before the menu lookup.
func (h *CustomerHandler) buildCart(c echo.Context, items []checkoutItem) (cart.Cart, error) {
	if len(items) == 0 {
		return cart.Cart{}, nil
	}
	ids := make([]uint64, 0, len(items))
	wanted := make(map[uint64]uint64, len(items))
	for _, it := range items {
		if it.Quantity == 0 {
			return cart.Cart{}, echo.NewHTTPError(http.StatusBadRequest, "item quantity must be positive")
		}
		if _, seen := wanted[it.MenuItemID]; !seen {
			ids = append(ids, it.MenuItemID)
		}
		wanted[it.MenuItemID] += uint64(it.Quantity)
		if wanted[it.MenuItemID] > maxItemQuantity {
			return cart.Cart{}, echo.NewHTTPError(http.StatusBadRequest, "item quantity too large")
		}
	}
	menu, err := h.MenuRepo.GetByIDs(c.Request().Context(), ids)
	if err != nil {
		return cart.Cart{}, echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch menu")
	}
	var ct cart.Cart
	for _, id := range ids {
		m, ok := menu[id]
		if !ok {
			return cart.Cart{}, echo.NewHTTPError(http.StatusBadRequest, "unknown menu item")
		}
		ct = ct.Add(m.ID, m.Name, m.PriceCents).SetQuantity(m.ID, uint32(wanted[id]))
	}
	return ct, nil
}

// Create handles POST /v1/reservations.  It claims the requested slot as a
// pending reservation in its own transaction, then saves the food order in
// a second transaction.  A failure while saving the order does not undo
// the reservation: the customer keeps the pending slot and can retry
// ordering or pay for the table alone.
func (h *CustomerHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req checkoutReq
	if err := c.Bind(&req); err != nil || req.TableID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	date, slot, err := parseSlot(req.Date, req.Time)
	if err != nil {
		return err
	}
	ct, err := h.buildCart(c, req.Items)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	user, err := h.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	rec := &repository.ReservationRecord{
		TableID:         req.TableID,
		ReservationDate: date,
		ReservationTime: slot,
		UserID:          userID,
		CustomerEmail:   user.Email,
	}
	if err := h.ResvRepo.CreatePending(ctx, rec); err != nil {
		switch {
		case errors.Is(err, repository.ErrSlotTaken):
			return c.JSON(http.StatusConflict, echo.Map{"error": "slot already reserved"})
		case errors.Is(err, repository.ErrTableNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
		}
	}

	resp := echo.Map{
		"reservation_id":   rec.ID,
		"table_id":         rec.TableID,
		"reservation_date": rec.ReservationDate,
		"reservation_time": rec.ReservationTime,
		"status":           rec.Status,
	}

	if !ct.IsEmpty() {
		order, err := h.saveOrder(c, rec.ID, ct)
		if err != nil {
			// The slot is already claimed and committed; report the partial
			// failure instead of rolling the reservation back.
			log.Printf("order save failed for reservation %d: %v", rec.ID, err)
			resp["error"] = "reservation created but order failed"
			return c.JSON(http.StatusCreated, resp)
		}
		resp["order_id"] = order.ID
		resp["order_total_cents"] = order.TotalAmountCents
	}
	return c.JSON(http.StatusCreated, resp)
}

// saveOrder persists the cart as an order with its line items, both in one
// transaction separate from the reservation insert.
func (h *CustomerHandler) saveOrder(c echo.Context, reservationID uint64, ct cart.Cart) (*repository.OrderRecord, error) {
	ctx := c.Request().Context()
	tx, err := h.ResvRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	total := ct.TotalCents()
	if total > math.MaxUint32 {
		return nil, fmt.Errorf("order total %d cents exceeds storable range", total)
	}
	order := &repository.OrderRecord{
		ReservationID:    reservationID,
		Status:           model.OrderPlaced,
		TotalAmountCents: uint32(total),
	}
	if err := h.OrderRepo.CreateTx(ctx, tx, order); err != nil {
		return nil, err
	}
	items := make([]repository.OrderItemRecord, 0, len(ct.Lines))
	for _, line := range ct.Lines {
		items = append(items, repository.OrderItemRecord{
			OrderID:           order.ID,
			MenuItemID:        line.MenuItemID,
			Quantity:          line.Quantity,
			PriceCentsAtOrder: line.PriceCents,
		})
	}
	if err := h.OrderRepo.CreateItemsBulkTx(ctx, tx, items); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return order, nil
}

// List handles GET /v1/my-reservations.  Reservations are returned newest
// first with their table and order summary.
func (h *CustomerHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	details, err := h.ResvRepo.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": details})
}

// Get handles GET /v1/reservations/:id.  It returns one of the caller's
// reservations including the order line items when a food order exists.
// Ownership is enforced in the lookup, so a foreign reservation yields the
// same 404 as a missing one.
func (h *CustomerHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	reservationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	ctx := c.Request().Context()
	detail, err := h.ResvRepo.GetByIDForUser(ctx, reservationID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch reservation"})
	}
	resp := echo.Map{"reservation": detail}
	if detail.OrderID != nil {
		items, err := h.OrderRepo.ItemsByOrder(ctx, *detail.OrderID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch reservation"})
		}
		resp["order_items"] = items
	}
	return c.JSON(http.StatusOK, resp)
}

// Cancel handles DELETE /v1/reservations/:id.  Only the owner may cancel,
// only before the slot has started, and cancelling twice is a conflict.
// The slot is released for other customers immediately.
func (h *CustomerHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	reservationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	ctx := c.Request().Context()
	_, date, slot, status, err := h.ResvRepo.GetSlotForUser(ctx, reservationID, userID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch reservation"})
		}
	}
	if status == model.ReservationCancelled {
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation already cancelled"})
	}
	start, err := time.Parse("2006-01-02 15:04", date+" "+slot)
	if err != nil || !start.After(time.Now().UTC()) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation slot has already started"})
	}
	changed, err := h.ResvRepo.Cancel(ctx, reservationID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel reservation"})
	}
	if !changed {
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation already cancelled"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": reservationID, "status": model.ReservationCancelled})
}
