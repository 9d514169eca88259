package handler

import (
	"database/sql"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avlonti/restobook/internal/model"
	"github.com/avlonti/restobook/internal/payment"
	"github.com/avlonti/restobook/internal/queue"
	"github.com/avlonti/restobook/internal/repository"
	queuepub "github.com/avlonti/restobook/internal/service/queue_publisher"
)

// PaymentHandler bridges checkout to the card processor and receives its
// webhook callbacks.  Creating an intent never mutates local state; a
// reservation only becomes confirmed when the processor's signed webhook
// reports a successful payment.
type PaymentHandler struct {
	Bridge        *payment.Bridge
	WebhookSecret string
	ResvRepo      *repository.ReservationRepo
	TableRepo     *repository.TableRepo
	OrderRepo     *repository.OrderRepo
}

// NewPaymentHandler constructs a PaymentHandler.
func NewPaymentHandler(bridge *payment.Bridge, webhookSecret string, resvRepo *repository.ReservationRepo, tableRepo *repository.TableRepo, orderRepo *repository.OrderRepo) *PaymentHandler {
	if bridge == nil || resvRepo == nil || tableRepo == nil || orderRepo == nil {
		panic("nil dependency passed to NewPaymentHandler")
	}
	return &PaymentHandler{
		Bridge:        bridge,
		WebhookSecret: webhookSecret,
		ResvRepo:      resvRepo,
		TableRepo:     tableRepo,
		OrderRepo:     orderRepo,
	}
}

// intentReq is the body of POST /v1/payments/intent.
type intentReq struct {
	ReservationID uint64  `json:"reservation_id"`
	Amount        float64 `json:"amount"`
}

// CreateIntent handles POST /v1/payments/intent.  The caller must own the
// referenced reservation and it must still be pending.  Processor
// failures surface as 502 with a generic message; the detail goes to the
// server log only.
func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req intentReq
	if err := c.Bind(&req); err != nil || req.ReservationID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must be positive"})
	}
	ctx := c.Request().Context()
	_, _, _, status, err := h.ResvRepo.GetSlotForUser(ctx, req.ReservationID, userID)
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
	if status != model.ReservationPending {
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is not pending"})
	}

	result, err := h.Bridge.CreateIntent(req.Amount, req.ReservationID)
	if err != nil {
		if errors.Is(err, payment.ErrInvalidAmount) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must be positive"})
		}
		log.Printf("payment intent creation failed for reservation %d: %v", req.ReservationID, err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "payment provider unavailable"})
	}
	return c.JSON(http.StatusOK, echo.Map{"clientSecret": result.ClientSecret})
}

// Webhook handles POST /v1/payments/webhook, the processor's callback.
// The payload signature is verified before anything else; an unsigned or
// tampered payload is rejected with 400.  Successful intents confirm the
// matching pending reservation and emit a reservation.confirmed event.
// Replayed deliveries find the reservation already confirmed and are
// acknowledged without side effects.
func (h *PaymentHandler) Webhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable payload"})
	}
	event, err := payment.ParseEvent(payload, c.Request().Header.Get("Stripe-Signature"), h.WebhookSecret)
	if err != nil {
		log.Printf("webhook rejected: %v", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid webhook payload"})
	}

	switch event.Type {
	case payment.EventIntentSucceeded:
		return h.confirmReservation(c, event)
	case payment.EventIntentFailed:
		log.Printf("payment failed for reservation %d (intent %s)", event.ReservationID, event.IntentID)
		return c.JSON(http.StatusOK, echo.Map{"received": true})
	default:
		// Unhandled event types are acknowledged so Stripe stops retrying.
		return c.JSON(http.StatusOK, echo.Map{"received": true})
	}
}

// confirmReservation applies a successful payment: the pending
// reservation is flipped to confirmed with the intent id recorded, and a
// notification event is published for downstream consumers.
func (h *PaymentHandler) confirmReservation(c echo.Context, event payment.IntentEvent) error {
	ctx := c.Request().Context()
	changed, err := h.ResvRepo.Confirm(ctx, event.ReservationID, event.IntentID)
	if err != nil {
		log.Printf("confirm failed for reservation %d: %v", event.ReservationID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to confirm reservation"})
	}
	if !changed {
		// Already confirmed or cancelled; treat the delivery as a replay.
		return c.JSON(http.StatusOK, echo.Map{"received": true})
	}

	res, err := h.ResvRepo.GetByID(ctx, event.ReservationID)
	if err != nil {
		log.Printf("event enrichment failed for reservation %d: %v", event.ReservationID, err)
		return c.JSON(http.StatusOK, echo.Map{"received": true})
	}
	evt := queue.ReservationConfirmedEvent{
		ReservationID:   res.ID,
		UserID:          res.UserID,
		TableID:         res.TableID,
		ReservationDate: res.ReservationDate,
		ReservationTime: res.ReservationTime,
		CustomerEmail:   res.CustomerEmail,
		PaymentRef:      event.IntentID,
		ConfirmedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if tables, err := h.TableRepo.ListAll(ctx); err == nil {
		for _, t := range tables {
			if t.ID == res.TableID {
				evt.TableNumber = t.TableNumber
				break
			}
		}
	}
	if detail, err := h.ResvRepo.GetByIDForUser(ctx, res.ID, res.UserID); err == nil && detail.OrderTotalCents != nil {
		evt.OrderTotalCents = *detail.OrderTotalCents
	}
	if err := queuepub.PublishReservationConfirmed(ctx, evt); err != nil {
		// Confirmation already committed; the notification is best effort.
		log.Printf("publish failed for reservation %d: %v", res.ID, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"received": true})
}
