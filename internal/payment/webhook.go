package payment

import (
	"encoding/json"
	"fmt"
	"strconv"

	stripe "github.com/stripe/stripe-go"
	"github.com/stripe/stripe-go/webhook"
)

// Webhook event types this service acts on.  Everything else is
// acknowledged and ignored.
const (
	EventIntentSucceeded = "payment_intent.succeeded"
	EventIntentFailed    = "payment_intent.payment_failed"
)

// IntentEvent is the distilled form of a processor webhook delivery: the
// event type, the payment intent it refers to and the reservation id that
// was stashed in the intent's metadata at creation time.
type IntentEvent struct {
	Type          string
	IntentID      string
	ReservationID uint64
}

// ParseEvent verifies the webhook signature against the endpoint secret
// and extracts the payment intent payload.  It fails when the signature
// does not check out, when the payload is not a payment intent event, or
// when the reservation_id metadata is missing or malformed, since a
// signed event with no reservation reference cannot be applied to anything.
func ParseEvent(payload []byte, sigHeader, secret string) (IntentEvent, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, secret)
	if err != nil {
		return IntentEvent{}, fmt.Errorf("webhook signature verification failed: %w", err)
	}
	switch event.Type {
	case EventIntentSucceeded, EventIntentFailed:
	default:
		return IntentEvent{Type: event.Type}, nil
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return IntentEvent{}, fmt.Errorf("unmarshal payment intent: %w", err)
	}
	raw, ok := pi.Metadata["reservation_id"]
	if !ok {
		return IntentEvent{}, fmt.Errorf("event %s has no reservation_id metadata", event.ID)
	}
	resID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || resID == 0 {
		return IntentEvent{}, fmt.Errorf("event %s has invalid reservation_id %q", event.ID, raw)
	}
	return IntentEvent{Type: event.Type, IntentID: pi.ID, ReservationID: resID}, nil
}
