// Package payment wraps the payment processor behind one small core.  The
// booking flow used to need three near-identical intent endpoints for its
// deployment targets; all of them now call Bridge.CreateIntent and differ
// only in their transport adapter.  Confirmation authority also lives here:
// ParseEvent verifies webhook signatures so that only processor-signed
// events can flip a reservation to confirmed.
package payment

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	stripe "github.com/stripe/stripe-go"
	"github.com/stripe/stripe-go/paymentintent"
)

// ErrInvalidAmount is returned when the requested charge is zero or
// negative.  The processor is never contacted in that case.
var ErrInvalidAmount = errors.New("amount must be greater than 0")

// IntentResult carries the fields the client needs to drive the hosted
// payment element: the client secret scoped to the new intent, and the
// intent id for correlation in logs.
type IntentResult struct {
	ClientSecret string
	IntentID     string
}

// createFunc creates a payment intent at the processor.  It is a seam for
// tests; production bridges use paymentintent.New.
type createFunc func(*stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)

// Bridge is the single payment-intent core shared by every deployment
// variant of the bridge endpoint.
type Bridge struct {
	currency string
	create   createFunc
}

// NewBridge configures the Stripe client with the given secret key and
// returns a Bridge charging in the given currency ("usd" when empty).
func NewBridge(secretKey, currency string) *Bridge {
	stripe.Key = secretKey
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	return &Bridge{currency: currency, create: paymentintent.New}
}

// NewBridgeWithCreator returns a Bridge that uses the supplied creation
// function instead of the live Stripe client.  Tests use this to exercise
// the bridge without network access.
func NewBridgeWithCreator(currency string, create createFunc) *Bridge {
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	return &Bridge{currency: currency, create: create}
}

// MinorUnits converts a decimal currency amount to integer minor units.
// Rounding (not truncation) keeps 0.1 at 10 cents and 19.999 at 2000.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateIntent asks the processor for a payment intent covering the given
// amount (in currency units) with the reservation id stored as metadata.
// The idempotency key is derived from the reservation and amount, so a
// retried request for the same charge reuses the original intent instead
// of minting a duplicate charge attempt.
func (b *Bridge) CreateIntent(amount float64, reservationID uint64) (IntentResult, error) {
	if amount <= 0 {
		return IntentResult{}, ErrInvalidAmount
	}
	minor := MinorUnits(amount)
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(minor),
		Currency: stripe.String(b.currency),
	}
	params.AddMetadata("reservation_id", strconv.FormatUint(reservationID, 10))
	params.SetIdempotencyKey(fmt.Sprintf("resv-%d-%d", reservationID, minor))

	pi, err := b.create(params)
	if err != nil {
		return IntentResult{}, err
	}
	return IntentResult{ClientSecret: pi.ClientSecret, IntentID: pi.ID}, nil
}
