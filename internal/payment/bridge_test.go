package payment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripe "github.com/stripe/stripe-go"
)

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		amount float64
		want   int64
	}{
		{12.50, 1250},
		{0.1, 10},
		{19.999, 2000}, // rounds, does not truncate
		{10.00, 1000},
		{0.005, 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MinorUnits(tc.amount), "amount %v", tc.amount)
	}
}

func TestCreateIntentBuildsParams(t *testing.T) {
	var got *stripe.PaymentIntentParams
	b := NewBridgeWithCreator("usd", func(p *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
		got = p
		return &stripe.PaymentIntent{ID: "pi_123", ClientSecret: "pi_123_secret"}, nil
	})

	res, err := b.CreateIntent(12.50, 42)
	require.NoError(t, err)
	assert.Equal(t, "pi_123_secret", res.ClientSecret)
	assert.Equal(t, "pi_123", res.IntentID)

	require.NotNil(t, got)
	assert.Equal(t, int64(1250), *got.Amount)
	assert.Equal(t, "usd", *got.Currency)
	assert.Equal(t, "42", got.Metadata["reservation_id"])
	assert.Equal(t, "resv-42-1250", *got.IdempotencyKey)
}

func TestCreateIntentRejectsNonPositiveAmount(t *testing.T) {
	called := false
	b := NewBridgeWithCreator("usd", func(p *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
		called = true
		return nil, nil
	})

	_, err := b.CreateIntent(0, 42)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = b.CreateIntent(-5, 42)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.False(t, called, "processor must not be contacted for invalid amounts")
}

func TestCreateIntentPropagatesProcessorError(t *testing.T) {
	procErr := errors.New("card network unavailable")
	b := NewBridgeWithCreator("usd", func(p *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
		return nil, procErr
	})

	_, err := b.CreateIntent(10, 7)
	assert.ErrorIs(t, err, procErr)
}
