package payment

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripe "github.com/stripe/stripe-go"
)

func TestIntentHandlerRejectsNonPost(t *testing.T) {
	called := false
	b := NewBridgeWithCreator("usd", func(p *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
		called = true
		return &stripe.PaymentIntent{}, nil
	})
	h := IntentHandler(b)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(method, "/create-payment-intent", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, method)
	}
	assert.False(t, called, "processor must not be contacted for non-POST requests")
}

func TestIntentHandlerPreflight(t *testing.T) {
	b := NewBridgeWithCreator("usd", nil)
	rec := httptest.NewRecorder()
	IntentHandler(b)(rec, httptest.NewRequest(http.MethodOptions, "/create-payment-intent", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestIntentHandlerProcessorErrorIsGeneric(t *testing.T) {
	b := NewBridgeWithCreator("usd", func(p *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
		return nil, errors.New("card_declined: insufficient funds")
	})
	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"amount": 12.5, "reservation_id": 7}`)
	IntentHandler(b)(rec, httptest.NewRequest(http.MethodPost, "/create-payment-intent", body))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "payment provider unavailable", resp["error"])
	assert.NotContains(t, rec.Body.String(), "card_declined")
}

func TestIntentHandlerValidatesBody(t *testing.T) {
	called := false
	b := NewBridgeWithCreator("usd", func(p *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
		called = true
		return &stripe.PaymentIntent{}, nil
	})
	h := IntentHandler(b)

	cases := []string{
		`not json`,
		`{"amount": 0, "reservation_id": 7}`,
		`{"amount": -3, "reservation_id": 7}`,
		`{"amount": 10}`,
	}
	for _, body := range cases {
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodPost, "/create-payment-intent", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	assert.False(t, called)
}

func TestIntentHandlerReturnsClientSecret(t *testing.T) {
	b := NewBridgeWithCreator("usd", func(p *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
		return &stripe.PaymentIntent{ID: "pi_123", ClientSecret: "pi_123_secret_abc"}, nil
	})
	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"amount": 42, "reservation_id": 9}`)
	IntentHandler(b)(rec, httptest.NewRequest(http.MethodPost, "/create-payment-intent", body))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "pi_123_secret_abc", resp["clientSecret"])
}
