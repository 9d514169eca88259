package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutContext(t *testing.T) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/reservations", strings.NewReader("{}"))
	return e.NewContext(req, httptest.NewRecorder())
}

// Quantity validation runs before any menu lookup, so these cases are
// exercised on a handler with no repositories attached.
func TestBuildCartRejectsBadQuantities(t *testing.T) {
	h := &CustomerHandler{}

	cases := []struct {
		name  string
		items []checkoutItem
	}{
		{"zero quantity", []checkoutItem{{MenuItemID: 1, Quantity: 0}}},
		{"over the cap", []checkoutItem{{MenuItemID: 1, Quantity: maxItemQuantity + 1}}},
		{"huge quantity", []checkoutItem{{MenuItemID: 1, Quantity: 4_000_000_000}}},
		{"duplicates merged over the cap", []checkoutItem{
			{MenuItemID: 1, Quantity: maxItemQuantity},
			{MenuItemID: 1, Quantity: 1},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.buildCart(checkoutContext(t), tc.items)
			require.Error(t, err)
			he, ok := err.(*echo.HTTPError)
			require.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, he.Code)
		})
	}
}

func TestBuildCartEmptyItemsYieldsEmptyCart(t *testing.T) {
	h := &CustomerHandler{}
	ct, err := h.buildCart(checkoutContext(t), nil)
	require.NoError(t, err)
	assert.True(t, ct.IsEmpty())
}
