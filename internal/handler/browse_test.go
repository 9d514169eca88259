package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlotAcceptsFutureSlot(t *testing.T) {
	tomorrow := time.Now().UTC().Add(24 * time.Hour).Format("2006-01-02")
	date, slot, err := parseSlot(tomorrow, "19:30")
	require.NoError(t, err)
	assert.Equal(t, tomorrow, date)
	assert.Equal(t, "19:30", slot)
}

func TestParseSlotAcceptsToday(t *testing.T) {
	today := time.Now().UTC().Format("2006-01-02")
	_, _, err := parseSlot(today, "09:00")
	assert.NoError(t, err)
}

func TestParseSlotRejectsBadInput(t *testing.T) {
	tomorrow := time.Now().UTC().Add(24 * time.Hour).Format("2006-01-02")
	cases := []struct {
		name string
		date string
		slot string
	}{
		{"empty date", "", "19:30"},
		{"malformed date", "31-12-2026", "19:30"},
		{"empty time", tomorrow, ""},
		{"malformed time", tomorrow, "7pm"},
		{"seconds not allowed", tomorrow, "19:30:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := parseSlot(tc.date, tc.slot)
			require.Error(t, err)
			he, ok := err.(*echo.HTTPError)
			require.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, he.Code)
		})
	}
}

func TestParseSlotRejectsPastDate(t *testing.T) {
	yesterday := time.Now().UTC().Add(-24 * time.Hour).Format("2006-01-02")
	_, _, err := parseSlot(yesterday, "19:30")
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}
