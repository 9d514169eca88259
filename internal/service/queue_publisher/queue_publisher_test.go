package queue_publisher

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	q "github.com/avlonti/restobook/internal/queue"
)

func TestStampEventIDFillsEmptyID(t *testing.T) {
	out := stampEventID(q.ReservationConfirmedEvent{ReservationID: 7})
	require.NotEmpty(t, out.EventID)
	_, err := uuid.Parse(out.EventID)
	assert.NoError(t, err)
	assert.Equal(t, uint64(7), out.ReservationID)
}

func TestStampEventIDKeepsCallerID(t *testing.T) {
	out := stampEventID(q.ReservationConfirmedEvent{EventID: "evt-1", ReservationID: 7})
	assert.Equal(t, "evt-1", out.EventID)
}
