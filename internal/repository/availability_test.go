package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avlonti/restobook/internal/model"
)

func TestMarkAvailability(t *testing.T) {
	tables := []model.Table{
		{ID: 1, TableNumber: 1, Capacity: 2},
		{ID: 2, TableNumber: 2, Capacity: 4},
		{ID: 3, TableNumber: 3, Capacity: 4},
	}

	t.Run("table unavailable iff referenced by a reservation for the slot", func(t *testing.T) {
		reserved := map[uint64]struct{}{2: {}}
		out := MarkAvailability(tables, reserved)
		assert.Len(t, out, 3)
		assert.True(t, out[0].IsAvailable)
		assert.False(t, out[1].IsAvailable)
		assert.True(t, out[2].IsAvailable)
	})

	t.Run("reservations for other slots leave every table available", func(t *testing.T) {
		// the reserved set is slot-scoped, so another date/time means an empty set
		out := MarkAvailability(tables, map[uint64]struct{}{})
		for _, ta := range out {
			assert.True(t, ta.IsAvailable)
		}
	})

	t.Run("no tables yields empty slice", func(t *testing.T) {
		out := MarkAvailability(nil, map[uint64]struct{}{1: {}})
		assert.Empty(t, out)
	})
}
