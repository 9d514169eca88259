package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddNewAndExistingItem(t *testing.T) {
	c := Cart{}
	c = c.Add(1, "margherita", 1050)
	c = c.Add(2, "tiramisu", 650)
	c = c.Add(1, "margherita", 1050)

	assert.Len(t, c.Lines, 2)
	assert.Equal(t, uint32(2), c.Lines[0].Quantity)
	assert.Equal(t, uint32(1), c.Lines[1].Quantity)
	assert.Equal(t, uint64(2*1050+650), c.TotalCents())
}

func TestAddDoesNotMutateReceiver(t *testing.T) {
	orig := Cart{}.Add(1, "margherita", 1050)
	_ = orig.Add(1, "margherita", 1050)
	assert.Equal(t, uint32(1), orig.Lines[0].Quantity)
}

func TestRemove(t *testing.T) {
	c := Cart{}.Add(1, "margherita", 1050).Add(2, "tiramisu", 650)
	c = c.Remove(1)
	assert.Len(t, c.Lines, 1)
	assert.Equal(t, uint64(2), c.Lines[0].MenuItemID)

	// removing something absent is a no-op
	c = c.Remove(99)
	assert.Len(t, c.Lines, 1)
}

func TestSetQuantity(t *testing.T) {
	c := Cart{}.Add(1, "margherita", 1050)
	c = c.SetQuantity(1, 3)
	assert.Equal(t, uint32(3), c.Lines[0].Quantity)
	assert.Equal(t, uint64(3150), c.TotalCents())

	// zero quantity drops the line
	c = c.SetQuantity(1, 0)
	assert.True(t, c.IsEmpty())
}

func TestTotalCentsLargeQuantityDoesNotWrap(t *testing.T) {
	c := Cart{}.Add(1, "margherita", 1050).SetQuantity(1, 4_100_000_000)
	assert.Equal(t, uint64(4_100_000_000)*1050, c.TotalCents())
}

func TestTotalCentsEmptyCart(t *testing.T) {
	assert.Equal(t, uint64(0), Cart{}.TotalCents())
	assert.True(t, Cart{}.IsEmpty())
}
