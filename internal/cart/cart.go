// Package cart models the customer's in-memory food selection as an
// explicit value object.  Every transition is a pure method, so callers
// always hold a complete, inspectable aggregate.  Nothing in this package
// touches storage; the cart is only persisted at checkout, when the
// reservation writer turns it into an order.
package cart

// Line is one cart entry: a menu item reference, how many units the
// customer wants and the unit price in cents at the moment the item was
// added.  The price travels with the line so checkout can snapshot it
// without re-reading the menu.
type Line struct {
	MenuItemID uint64 `json:"menu_item_id"`
	Name       string `json:"name"`
	Quantity   uint32 `json:"quantity"`
	PriceCents uint32 `json:"price_cents"`
}

// Cart is an ordered collection of lines.  The zero value is an empty,
// usable cart.
type Cart struct {
	Lines []Line `json:"lines"`
}

// Add returns a cart with one more unit of the given item.  When the item
// is already present its quantity is incremented; otherwise a new line is
// appended.  The receiver is not modified.
func (c Cart) Add(menuItemID uint64, name string, priceCents uint32) Cart {
	out := make([]Line, len(c.Lines))
	copy(out, c.Lines)
	for i, l := range out {
		if l.MenuItemID == menuItemID {
			out[i].Quantity = l.Quantity + 1
			return Cart{Lines: out}
		}
	}
	out = append(out, Line{MenuItemID: menuItemID, Name: name, Quantity: 1, PriceCents: priceCents})
	return Cart{Lines: out}
}

// Remove returns a cart without any line for the given item.  Removing an
// absent item is a no-op.
func (c Cart) Remove(menuItemID uint64) Cart {
	out := make([]Line, 0, len(c.Lines))
	for _, l := range c.Lines {
		if l.MenuItemID != menuItemID {
			out = append(out, l)
		}
	}
	return Cart{Lines: out}
}

// SetQuantity returns a cart with the line for the given item set to the
// requested quantity.  A quantity of zero removes the line, matching the
// decrement-to-zero behaviour of the checkout UI.  Setting the quantity of
// an absent item is a no-op.
func (c Cart) SetQuantity(menuItemID uint64, quantity uint32) Cart {
	if quantity == 0 {
		return c.Remove(menuItemID)
	}
	out := make([]Line, len(c.Lines))
	copy(out, c.Lines)
	for i, l := range out {
		if l.MenuItemID == menuItemID {
			out[i].Quantity = quantity
			break
		}
	}
	return Cart{Lines: out}
}

// TotalCents sums quantity times unit price over all lines.  The sum is
// carried in uint64 so extreme quantities cannot wrap it silently.
func (c Cart) TotalCents() uint64 {
	var total uint64
	for _, l := range c.Lines {
		total += uint64(l.Quantity) * uint64(l.PriceCents)
	}
	return total
}

// IsEmpty reports whether the cart has no lines.  Checkout uses this to
// decide whether an order row should be written at all.
func (c Cart) IsEmpty() bool { return len(c.Lines) == 0 }
