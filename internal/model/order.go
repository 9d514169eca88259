package model

import "time"

// OrderPlaced is the initial (and for now only) order state.
const OrderPlaced = "placed"

// Order groups the food items a customer pre-ordered alongside a
// reservation.  An order exists only when the cart was non-empty at
// checkout; a reservation without food has no order row.  The total is
// denormalized in cents so the payment amount never depends on a live
// join against menu prices.
//
// Fields:
//  ID               – primary key identifier.
//  ReservationID    – reservation this order belongs to.
//  Status           – order state (mirrors the reservation lifecycle).
//  TotalAmountCents – sum of item snapshots in cents.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Order struct {
	ID               uint64    // orders.id
	ReservationID    uint64    // orders.reservation_id
	Status           string    // orders.status
	TotalAmountCents uint32    // orders.total_amount_cents
	CreatedAt        time.Time // orders.created_at
	UpdatedAt        time.Time // orders.updated_at
}

// OrderItem is one line of an order.  PriceCentsAtOrder snapshots the menu
// price at checkout time; later menu edits do not change what the customer
// owes.
//
// Fields:
//  ID                – primary key identifier.
//  OrderID           – order this line belongs to.
//  MenuItemID        – dish being ordered.
//  Quantity          – number of units.
//  PriceCentsAtOrder – unit price in cents captured at checkout.
//  CreatedAt         – creation timestamp.
type OrderItem struct {
	ID                uint64    // order_items.id
	OrderID           uint64    // order_items.order_id
	MenuItemID        uint64    // order_items.menu_item_id
	Quantity          uint32    // order_items.quantity
	PriceCentsAtOrder uint32    // order_items.price_cents_at_order
	CreatedAt         time.Time // order_items.created_at
}
