package model

import "time"

// MenuItem represents a dish on the restaurant menu.  Like tables, menu
// items are reference data: they are listed to customers and their prices
// are snapshotted onto order items at checkout, but the service itself
// never edits the menu.  Prices are stored in integer cents to avoid
// floating point drift in totals.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – dish name shown to customers.
//  Description – optional longer description.
//  PriceCents  – unit price in cents.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type MenuItem struct {
	ID          uint64    // menu_items.id
	Name        string    // menu_items.name
	Description *string   // menu_items.description (nullable)
	PriceCents  uint32    // menu_items.price_cents
	CreatedAt   time.Time // menu_items.created_at
	UpdatedAt   time.Time // menu_items.updated_at
}
