package model

import "time"

// Table represents a physical dining table in the restaurant.  Tables are
// reference data from the application's point of view: the service reads
// them to render the floor plan and check availability but never creates
// or mutates them at runtime.  This struct corresponds to a row in the
// `restaurant_tables` table.
//
// Fields:
//  ID          – primary key identifier.
//  TableNumber – human-facing number printed on the floor plan.
//  Capacity    – number of seats at the table.
//  CreatedAt   – timestamp when the table was created.
//  UpdatedAt   – timestamp of last update.
type Table struct {
	ID          uint64    // restaurant_tables.id
	TableNumber uint32    // restaurant_tables.table_number
	Capacity    uint32    // restaurant_tables.capacity
	CreatedAt   time.Time // restaurant_tables.created_at
	UpdatedAt   time.Time // restaurant_tables.updated_at
}
