// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by someone
// else, while ErrSlotTaken signals that the requested table slot is
// already claimed by a non-cancelled reservation.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an update cannot be performed because
// of conflicting state, such as cancelling a reservation whose slot
// has already started. Handlers should translate this into an HTTP
// 409 response.
var ErrConflict = errors.New("conflict")

// ErrSlotTaken is returned by the reservation writer when another
// non-cancelled reservation already holds the requested
// (table, date, time) slot. This is the hard uniqueness guarantee the
// availability view only approximates; handlers map it to HTTP 409.
var ErrSlotTaken = errors.New("slot already reserved")

// ErrTableNotFound is returned when a referenced table does not exist.
var ErrTableNotFound = errors.New("table not found")

// ErrMenuItemNotFound is returned when a checkout references a menu
// item that does not exist on the menu.
var ErrMenuItemNotFound = errors.New("menu item not found")
