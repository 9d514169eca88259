package model

import "time"

// Reservation status values.  A reservation is created as pending, becomes
// confirmed only when the payment processor reports a successful payment
// through the webhook, and may be cancelled by the customer while the slot
// is still in the future.  There is no transition out of cancelled.
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
)

// Reservation records a customer's claim on a table for an exact service
// slot (date + time).  At most one non-cancelled reservation may exist per
// (table, date, time); the repository enforces this at insert time.
//
// Fields:
//  ID              – primary key identifier.
//  TableID         – table being reserved.
//  ReservationDate – service date in "2006-01-02" form.
//  ReservationTime – slot time in "15:04" form.
//  Status          – pending, confirmed or cancelled.
//  UserID          – customer who made the reservation.
//  CustomerEmail   – contact email captured at booking time.
//  PaymentRef      – payment intent id once payment succeeded, if any.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Reservation struct {
	ID              uint64    // reservations.id
	TableID         uint64    // reservations.table_id
	ReservationDate string    // reservations.reservation_date
	ReservationTime string    // reservations.reservation_time
	Status          string    // reservations.status
	UserID          uint64    // reservations.user_id
	CustomerEmail   string    // reservations.customer_email
	PaymentRef      *string   // reservations.payment_ref (nullable)
	CreatedAt       time.Time // reservations.created_at
	UpdatedAt       time.Time // reservations.updated_at
}
