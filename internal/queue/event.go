// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when a payment webhook confirms a
// reservation.  It carries enough information for downstream consumers to
// log, notify, or refresh availability views without querying the primary
// database.  This stream is the service's change-notification channel:
// anything that used to watch the reservations table subscribes here.
type ReservationConfirmedEvent struct {
	EventID          string `json:"event_id"`
	ReservationID    uint64 `json:"reservation_id"`
	UserID           uint64 `json:"user_id"`
	TableID          uint64 `json:"table_id"`
	TableNumber      uint32 `json:"table_number"`
	ReservationDate  string `json:"reservation_date"`
	ReservationTime  string `json:"reservation_time"`
	CustomerEmail    string `json:"customer_email"`
	PaymentRef       string `json:"payment_ref"`
	OrderTotalCents  uint32 `json:"order_total_cents"`
	ConfirmedAt      string `json:"confirmed_at"`
}
