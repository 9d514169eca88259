package repository

import (
	"context"
	"database/sql"

	"github.com/avlonti/restobook/internal/model"
)

// ReservationRepo provides CRUD operations for reservations.  A
// reservation claims one table for one exact service slot.  The writer
// enforces the slot invariant (at most one non-cancelled reservation per
// table, date and time) by serializing claims on the table row before
// inserting.  All timestamp fields are assumed to be stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span the reservation and order repositories.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

// ReservationRecord mirrors the schema of the reservations table.  It is
// used by the repository when constructing or scanning rows.  Business
// logic should use the model.Reservation type instead.
type ReservationRecord struct {
	ID              uint64
	TableID         uint64
	ReservationDate string
	ReservationTime string
	Status          string
	UserID          uint64
	CustomerEmail   string
	PaymentRef      *string
}

// CreatePending inserts a new pending reservation, enforcing the slot
// invariant.  It runs in its own transaction: the table row is locked
// with SELECT ... FOR UPDATE so that two concurrent claims on the same
// table serialize, then the slot is checked for an existing non-cancelled
// reservation, then the row is inserted.  The second of two concurrent
// claims for the same slot observes the first one's row and fails with
// ErrSlotTaken.  ErrTableNotFound is returned when the table id does not
// exist.  On success the generated ID is populated on the record.
func (r *ReservationRepo) CreatePending(ctx context.Context, res *ReservationRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lock the table row.  This is the mutual exclusion point for the slot:
	// concurrent writers for the same table queue here.
	var tableID uint64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM restaurant_tables WHERE id = ? FOR UPDATE`,
		res.TableID).Scan(&tableID)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrTableNotFound
		}
		return err
	}

	// Conflict check under the lock.  Cancelled reservations release the slot.
	var conflicts int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reservations
         WHERE table_id = ? AND reservation_date = ? AND reservation_time = ? AND status <> ?`,
		res.TableID, res.ReservationDate, res.ReservationTime, model.ReservationCancelled).Scan(&conflicts)
	if err != nil {
		return err
	}
	if conflicts > 0 {
		return ErrSlotTaken
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO reservations (table_id, reservation_date, reservation_time, status, user_id, customer_email)
         VALUES (?, ?, ?, ?, ?, ?)`,
		res.TableID, res.ReservationDate, res.ReservationTime, model.ReservationPending, res.UserID, res.CustomerEmail)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	res.Status = model.ReservationPending

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ReservationDetail encapsulates a reservation along with its table and,
// when present, the attached food order.  It is returned by the listing
// queries for display to customers and staff.
type ReservationDetail struct {
	ID               uint64  `json:"id"`
	TableID          uint64  `json:"table_id"`
	TableNumber      uint32  `json:"table_number"`
	ReservationDate  string  `json:"reservation_date"`
	ReservationTime  string  `json:"reservation_time"`
	Status           string  `json:"status"`
	CustomerEmail    string  `json:"customer_email"`
	PaymentRef       *string `json:"payment_ref,omitempty"`
	OrderID          *uint64 `json:"order_id,omitempty"`
	OrderTotalCents  *uint32 `json:"order_total_cents,omitempty"`
}

const detailSelect = `SELECT r.id, r.table_id, t.table_number,
                             DATE_FORMAT(r.reservation_date, '%Y-%m-%d'),
                             TIME_FORMAT(r.reservation_time, '%H:%i'),
                             r.status, r.customer_email, r.payment_ref,
                             o.id, o.total_amount_cents
                      FROM reservations r
                      JOIN restaurant_tables t ON t.id = r.table_id
                      LEFT JOIN orders o ON o.reservation_id = r.id`

// scanDetail reads one detailSelect row into a ReservationDetail.
func scanDetail(scan func(dest ...interface{}) error) (ReservationDetail, error) {
	var d ReservationDetail
	var payRef sql.NullString
	var orderID sql.NullInt64
	var orderTotal sql.NullInt64
	err := scan(&d.ID, &d.TableID, &d.TableNumber,
		&d.ReservationDate, &d.ReservationTime,
		&d.Status, &d.CustomerEmail, &payRef,
		&orderID, &orderTotal)
	if err != nil {
		return d, err
	}
	if payRef.Valid {
		ref := payRef.String
		d.PaymentRef = &ref
	}
	if orderID.Valid {
		oid := uint64(orderID.Int64)
		d.OrderID = &oid
	}
	if orderTotal.Valid {
		total := uint32(orderTotal.Int64)
		d.OrderTotalCents = &total
	}
	return d, nil
}

// GetByIDForUser returns a single reservation for the given user.  When no
// reservation with the specified ID exists for the user, sql.ErrNoRows is
// returned (ownership is enforced in the query, so a foreign reservation
// is indistinguishable from a missing one).
func (r *ReservationRepo) GetByIDForUser(ctx context.Context, reservationID, userID uint64) (*ReservationDetail, error) {
	row := r.db.QueryRowContext(ctx, detailSelect+` WHERE r.id = ? AND r.user_id = ?`, reservationID, userID)
	d, err := scanDetail(row.Scan)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListByUser returns all reservations for the given user ordered by
// creation time descending (newest first).  When no reservations exist,
// an empty slice is returned.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]ReservationDetail, error) {
	rows, err := r.db.QueryContext(ctx, detailSelect+` WHERE r.user_id = ? ORDER BY r.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]ReservationDetail, 0)
	for rows.Next() {
		d, err := scanDetail(rows.Scan)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// ListByDate returns every reservation for a service date ordered by slot
// time.  It backs the staff view of the day's bookings.
func (r *ReservationRepo) ListByDate(ctx context.Context, date string) ([]ReservationDetail, error) {
	rows, err := r.db.QueryContext(ctx, detailSelect+` WHERE r.reservation_date = ? ORDER BY r.reservation_time, t.table_number`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]ReservationDetail, 0)
	for rows.Next() {
		d, err := scanDetail(rows.Scan)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// GetSlotForUser returns the table id, date and time of a reservation
// belonging to the given user, for pre-cancellation checks.  It returns
// sql.ErrNoRows when the reservation does not exist and ErrForbidden when
// it belongs to a different user.
func (r *ReservationRepo) GetSlotForUser(ctx context.Context, reservationID, userID uint64) (uint64, string, string, string, error) {
	const q = `SELECT user_id, table_id,
                      DATE_FORMAT(reservation_date, '%Y-%m-%d'),
                      TIME_FORMAT(reservation_time, '%H:%i'),
                      status
               FROM reservations WHERE id = ?`
	var ownerID, tableID uint64
	var date, slot, status string
	err := r.db.QueryRowContext(ctx, q, reservationID).Scan(&ownerID, &tableID, &date, &slot, &status)
	if err != nil {
		return 0, "", "", "", err
	}
	if ownerID != userID {
		return 0, "", "", "", ErrForbidden
	}
	return tableID, date, slot, status, nil
}

// Cancel flips a reservation to cancelled, releasing its slot for
// rebooking.  Already-cancelled reservations are left untouched; the
// caller learns this through the false return.  The reservation row is
// kept (rather than deleted) so any payment history stays attached.
func (r *ReservationRepo) Cancel(ctx context.Context, reservationID uint64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET status = ? WHERE id = ? AND status <> ?`,
		model.ReservationCancelled, reservationID, model.ReservationCancelled)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Confirm transitions a pending reservation to confirmed and records the
// payment intent id that paid for it.  Only the webhook path calls this;
// there is no client-facing confirm.  The status guard makes the update
// idempotent: replayed webhook deliveries affect zero rows and return
// false without error.
func (r *ReservationRepo) Confirm(ctx context.Context, reservationID uint64, paymentRef string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET status = ?, payment_ref = ? WHERE id = ? AND status = ?`,
		model.ReservationConfirmed, paymentRef, reservationID, model.ReservationPending)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetByID loads one reservation row without ownership filtering.  The
// webhook handler uses it to enrich confirmation events.
func (r *ReservationRepo) GetByID(ctx context.Context, reservationID uint64) (*model.Reservation, error) {
	const q = `SELECT id, table_id,
                      DATE_FORMAT(reservation_date, '%Y-%m-%d'),
                      TIME_FORMAT(reservation_time, '%H:%i'),
                      status, user_id, customer_email, payment_ref, created_at, updated_at
               FROM reservations WHERE id = ?`
	var res model.Reservation
	var payRef sql.NullString
	err := r.db.QueryRowContext(ctx, q, reservationID).Scan(
		&res.ID, &res.TableID, &res.ReservationDate, &res.ReservationTime,
		&res.Status, &res.UserID, &res.CustomerEmail, &payRef, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if payRef.Valid {
		ref := payRef.String
		res.PaymentRef = &ref
	}
	return &res, nil
}
