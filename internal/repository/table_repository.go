package repository

import (
	"context"
	"database/sql"

	"github.com/avlonti/restobook/internal/model"
)

// TableRepo provides read access to the restaurant_tables table.  Tables
// are reference data: the service lists them and checks their availability
// but never writes to them.
type TableRepo struct {
	db *sql.DB
}

// NewTableRepo returns a new TableRepo bound to the given database.
func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{db: db} }

// ListAll returns every table ordered by table number.  When no tables
// exist, an empty slice is returned.
func (r *TableRepo) ListAll(ctx context.Context) ([]model.Table, error) {
	const q = `SELECT id, table_number, capacity, created_at, updated_at
               FROM restaurant_tables
               ORDER BY table_number`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tables := make([]model.Table, 0)
	for rows.Next() {
		var t model.Table
		if err := rows.Scan(&t.ID, &t.TableNumber, &t.Capacity, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tables, nil
}

// ReservedTableIDs returns the set of table IDs that have a non-cancelled
// reservation for exactly the given date and time.  Cancelled reservations
// release their slot and therefore do not appear in the set.
func (r *TableRepo) ReservedTableIDs(ctx context.Context, date, timeSlot string) (map[uint64]struct{}, error) {
	const q = `SELECT table_id FROM reservations
               WHERE reservation_date = ? AND reservation_time = ? AND status <> ?`
	rows, err := r.db.QueryContext(ctx, q, date, timeSlot, model.ReservationCancelled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	reserved := make(map[uint64]struct{})
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		reserved[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reserved, nil
}

// TableAvailability pairs a table with its availability for one slot.  It
// is the unit of the availability response.
type TableAvailability struct {
	ID          uint64 `json:"id"`
	TableNumber uint32 `json:"table_number"`
	Capacity    uint32 `json:"capacity"`
	IsAvailable bool   `json:"is_available"`
}

// MarkAvailability annotates each table with whether it is free for the
// slot the reserved set was computed for.  A table is unavailable iff its
// id appears in the reserved set.  The function is pure so the marking
// rule can be tested without a database.
func MarkAvailability(tables []model.Table, reserved map[uint64]struct{}) []TableAvailability {
	out := make([]TableAvailability, 0, len(tables))
	for _, t := range tables {
		_, taken := reserved[t.ID]
		out = append(out, TableAvailability{
			ID:          t.ID,
			TableNumber: t.TableNumber,
			Capacity:    t.Capacity,
			IsAvailable: !taken,
		})
	}
	return out
}
