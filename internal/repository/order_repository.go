package repository

import (
	"context"
	"database/sql"
)

// OrderRepo provides operations for orders and their line items.  An
// order groups the food a customer pre-ordered with a reservation; line
// items snapshot menu prices at checkout time.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo returns a new OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// OrderRecord mirrors the orders table for insertion.
type OrderRecord struct {
	ID               uint64
	ReservationID    uint64
	Status           string
	TotalAmountCents uint32
}

// OrderItemRecord mirrors the order_items table for insertion.  Only
// fields needed for insertion are exposed.
type OrderItemRecord struct {
	OrderID           uint64
	MenuItemID        uint64
	Quantity          uint32
	PriceCentsAtOrder uint32
}

// CreateTx inserts a new order within the scope of an existing
// transaction and populates the generated ID on the provided record.
// The caller must commit or rollback the transaction.
func (r *OrderRepo) CreateTx(ctx context.Context, tx *sql.Tx, o *OrderRecord) error {
	const q = `INSERT INTO orders (reservation_id, status, total_amount_cents) VALUES (?, ?, ?)`
	result, err := tx.ExecContext(ctx, q, o.ReservationID, o.Status, o.TotalAmountCents)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)
	return nil
}

// CreateItemsBulkTx inserts multiple order_items rows in a single
// statement.  The caller must supply the order ID in each record.  The
// insertion occurs within the provided transaction.  Passing an empty
// slice has no effect and returns nil.
func (r *OrderRepo) CreateItemsBulkTx(ctx context.Context, tx *sql.Tx, items []OrderItemRecord) error {
	if len(items) == 0 {
		return nil
	}
	query := `INSERT INTO order_items (order_id, menu_item_id, quantity, price_cents_at_order) VALUES `
	args := make([]interface{}, 0, len(items)*4)
	for i, it := range items {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?)"
		args = append(args, it.OrderID, it.MenuItemID, it.Quantity, it.PriceCentsAtOrder)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// OrderItemDetail is one order line as shown to customers: the dish name
// joined in from the menu alongside the snapshotted price.
type OrderItemDetail struct {
	MenuItemID        uint64 `json:"menu_item_id"`
	Name              string `json:"name"`
	Quantity          uint32 `json:"quantity"`
	PriceCentsAtOrder uint32 `json:"price_cents_at_order"`
}

// ItemsByOrder returns the line items of an order ordered by dish name.
func (r *OrderRepo) ItemsByOrder(ctx context.Context, orderID uint64) ([]OrderItemDetail, error) {
	const q = `SELECT oi.menu_item_id, m.name, oi.quantity, oi.price_cents_at_order
               FROM order_items oi
               JOIN menu_items m ON m.id = oi.menu_item_id
               WHERE oi.order_id = ?
               ORDER BY m.name`
	rows, err := r.db.QueryContext(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]OrderItemDetail, 0)
	for rows.Next() {
		var it OrderItemDetail
		if err := rows.Scan(&it.MenuItemID, &it.Name, &it.Quantity, &it.PriceCentsAtOrder); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
