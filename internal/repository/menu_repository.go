package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/avlonti/restobook/internal/model"
)

// MenuRepo provides read access to the menu_items table.  The menu is
// reference data; the only writers are out-of-band migrations.
type MenuRepo struct {
	db *sql.DB
}

// NewMenuRepo returns a new MenuRepo bound to the given database.
func NewMenuRepo(db *sql.DB) *MenuRepo { return &MenuRepo{db: db} }

// ListAll returns the full menu ordered by name.
func (r *MenuRepo) ListAll(ctx context.Context) ([]model.MenuItem, error) {
	const q = `SELECT id, name, description, price_cents, created_at, updated_at
               FROM menu_items
               ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.MenuItem, 0)
	for rows.Next() {
		var it model.MenuItem
		var desc sql.NullString
		if err := rows.Scan(&it.ID, &it.Name, &desc, &it.PriceCents, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		if desc.Valid {
			d := desc.String
			it.Description = &d
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// GetByIDs returns the menu items for the given ids keyed by id.  It is
// used by the checkout path to price cart lines from the authoritative
// menu rather than trusting client-supplied prices.  Ids that do not
// exist are simply absent from the result; callers decide whether that is
// an error.  Passing an empty slice returns an empty map.
func (r *MenuRepo) GetByIDs(ctx context.Context, ids []uint64) (map[uint64]model.MenuItem, error) {
	out := make(map[uint64]model.MenuItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	placeholders := make([]string, 0, len(ids))
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	q := `SELECT id, name, description, price_cents, created_at, updated_at
          FROM menu_items
          WHERE id IN (` + strings.Join(placeholders, ",") + `)`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it model.MenuItem
		var desc sql.NullString
		if err := rows.Scan(&it.ID, &it.Name, &desc, &it.PriceCents, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		if desc.Valid {
			d := desc.String
			it.Description = &d
		}
		out[it.ID] = it
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
