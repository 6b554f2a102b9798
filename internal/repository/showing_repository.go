// Package repository contains data access logic for the showing catalog. This
// file implements ShowingStore on top of MySQL. A showing is one movie
// screening with a seat inventory; its business key (movie name) is not
// unique, so every lookup orders by id to make "first match" stable.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"errors"       // errors for sentinel comparisons

	"github.com/iliyamo/wonderland-tickets/internal/model"
)

// showingColumns is the column list shared by every SELECT below.
const showingColumns = `id, movie_name, category, description, actors, show_time, screen_no,
       total_seats, available_seats, version, created_at, updated_at`

// ShowingRepo manages persistence for showings in MySQL.
type ShowingRepo struct {
	db *sql.DB
}

// NewShowingRepo constructs a ShowingRepo with the given DB handle.
func NewShowingRepo(db *sql.DB) *ShowingRepo {
	return &ShowingRepo{db: db}
}

// DB exposes the underlying sql.DB so the guest store can share the pool.
func (r *ShowingRepo) DB() *sql.DB {
	return r.db
}

// Insert adds a new showing and assigns the generated ID back to the struct.
// Duplicate names are accepted; the DB fills version and timestamps.
func (r *ShowingRepo) Insert(ctx context.Context, s *model.Showing) error {
	const q = `INSERT INTO showings
	           (movie_name, category, description, actors, show_time, screen_no, total_seats, available_seats)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		s.Name, s.Category, s.Description, s.Actors, s.ShowTime, s.ScreenNo, s.TotalSeats, s.AvailableSeats)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId() // auto-increment id
	if err != nil {
		return err
	}
	// Re-read the row to pick up DB defaults (version, created_at, updated_at).
	const sel = `SELECT ` + showingColumns + ` FROM showings WHERE id = ?`
	return scanShowing(r.db.QueryRowContext(ctx, sel, id), s)
}

// FindByName returns the showing with the lowest id for the given name.  It
// returns ErrShowingNotFound if there is no matching row.
func (r *ShowingRepo) FindByName(ctx context.Context, name string) (*model.Showing, error) {
	const q = `SELECT ` + showingColumns + ` FROM showings WHERE movie_name = ? ORDER BY id ASC LIMIT 1`
	var s model.Showing
	if err := scanShowing(r.db.QueryRowContext(ctx, q, name), &s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowingNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListAll returns every showing ordered by id.  An empty catalog yields an
// empty, non-nil slice so it encodes as [] rather than null.
func (r *ShowingRepo) ListAll(ctx context.Context) ([]model.Showing, error) {
	const q = `SELECT ` + showingColumns + ` FROM showings ORDER BY id ASC`
	return r.list(ctx, q)
}

// ListByCategory returns all showings in a category ordered by id.
func (r *ShowingRepo) ListByCategory(ctx context.Context, category string) ([]model.Showing, error) {
	const q = `SELECT ` + showingColumns + ` FROM showings WHERE category = ? ORDER BY id ASC`
	return r.list(ctx, q, category)
}

// UpdateSeats performs the conditioned write used by booking and by the
// admin override.  The version predicate makes it a compare-and-swap: a
// concurrent writer that got there first bumps the version and this UPDATE
// then matches zero rows.
func (r *ShowingRepo) UpdateSeats(ctx context.Context, id, expectedVersion uint64, seats int) (bool, error) {
	const q = `UPDATE showings
	           SET available_seats = ?, version = version + 1
	           WHERE id = ? AND version = ?`
	res, err := r.db.ExecContext(ctx, q, seats, id, expectedVersion)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// DeleteByID removes the showing with the given id.
func (r *ShowingRepo) DeleteByID(ctx context.Context, id uint64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM showings WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *ShowingRepo) list(ctx context.Context, q string, args ...interface{}) ([]model.Showing, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]model.Showing, 0)
	for rows.Next() {
		var s model.Showing
		if err := scanShowing(rows, &s); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanShowing(row rowScanner, s *model.Showing) error {
	return row.Scan(
		&s.ID, &s.Name, &s.Category, &s.Description, &s.Actors, &s.ShowTime, &s.ScreenNo,
		&s.TotalSeats, &s.AvailableSeats, &s.Version, &s.CreatedAt, &s.UpdatedAt,
	)
}
