package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/wonderland-tickets/internal/model"
)

// GuestStore persists guest accounts.  Create must reject a username that is
// already taken with ErrUsernameExists and leave the existing accounts as
// they were.
type GuestStore interface {
	FindByUsername(ctx context.Context, username string) (*model.Guest, error)
	Create(ctx context.Context, username, passwordHash string) (*model.Guest, error)
}

// GuestRepo mirrors the 'guests' table.  Registrations survive restarts,
// unlike the in-memory store.
type GuestRepo struct{ DB *sql.DB }

func NewGuestRepo(db *sql.DB) *GuestRepo { return &GuestRepo{DB: db} }

// mysqlDuplicateEntry is the server error number for a UNIQUE violation.
const mysqlDuplicateEntry = 1062

// Create inserts a guest and returns it with its generated ID.  The UNIQUE
// index on username serializes concurrent registrations for the same name.
func (r *GuestRepo) Create(ctx context.Context, username, passwordHash string) (*model.Guest, error) {
	username = strings.TrimSpace(username)
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO guests (username, password_hash) VALUES (?,?)",
		username, passwordHash)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
			return nil, ErrUsernameExists
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.getByID(ctx, uint64(id))
}

// FindByUsername fetches a guest by exact username.
func (r *GuestRepo) FindByUsername(ctx context.Context, username string) (*model.Guest, error) {
	var g model.Guest
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,password_hash,created_at FROM guests WHERE username=? LIMIT 1",
		strings.TrimSpace(username)).Scan(&g.ID, &g.Username, &g.PasswordHash, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *GuestRepo) getByID(ctx context.Context, id uint64) (*model.Guest, error) {
	var g model.Guest
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,password_hash,created_at FROM guests WHERE id=? LIMIT 1",
		id).Scan(&g.ID, &g.Username, &g.PasswordHash, &g.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}
