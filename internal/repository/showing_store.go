package repository

import (
	"context"

	"github.com/iliyamo/wonderland-tickets/internal/model"
)

// ShowingStore is the catalog persistence contract.  Lookups by business key
// return the showing with the lowest id when duplicates exist, so "first
// match" is deterministic across implementations.
type ShowingStore interface {
	// Insert stores a new showing and fills in its ID, Version and timestamps.
	Insert(ctx context.Context, s *model.Showing) error
	// FindByName returns the first showing whose name equals name.
	FindByName(ctx context.Context, name string) (*model.Showing, error)
	// ListAll returns every showing ordered by id.
	ListAll(ctx context.Context) ([]model.Showing, error)
	// ListByCategory returns the showings of one category ordered by id.
	ListByCategory(ctx context.Context, category string) ([]model.Showing, error)
	// UpdateSeats sets available_seats on the row identified by id only if
	// its version still equals expectedVersion, bumping the version.  It
	// reports false (and no error) when the precondition no longer holds.
	UpdateSeats(ctx context.Context, id, expectedVersion uint64, seats int) (bool, error)
	// DeleteByID removes one showing and reports whether a row was removed.
	DeleteByID(ctx context.Context, id uint64) (bool, error)
}
