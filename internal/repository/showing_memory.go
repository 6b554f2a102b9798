package repository

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/wonderland-tickets/internal/model"
)

// MemoryShowingRepo keeps the catalog in process memory.  It backs
// CATALOG_DRIVER=memory for local runs and is the store used by tests.
// Showings are kept in insertion (= id) order.
type MemoryShowingRepo struct {
	mu       sync.RWMutex
	showings []model.Showing
	nextID   uint64
}

func NewMemoryShowingRepo() *MemoryShowingRepo {
	return &MemoryShowingRepo{nextID: 1}
}

func (r *MemoryShowingRepo) Insert(_ context.Context, s *model.Showing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	s.ID = r.nextID
	s.Version = 0
	s.CreatedAt, s.UpdatedAt = now, now
	r.nextID++
	r.showings = append(r.showings, *s)
	return nil
}

func (r *MemoryShowingRepo) FindByName(_ context.Context, name string) (*model.Showing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.showings {
		if s.Name == name {
			out := s
			return &out, nil
		}
	}
	return nil, ErrShowingNotFound
}

func (r *MemoryShowingRepo) ListAll(_ context.Context) ([]model.Showing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Showing, len(r.showings))
	copy(out, r.showings)
	return out, nil
}

func (r *MemoryShowingRepo) ListByCategory(_ context.Context, category string) ([]model.Showing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Showing, 0)
	for _, s := range r.showings {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *MemoryShowingRepo) UpdateSeats(_ context.Context, id, expectedVersion uint64, seats int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 || r.showings[i].Version != expectedVersion {
		return false, nil
	}
	r.showings[i].AvailableSeats = seats
	r.showings[i].Version++
	r.showings[i].UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *MemoryShowingRepo) DeleteByID(_ context.Context, id uint64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}
	r.showings = append(r.showings[:i], r.showings[i+1:]...)
	return true, nil
}

// indexOf must be called with r.mu held.
func (r *MemoryShowingRepo) indexOf(id uint64) int {
	for i := range r.showings {
		if r.showings[i].ID == id {
			return i
		}
	}
	return -1
}
