package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/wonderland-tickets/internal/model"
)

// MemoryGuestRepo is the process-lifetime guest list.  Every read and every
// check-then-append runs under one mutex, so concurrent registrations can
// neither reuse an id nor both claim the same username.
type MemoryGuestRepo struct {
	mu     sync.Mutex
	guests []model.Guest
}

func NewMemoryGuestRepo() *MemoryGuestRepo {
	return &MemoryGuestRepo{}
}

func (r *MemoryGuestRepo) FindByUsername(_ context.Context, username string) (*model.Guest, error) {
	username = strings.TrimSpace(username)
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.guests {
		if g.Username == username {
			out := g
			return &out, nil
		}
	}
	return nil, ErrGuestNotFound
}

// Create appends a guest whose id is max(existing ids)+1, or 1 when empty.
func (r *MemoryGuestRepo) Create(_ context.Context, username, passwordHash string) (*model.Guest, error) {
	username = strings.TrimSpace(username)
	r.mu.Lock()
	defer r.mu.Unlock()
	var maxID uint64
	for _, g := range r.guests {
		if g.Username == username {
			return nil, ErrUsernameExists
		}
		if g.ID > maxID {
			maxID = g.ID
		}
	}
	g := model.Guest{
		ID:           maxID + 1,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	r.guests = append(r.guests, g)
	return &g, nil
}

// Len returns the number of accounts.
func (r *MemoryGuestRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.guests)
}
