package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/wonderland-tickets/internal/model"
	"github.com/iliyamo/wonderland-tickets/internal/repository"
)

var testAdmin = AdminCredential{Username: "Admin", Password: "12345", DisplayName: "Aptech"}

// failingGuests is a GuestStore that is always down.
type failingGuests struct{ err error }

func (f failingGuests) FindByUsername(context.Context, string) (*model.Guest, error) {
	return nil, f.err
}

func (f failingGuests) Create(context.Context, string, string) (*model.Guest, error) {
	return nil, f.err
}

func newCreds(t *testing.T) (*CredentialService, *repository.MemoryGuestRepo) {
	t.Helper()
	guests := repository.NewMemoryGuestRepo()
	creds, err := NewCredentialService(guests, testAdmin, bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, creds.Seed(context.Background(), DefaultSeedGuests))
	return creds, guests
}

func TestNewCredentialService_RequiresAdmin(t *testing.T) {
	_, err := NewCredentialService(repository.NewMemoryGuestRepo(), AdminCredential{Username: "Admin"}, bcrypt.MinCost)
	assert.Error(t, err)
}

func TestSeed_IsIdempotent(t *testing.T) {
	creds, guests := newCreds(t)
	require.NoError(t, creds.Seed(context.Background(), DefaultSeedGuests))
	assert.Equal(t, 2, guests.Len())
}

func TestValidateAdmin(t *testing.T) {
	creds, _ := newCreds(t)
	assert.True(t, creds.ValidateAdmin("Admin", "12345"))
	assert.False(t, creds.ValidateAdmin("Admin", "1234"))
	assert.False(t, creds.ValidateAdmin("admin", "12345"))
	assert.False(t, creds.ValidateAdmin("", ""))

	id := creds.AdminIdentity()
	assert.Equal(t, "Aptech", id.Username)
	assert.True(t, id.IsAdmin())
}

func TestValidateUser(t *testing.T) {
	ctx := context.Background()
	creds, _ := newCreds(t)

	g, err := creds.ValidateUser(ctx, "abc", "123")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), g.ID)

	g, err = creds.ValidateUser(ctx, "user1", "user")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), g.ID)

	_, err = creds.ValidateUser(ctx, "abc", "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)
	_, err = creds.ValidateUser(ctx, "ghost", "123")
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	creds, guests := newCreds(t)

	g, err := creds.Register(ctx, "carol", "pw")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), g.ID)
	assert.NotEqual(t, "pw", g.PasswordHash)

	_, err = creds.ValidateUser(ctx, "carol", "pw")
	assert.NoError(t, err)

	_, err = creds.Register(ctx, "abc", "other")
	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.Equal(t, 3, guests.Len())
	// The first password still works.
	_, err = creds.ValidateUser(ctx, "abc", "123")
	assert.NoError(t, err)

	_, err = creds.Register(ctx, "  ", "pw")
	assert.ErrorIs(t, err, ErrMissingCredentials)
	_, err = creds.Register(ctx, "dave", "")
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestRegister_ConcurrentGetsUniqueIDs(t *testing.T) {
	ctx := context.Background()
	creds, guests := newCreds(t)

	const n = 16
	ids := make(chan uint64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			g, err := creds.Register(ctx, fmt.Sprintf("user-%d", i), "pw")
			if assert.NoError(t, err) {
				ids <- g.ID
			}
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
	assert.Equal(t, n+2, guests.Len())
}

func TestRegister_ConcurrentSameUsername(t *testing.T) {
	ctx := context.Background()
	creds, guests := newCreds(t)

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := creds.Register(ctx, "same", "pw"); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, ErrUsernameTaken)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
	assert.Equal(t, 3, guests.Len())
}

func TestCredentialService_StoreDown(t *testing.T) {
	boom := errors.New("dial tcp: refused")
	creds, err := NewCredentialService(failingGuests{err: boom}, testAdmin, bcrypt.MinCost)
	require.NoError(t, err)

	_, err = creds.ValidateUser(context.Background(), "abc", "123")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, boom)

	_, err = creds.Register(context.Background(), "abc", "123")
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	// Admin checks never touch the guest store.
	assert.True(t, creds.ValidateAdmin("Admin", "12345"))
}

func TestVerifiers(t *testing.T) {
	ctx := context.Background()
	creds, _ := newCreds(t)

	var v Verifier = AdminVerifier{Creds: creds}
	id, err := v.Verify(ctx, "Admin", "12345")
	require.NoError(t, err)
	assert.Equal(t, model.Identity{Username: "Aptech", Role: model.RoleAdmin}, id)
	_, err = v.Verify(ctx, "abc", "123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	v = GuestVerifier{Creds: creds}
	id, err = v.Verify(ctx, "user1", "user")
	require.NoError(t, err)
	assert.Equal(t, model.Identity{UserID: 2, Username: "user1", Role: model.RoleGuest}, id)
	_, err = v.Verify(ctx, "Admin", "12345")
	assert.ErrorIs(t, err, ErrUnknownUser)
}
