package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/wonderland-tickets/internal/model"
	"github.com/iliyamo/wonderland-tickets/internal/repository"
	"github.com/iliyamo/wonderland-tickets/internal/utils"
)

// AdminCredential is the single configured administrator.
type AdminCredential struct {
	Username    string
	Password    string
	DisplayName string // identity stored in the session, "Aptech" by default
}

// SeedGuest is a guest account created at startup.
type SeedGuest struct {
	Username string
	Password string
}

// DefaultSeedGuests are the demo accounts the service starts with.
var DefaultSeedGuests = []SeedGuest{
	{Username: "abc", Password: "123"},
	{Username: "user1", Password: "user"},
}

// CredentialService answers "is this (username, password) valid" for the
// admin and for guests, and registers new guests.
type CredentialService struct {
	guests        repository.GuestStore
	adminUser     string
	adminHash     string
	adminIdentity model.Identity
	bcryptCost    int
}

// NewCredentialService hashes the admin password once so later checks
// never compare plaintext.
func NewCredentialService(guests repository.GuestStore, admin AdminCredential, bcryptCost int) (*CredentialService, error) {
	if admin.Username == "" || admin.Password == "" {
		return nil, errors.New("admin username and password must be set")
	}
	hash, err := utils.HashPassword(admin.Password, bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	name := admin.DisplayName
	if name == "" {
		name = admin.Username
	}
	return &CredentialService{
		guests:        guests,
		adminUser:     admin.Username,
		adminHash:     hash,
		adminIdentity: model.Identity{Username: name, Role: model.RoleAdmin},
		bcryptCost:    bcryptCost,
	}, nil
}

// Seed registers the given guests, skipping usernames that already exist.
func (s *CredentialService) Seed(ctx context.Context, seeds []SeedGuest) error {
	for _, g := range seeds {
		if _, err := s.Register(ctx, g.Username, g.Password); err != nil && !errors.Is(err, ErrUsernameTaken) {
			return err
		}
	}
	return nil
}

// ValidateAdmin reports whether username/password is the admin pair.  The
// bcrypt check runs even on a username mismatch so timing does not reveal
// which half was wrong.
func (s *CredentialService) ValidateAdmin(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.adminUser)) == 1
	passOK := utils.VerifyPassword(s.adminHash, password)
	return userOK && passOK
}

// AdminIdentity is the identity stored in an admin session.
func (s *CredentialService) AdminIdentity() model.Identity {
	return s.adminIdentity
}

// ValidateUser checks a guest login.  It fails with ErrUnknownUser or
// ErrWrongPassword, or ErrStoreUnavailable when the guest store errors.
func (s *CredentialService) ValidateUser(ctx context.Context, username, password string) (*model.Guest, error) {
	g, err := s.guests.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if !utils.VerifyPassword(g.PasswordHash, password) {
		return nil, ErrWrongPassword
	}
	return g, nil
}

// Register appends a new guest.  A taken username fails with
// ErrUsernameTaken and leaves the accounts unchanged.
func (s *CredentialService) Register(ctx context.Context, username, password string) (*model.Guest, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	g, err := s.guests.Create(ctx, username, hash)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return g, nil
}
