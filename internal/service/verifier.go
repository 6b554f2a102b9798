package service

import (
	"context"

	"github.com/iliyamo/wonderland-tickets/internal/model"
)

// Verifier turns a (username, password) pair into an Identity.  There is one
// implementation per login scheme; the login handlers only see this
// interface.
type Verifier interface {
	Verify(ctx context.Context, username, password string) (model.Identity, error)
}

// AdminVerifier accepts only the configured admin credential.
type AdminVerifier struct{ Creds *CredentialService }

func (v AdminVerifier) Verify(_ context.Context, username, password string) (model.Identity, error) {
	if !v.Creds.ValidateAdmin(username, password) {
		return model.Identity{}, ErrInvalidCredentials
	}
	return v.Creds.AdminIdentity(), nil
}

// GuestVerifier accepts registered guest accounts.
type GuestVerifier struct{ Creds *CredentialService }

func (v GuestVerifier) Verify(ctx context.Context, username, password string) (model.Identity, error) {
	g, err := v.Creds.ValidateUser(ctx, username, password)
	if err != nil {
		return model.Identity{}, err
	}
	return model.Identity{UserID: g.ID, Username: g.Username, Role: model.RoleGuest}, nil
}
