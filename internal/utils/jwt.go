package utils // package utils provides helper functions for session tokens and hashing

import (
	"crypto/rand"  // secure random number generation
	"encoding/hex" // hex encoding of random bytes
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ErrInvalidSessionToken is returned for cookies that fail signature,
// expiry or shape checks.
var ErrInvalidSessionToken = errors.New("invalid session token")

// NewSessionToken signs the opaque session id into an HS256 JWT that is
// stored in the session cookie.  The token expires together with the
// server-side session so a stolen cookie cannot outlive it.
func NewSessionToken(secret, sessionID string, exp time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sid": sessionID,
		"exp": exp.Unix(),
		"iat": time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseSessionToken verifies the cookie value and returns the session id it
// carries.  Only HMAC-signed tokens are accepted.
func ParseSessionToken(secret, raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSessionToken
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return "", ErrInvalidSessionToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidSessionToken
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", ErrInvalidSessionToken
	}
	return sid, nil
}

// RandomHex returns a hex‑encoded string generated from n bytes of
// cryptographically secure random data.  Session ids use 32 bytes.
func RandomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
