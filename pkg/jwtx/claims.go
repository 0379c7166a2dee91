// Package jwtx issues and verifies the HS256 session tokens the HTTP layer
// uses for bearer authentication. Tokens carry the user id as the subject
// claim; the core services never see tokens, only the resolved user id.
package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the session token claims. Username is duplicated from the
// subject's user record so handlers can log a human-readable principal
// without a store round trip.
type Claims struct {
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// DefaultSessionTTL is how long issued session tokens remain valid.
const DefaultSessionTTL = 24 * time.Hour

// Signer mints session tokens.
type Signer interface {
	Sign(userID, username string, ttl time.Duration) (string, error)
}

// Verifier checks a raw token and returns its claims.
type Verifier interface {
	Verify(raw string) (Claims, error)
}
