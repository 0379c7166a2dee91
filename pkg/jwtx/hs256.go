package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken reports a token that failed parsing or signature checks.
	ErrInvalidToken = errors.New("jwtx: invalid token")

	// ErrTokenExpired reports a structurally valid but expired token.
	ErrTokenExpired = errors.New("jwtx: token expired")
)

// HS256 signs and verifies tokens with a shared HMAC-SHA256 secret.
// It implements both Signer and Verifier.
type HS256 struct {
	Issuer string
	Secret []byte
}

func NewHS256(issuer string, secret []byte) *HS256 {
	return &HS256{Issuer: issuer, Secret: secret}
}

func (h *HS256) Sign(userID, username string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    h.Issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.Secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

func (h *HS256) Verify(raw string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
			}
			return h.Secret, nil
		},
		jwt.WithIssuer(h.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
