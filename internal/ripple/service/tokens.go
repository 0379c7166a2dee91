package service

import (
	"context"
	"time"

	"github.com/ripplehq/ripple/internal/ripple/domain"
	"github.com/ripplehq/ripple/pkg/jwtx"
)

type TokenService struct {
	Signer     jwtx.Signer
	SessionTTL time.Duration
}

// Issue mints a session token for an authenticated user.
func (s *TokenService) Issue(ctx context.Context, user domain.User) (string, error) {
	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	return s.Signer.Sign(user.ID, user.Username, ttl)
}
