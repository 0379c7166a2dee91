package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/ripplehq/ripple/internal/ripple/domain"
	"github.com/ripplehq/ripple/internal/ripple/store"
	"github.com/ripplehq/ripple/pkg/cryptox"
	"github.com/ripplehq/ripple/pkg/idx"
	"github.com/ripplehq/ripple/pkg/slogx"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrBioTooLong         = errors.New("bio too long")
)

// MaxBioLen bounds the optional profile text in runes.
const MaxBioLen = 140

type UsersService struct {
	Store store.Store
}

// Register creates a new account. The password is hashed before anything is
// persisted; the plaintext never reaches the store.
func (s *UsersService) Register(
	ctx context.Context,
	username, email, password string,
) (domain.User, error) {
	log := slogx.FromContext(ctx)

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// The uniqueness constraint covers both username and email;
			// check which one collided so the caller gets a precise error.
			if _, lookupErr := s.Store.Users().GetUserByUsername(ctx, username); lookupErr == nil {
				return domain.User{}, ErrUsernameTaken
			}
			return domain.User{}, ErrEmailTaken
		}
		log.Error("failed to create user", slog.Any("error", err))
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	log.Debug("user registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// Authenticate verifies a username/password pair. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s *UsersService) Authenticate(
	ctx context.Context,
	username, password string,
) (domain.User, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		log.Warn("password verification failed", slog.String("username", username))
		return domain.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// GetByID fetches a user by id.
func (s *UsersService) GetByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// GetByUsername fetches a user by username.
func (s *UsersService) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return s.Store.Users().GetUserByUsername(ctx, username)
}

// UpdateBio replaces the optional profile text.
func (s *UsersService) UpdateBio(ctx context.Context, userID, bio string) error {
	if utf8.RuneCountInString(bio) > MaxBioLen {
		return ErrBioTooLong
	}
	return s.Store.Users().UpdateBio(ctx, userID, bio)
}

// TouchLastSeen records that the user was just active. Called on every
// authenticated request; idempotent.
func (s *UsersService) TouchLastSeen(ctx context.Context, userID string) error {
	return s.Store.Users().TouchLastSeen(ctx, userID, time.Now().UTC())
}
