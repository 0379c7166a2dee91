package store

import (
	"context"
	"errors"
	"time"

	"github.com/ripplehq/ripple/internal/ripple/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and to stop callers from accidentally nesting transactions.
type Store interface {
	Users() Users
	Posts() Posts
	Follows() Follows

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to run multi-step mutations.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login and profile lookups.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the username or email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateBio mutates the profile text and bumps updated_at.
	UpdateBio(ctx context.Context, userID string, bio string) error

	// TouchLastSeen sets last_seen. Idempotent; safe to call on every
	// authenticated request.
	TouchLastSeen(ctx context.Context, userID string, t time.Time) error
}

type Posts interface {
	// CreatePost inserts a post. Posts are append-only; there is no update
	// or delete.
	CreatePost(ctx context.Context, p domain.Post) error

	// GetPostByID returns a post by id.
	GetPostByID(ctx context.Context, id string) (domain.Post, error)

	// ListByAuthor returns the author's posts newest first, ties broken by
	// id descending.
	ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]domain.Post, error)

	// ListFeed returns posts authored by any of authorIDs joined with
	// author username/email, ordered created_at DESC then id DESC.
	ListFeed(ctx context.Context, authorIDs []string, limit, offset int) ([]domain.FeedItem, error)

	// CountByAuthor returns how many posts the author has.
	CountByAuthor(ctx context.Context, authorID string) (int, error)
}

type Follows interface {
	// CreateFollow inserts the (follower, followed) edge. Duplicate edges
	// and self-pairs are silent no-ops; the composite primary key and the
	// follower<>followed check are the serialization points.
	CreateFollow(ctx context.Context, followerID, followedID string) error

	// DeleteFollow removes the edge if present; no-op when absent.
	DeleteFollow(ctx context.Context, followerID, followedID string) error

	// IsFollowing reports whether the edge exists.
	IsFollowing(ctx context.Context, followerID, followedID string) (bool, error)

	// ListFollowing returns the users userID follows.
	ListFollowing(ctx context.Context, userID string) ([]domain.User, error)

	// ListFollowers returns the users following userID.
	ListFollowers(ctx context.Context, userID string) ([]domain.User, error)

	// FollowingIDs returns just the ids userID follows; the feed query
	// builds its eligible-author set from this.
	FollowingIDs(ctx context.Context, userID string) ([]string, error)

	// CountFollowing and CountFollowers are direct counts; the projections
	// are never materialized just to measure them.
	CountFollowing(ctx context.Context, userID string) (int, error)
	CountFollowers(ctx context.Context, userID string) (int, error)
}
