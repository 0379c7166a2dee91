package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ripplehq/ripple/internal/ripple/domain"
	"github.com/ripplehq/ripple/internal/ripple/store"
	"github.com/ripplehq/ripple/internal/ripple/store/drivers/sqlite"
	"github.com/ripplehq/ripple/pkg/cryptox"
	"github.com/ripplehq/ripple/pkg/idx"
	"github.com/stretchr/testify/require"
)

var pepperOnce sync.Once

// newTestStore returns an in-memory store with migrations applied.
func newTestStore(t *testing.T) store.Store {
	t.Helper()

	pepperOnce.Do(func() {
		cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))
	})

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

// seedUser inserts a user directly; password hashing is exercised in the
// UsersService tests, not here.
func seedUser(t *testing.T, st store.Store, username string) domain.User {
	t.Helper()

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

// seedPost inserts a post pinned to a known instant so ordering scenarios
// are deterministic.
func seedPost(t *testing.T, st store.Store, author domain.User, body string, at time.Time) domain.Post {
	t.Helper()

	p := domain.Post{
		ID:        idx.NewAt(at).String(),
		AuthorID:  author.ID,
		Body:      body,
		CreatedAt: at.UTC(),
	}
	require.NoError(t, st.Posts().CreatePost(context.Background(), p))
	return p
}
