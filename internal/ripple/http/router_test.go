package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ripplehq/ripple/internal/ripple/service"
	"github.com/ripplehq/ripple/internal/ripple/store/drivers/sqlite"
	"github.com/ripplehq/ripple/pkg/cryptox"
	"github.com/ripplehq/ripple/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var pepperOnce sync.Once

// newTestRouter wires a fully routed Router against an in-memory store.
func newTestRouter(t *testing.T) *Router {
	t.Helper()

	pepperOnce.Do(func() {
		cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))
	})

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer := jwtx.NewHS256("ripple-test", []byte("0123456789abcdef0123456789abcdef"))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := NewRouter(signer, "test", st, logger)
	r.UsersService = &service.UsersService{Store: st}
	r.PostsService = &service.PostsService{Store: st}
	r.FollowsService = &service.FollowsService{Store: st}
	r.FeedService = &service.FeedService{Store: st}
	r.TokenService = &service.TokenService{Signer: signer}
	r.ApplyRoutes()
	return r
}

func doJSON(t *testing.T, r *Router, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

// signup registers a user and returns a session token for them.
func signup(t *testing.T, r *Router, username string) string {
	t.Helper()

	rec := doJSON(t, r, http.MethodPost, "/v1/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, r, http.MethodPost, "/v1/login", "", map[string]string{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	token := decode[tokenResponse](t, rec)
	require.Equal(t, "Bearer", token.TokenType)
	require.NotEmpty(t, token.AccessToken)
	return token.AccessToken
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)

	tests := []struct {
		name string
		body map[string]string
		want int
	}{
		{
			name: "missing username",
			body: map[string]string{"email": "a@example.com", "password": "password123"},
			want: http.StatusBadRequest,
		},
		{
			name: "username with whitespace",
			body: map[string]string{"username": "two words", "email": "a@example.com", "password": "password123"},
			want: http.StatusBadRequest,
		},
		{
			name: "bad email",
			body: map[string]string{"username": "john", "email": "nope", "password": "password123"},
			want: http.StatusBadRequest,
		},
		{
			name: "short password",
			body: map[string]string{"username": "john", "email": "a@example.com", "password": "short"},
			want: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, r, http.MethodPost, "/v1/register", "", tc.body)
			require.Equal(t, tc.want, rec.Code, rec.Body.String())
		})
	}
}

func TestRegisterConflictIsReported(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)

	body := map[string]string{
		"username": "john",
		"email":    "john@example.com",
		"password": "password123",
	}
	rec := doJSON(t, r, http.MethodPost, "/v1/register", "", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/v1/register", "", body)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "conflict", decode[ErrorResponse](t, rec).Error)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)
	signup(t, r, "john")

	rec := doJSON(t, r, http.MethodPost, "/v1/login", "", map[string]string{
		"username": "john",
		"password": "wrong password",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/v1/login", "", map[string]string{
		"username": "ghost",
		"password": "password123",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticationRequired(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/v1/feed", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")

	rec = doJSON(t, r, http.MethodGet, "/v1/feed", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfileFlow(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)
	token := signup(t, r, "john")

	rec := doJSON(t, r, http.MethodGet, "/v1/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[UserResponse](t, rec)
	require.Equal(t, "john", me.Username)
	require.Empty(t, me.Bio)
	require.Nil(t, me.Following)

	rec = doJSON(t, r, http.MethodPut, "/v1/me", token, map[string]string{"bio": "gopher"})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/v1/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "gopher", decode[UserResponse](t, rec).Bio)

	rec = doJSON(t, r, http.MethodGet, "/v1/users/ghost", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostAndTimeline(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)
	token := signup(t, r, "john")

	rec := doJSON(t, r, http.MethodPost, "/v1/posts", token, map[string]string{
		"body": "hello from the router test, this one is in English.",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	post := decode[PostResponse](t, rec)
	require.NotEmpty(t, post.ID)

	rec = doJSON(t, r, http.MethodPost, "/v1/posts", token, map[string]string{"body": "   "})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/v1/users/john/posts", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	timeline := decode[timelineResponse](t, rec)
	require.Len(t, timeline.Items, 1)
	require.Equal(t, post.ID, timeline.Items[0].ID)
	require.Equal(t, "john", timeline.Items[0].AuthorUsername)
	require.False(t, timeline.HasNext)
}

func TestFollowAndFeedFlow(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)
	alice := signup(t, r, "alice")
	bob := signup(t, r, "bob")

	rec := doJSON(t, r, http.MethodPost, "/v1/posts", bob, map[string]string{
		"body": "bob says hello to everyone reading along at home today.",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Before following, bob's post is invisible to alice.
	rec = doJSON(t, r, http.MethodGet, "/v1/feed", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decode[FeedResponse](t, rec).Items)

	rec = doJSON(t, r, http.MethodPost, "/v1/users/bob/follow", alice, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/v1/feed", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	feed := decode[FeedResponse](t, rec)
	require.Len(t, feed.Items, 1)
	require.Equal(t, "bob", feed.Items[0].AuthorUsername)

	// Bob's profile now shows the relationship from alice's side.
	rec = doJSON(t, r, http.MethodGet, "/v1/users/bob", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decode[UserResponse](t, rec)
	require.NotNil(t, profile.Following)
	require.True(t, *profile.Following)
	require.Equal(t, 1, profile.FollowerCount)

	rec = doJSON(t, r, http.MethodGet, "/v1/users/bob/followers", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"alice"}, decode[userListResponse](t, rec).Users)

	rec = doJSON(t, r, http.MethodDelete, "/v1/users/bob/follow", alice, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/v1/feed", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decode[FeedResponse](t, rec).Items)
}

func TestFollowSelfReturnsBadRequest(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)
	token := signup(t, r, "john")

	rec := doJSON(t, r, http.MethodPost, "/v1/users/john/follow", token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "self_follow", decode[ErrorResponse](t, rec).Error)
}

func TestFollowUnknownUserReturnsNotFound(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)
	token := signup(t, r, "john")

	rec := doJSON(t, r, http.MethodPost, "/v1/users/ghost/follow", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", decode[healthResponse](t, rec).Status)
}
