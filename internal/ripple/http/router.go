package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ripplehq/ripple/internal/ripple/service"
	"github.com/ripplehq/ripple/internal/ripple/store"
	"github.com/ripplehq/ripple/pkg/httpx"
	"github.com/ripplehq/ripple/pkg/jwtx"
	"github.com/ripplehq/ripple/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	UsersService   *service.UsersService
	PostsService   *service.PostsService
	FollowsService *service.FollowsService
	FeedService    *service.FeedService
	TokenService   *service.TokenService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) ApplyRoutes() {
	r.registerAccounts()
	r.registerProfiles()
	r.registerPosts()
	r.registerFollows()
	r.registerSystem()
}

// authenticated wraps h with bearer authentication, a last-seen touch, and
// the given rate limit keyed by user.
func (r *Router) authenticated(h http.Handler, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		r.touchLastSeen(),
		httpx.RateLimitByUser(limit),
	)
}

// touchLastSeen records activity for the authenticated user on every
// request that reaches it. Failures are logged, never surfaced; last_seen
// is best-effort bookkeeping.
func (r *Router) touchLastSeen() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := req.Context()
			if userID := httpx.UserIDFromCtx(ctx); userID != "" {
				if err := r.UsersService.TouchLastSeen(ctx, userID); err != nil {
					slogx.FromContext(ctx).Warn("failed to touch last_seen",
						"user_id", userID, "err", err)
				}
			}
			next.ServeHTTP(w, req)
		})
	}
}

func (r *Router) registerAccounts() {
	registerHandler := &RegisterHandler{UsersService: r.UsersService}
	r.Mux.Handle("POST /v1/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	loginHandler := &LoginHandler{
		UsersService: r.UsersService,
		TokenService: r.TokenService,
	}
	r.Mux.Handle("POST /v1/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerProfiles() {
	profileHandler := &ProfileHandler{
		UsersService:   r.UsersService,
		FollowsService: r.FollowsService,
	}

	r.Mux.Handle("GET /v1/me",
		r.authenticated(http.HandlerFunc(profileHandler.HandleMe), httpx.LenientLimit))
	r.Mux.Handle("PUT /v1/me",
		r.authenticated(http.HandlerFunc(profileHandler.HandleUpdateMe), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/users/{username}",
		r.authenticated(http.HandlerFunc(profileHandler.HandleUser), httpx.LenientLimit))
}

func (r *Router) registerPosts() {
	postsHandler := &PostsHandler{
		UsersService: r.UsersService,
		PostsService: r.PostsService,
	}

	r.Mux.Handle("POST /v1/posts",
		r.authenticated(http.HandlerFunc(postsHandler.HandleCreate), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/users/{username}/posts",
		r.authenticated(http.HandlerFunc(postsHandler.HandleTimeline), httpx.LenientLimit))

	feedHandler := &FeedHandler{FeedService: r.FeedService}
	r.Mux.Handle("GET /v1/feed",
		r.authenticated(feedHandler, httpx.LenientLimit))
}

func (r *Router) registerFollows() {
	followHandler := &FollowHandler{
		UsersService:   r.UsersService,
		FollowsService: r.FollowsService,
	}

	r.Mux.Handle("POST /v1/users/{username}/follow",
		r.authenticated(http.HandlerFunc(followHandler.HandleFollow), httpx.ModerateLimit))
	r.Mux.Handle("DELETE /v1/users/{username}/follow",
		r.authenticated(http.HandlerFunc(followHandler.HandleUnfollow), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/users/{username}/followers",
		r.authenticated(http.HandlerFunc(followHandler.HandleFollowers), httpx.LenientLimit))
	r.Mux.Handle("GET /v1/users/{username}/following",
		r.authenticated(http.HandlerFunc(followHandler.HandleFollowing), httpx.LenientLimit))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
