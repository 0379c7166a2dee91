package http

import (
	"context"
	"net/http"

	"github.com/ripplehq/ripple/internal/ripple/domain"
	"github.com/ripplehq/ripple/internal/ripple/service"
	"github.com/ripplehq/ripple/pkg/httpx"
	"github.com/ripplehq/ripple/pkg/slogx"
)

type FollowHandler struct {
	UsersService   *service.UsersService
	FollowsService *service.FollowsService
}

// HandleFollow creates a follow edge from the caller to {username}.
func (h *FollowHandler) HandleFollow(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.FollowsService.Follow)
}

// HandleUnfollow removes the caller's follow edge to {username}.
func (h *FollowHandler) HandleUnfollow(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.FollowsService.Unfollow)
}

func (h *FollowHandler) mutate(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, followerID, followedID string) error,
) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	target, err := h.UsersService.GetByUsername(ctx, r.PathValue("username"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	callerID := httpx.UserIDFromCtx(ctx)
	if err := op(ctx, callerID, target.ID); err != nil {
		writeServiceError(w, err)
		return
	}

	log.Debug("follow edge mutated", "caller_id", callerID, "target_id", target.ID)
	w.WriteHeader(http.StatusNoContent)
}

type userListResponse struct {
	Users []string `json:"users"` // usernames
}

// HandleFollowers lists the usernames following {username}.
func (h *FollowHandler) HandleFollowers(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.FollowsService.Followers)
}

// HandleFollowing lists the usernames {username} follows.
func (h *FollowHandler) HandleFollowing(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.FollowsService.Following)
}

func (h *FollowHandler) list(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, userID string) ([]domain.User, error),
) {
	ctx := r.Context()

	user, err := h.UsersService.GetByUsername(ctx, r.PathValue("username"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	users, err := op(ctx, user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Username)
	}
	httpx.WriteJSON(w, http.StatusOK, userListResponse{Users: names})
}
