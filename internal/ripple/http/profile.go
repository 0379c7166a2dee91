package http

import (
	"encoding/json"
	"net/http"

	"github.com/ripplehq/ripple/internal/ripple/domain"
	"github.com/ripplehq/ripple/internal/ripple/service"
	"github.com/ripplehq/ripple/pkg/httpx"
	"github.com/ripplehq/ripple/pkg/slogx"
)

type ProfileHandler struct {
	UsersService   *service.UsersService
	FollowsService *service.FollowsService
}

// HandleMe returns the authenticated user's own profile.
func (h *ProfileHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserIDFromCtx(ctx)
	user, err := h.UsersService.GetByID(ctx, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp, err := h.userResponse(r, user, nil)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

type updateProfileRequest struct {
	Bio string `json:"bio"`
}

// HandleUpdateMe updates the authenticated user's profile text.
func (h *ProfileHandler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}

	userID := httpx.UserIDFromCtx(ctx)
	if err := h.UsersService.UpdateBio(ctx, userID, req.Bio); err != nil {
		writeServiceError(w, err)
		return
	}

	log.Debug("profile updated", "user_id", userID)
	w.WriteHeader(http.StatusNoContent)
}

// HandleUser returns a public profile by username, including whether the
// caller follows them.
func (h *ProfileHandler) HandleUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.UsersService.GetByUsername(ctx, r.PathValue("username"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var following *bool
	if callerID := httpx.UserIDFromCtx(ctx); callerID != "" && callerID != user.ID {
		f, err := h.FollowsService.IsFollowing(ctx, callerID, user.ID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		following = &f
	}

	resp, err := h.userResponse(r, user, following)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *ProfileHandler) userResponse(
	r *http.Request,
	user domain.User,
	following *bool,
) (UserResponse, error) {
	ctx := r.Context()

	followers, err := h.FollowsService.FollowerCount(ctx, user.ID)
	if err != nil {
		return UserResponse{}, err
	}
	followingCount, err := h.FollowsService.FollowingCount(ctx, user.ID)
	if err != nil {
		return UserResponse{}, err
	}

	return UserResponse{
		ID:             user.ID,
		Username:       user.Username,
		Bio:            user.Bio,
		LastSeen:       user.LastSeen,
		CreatedAt:      user.CreatedAt,
		FollowerCount:  followers,
		FollowingCount: followingCount,
		Following:      following,
	}, nil
}
