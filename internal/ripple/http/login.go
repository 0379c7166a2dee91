package http

import (
	"encoding/json"
	"net/http"

	"github.com/ripplehq/ripple/internal/ripple/service"
	"github.com/ripplehq/ripple/pkg/httpx"
	"github.com/ripplehq/ripple/pkg/slogx"
)

type LoginHandler struct {
	UsersService *service.UsersService
	TokenService *service.TokenService
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "validation_error", "username and password are required")
		return
	}

	user, err := h.UsersService.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	token, err := h.TokenService.Issue(ctx, user)
	if err != nil {
		log.Error("failed to issue token", "user_id", user.ID, "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "")
		return
	}

	// Login counts as activity.
	if err := h.UsersService.TouchLastSeen(ctx, user.ID); err != nil {
		log.Warn("failed to touch last_seen", "user_id", user.ID, "err", err)
	}

	log.Info("user logged in", "user_id", user.ID)
	httpx.WriteJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
	})
}
