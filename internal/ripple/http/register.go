package http

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/ripplehq/ripple/internal/ripple/service"
	"github.com/ripplehq/ripple/pkg/httpx"
	"github.com/ripplehq/ripple/pkg/slogx"
)

type RegisterHandler struct {
	UsersService *service.UsersService
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}

	// Form validation stays at this boundary; the service assumes clean
	// input.
	req.Username = strings.TrimSpace(req.Username)
	switch {
	case req.Username == "":
		writeError(w, http.StatusBadRequest, "validation_error", "username is required")
		return
	case utf8.RuneCountInString(req.Username) > 64:
		writeError(w, http.StatusBadRequest, "validation_error", "username too long")
		return
	case strings.ContainsAny(req.Username, " \t\n"):
		writeError(w, http.StatusBadRequest, "validation_error", "username must not contain whitespace")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "invalid email address")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "validation_error", "password must be at least 8 characters")
		return
	}

	user, err := h.UsersService.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	log.Info("user registered", "user_id", user.ID, "username", user.Username)
	httpx.WriteJSON(w, http.StatusCreated, registerResponse{
		ID:       user.ID,
		Username: user.Username,
	})
}
