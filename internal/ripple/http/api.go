package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/ripplehq/ripple/internal/ripple/domain"
	"github.com/ripplehq/ripple/internal/ripple/service"
	"github.com/ripplehq/ripple/internal/ripple/store"
	"github.com/ripplehq/ripple/pkg/httpx"
)

// ErrorResponse is the uniform JSON error body.
type ErrorResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

func writeError(w http.ResponseWriter, code int, name, desc string) {
	httpx.WriteJSON(w, code, ErrorResponse{Error: name, Description: desc})
}

// writeServiceError maps service/store sentinel errors onto HTTP codes.
// Anything unrecognized is a 500 with no internal detail leaked.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "user does not exist")
	case errors.Is(err, service.ErrSelfFollow):
		writeError(w, http.StatusBadRequest, "self_follow", err.Error())
	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, service.ErrEmptyBody),
		errors.Is(err, service.ErrBodyTooLong),
		errors.Is(err, service.ErrBioTooLong):
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "server_error", "")
	}
}

type UserResponse struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Bio            string    `json:"bio,omitempty"`
	LastSeen       time.Time `json:"last_seen"`
	CreatedAt      time.Time `json:"created_at"`
	FollowerCount  int       `json:"follower_count"`
	FollowingCount int       `json:"following_count"`
	Following      *bool     `json:"following,omitempty"` // whether the caller follows this user
}

type PostResponse struct {
	ID             string    `json:"id"`
	Body           string    `json:"body"`
	Language       string    `json:"language,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	AuthorUsername string    `json:"author_username,omitempty"`
	AuthorEmail    string    `json:"author_email,omitempty"`
}

type FeedResponse struct {
	Items   []PostResponse `json:"items"`
	Page    int            `json:"page"`
	HasNext bool           `json:"has_next"`
	HasPrev bool           `json:"has_prev"`
}

func postResponse(p domain.Post) PostResponse {
	return PostResponse{
		ID:        p.ID,
		Body:      p.Body,
		Language:  p.Language,
		CreatedAt: p.CreatedAt,
	}
}

func feedItemResponse(it domain.FeedItem) PostResponse {
	resp := postResponse(it.Post)
	resp.AuthorUsername = it.AuthorUsername
	resp.AuthorEmail = it.AuthorEmail
	return resp
}
