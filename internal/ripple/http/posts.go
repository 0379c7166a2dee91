package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ripplehq/ripple/internal/ripple/service"
	"github.com/ripplehq/ripple/pkg/httpx"
	"github.com/ripplehq/ripple/pkg/slogx"
)

type PostsHandler struct {
	UsersService *service.UsersService
	PostsService *service.PostsService
}

type createPostRequest struct {
	Body string `json:"body"`
}

// HandleCreate creates a post authored by the caller.
func (h *PostsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}

	post, err := h.PostsService.CreatePost(ctx, httpx.UserIDFromCtx(ctx), req.Body)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	log.Info("post created", "post_id", post.ID)
	httpx.WriteJSON(w, http.StatusCreated, postResponse(post))
}

type timelineResponse struct {
	Items   []PostResponse `json:"items"`
	Page    int            `json:"page"`
	HasNext bool           `json:"has_next"`
}

// HandleTimeline returns one page of {username}'s own posts, newest first.
func (h *PostsHandler) HandleTimeline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.UsersService.GetByUsername(ctx, r.PathValue("username"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	page, pageSize := pageParams(r)
	posts, hasNext, err := h.PostsService.Timeline(ctx, user.ID, page, pageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	items := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		resp := postResponse(p)
		resp.AuthorUsername = user.Username
		items = append(items, resp)
	}
	httpx.WriteJSON(w, http.StatusOK, timelineResponse{
		Items:   items,
		Page:    max(page, 1),
		HasNext: hasNext,
	})
}

// pageParams reads ?page= and ?page_size=; zero values let the service
// apply its defaults.
func pageParams(r *http.Request) (int, int) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))
	return page, pageSize
}
