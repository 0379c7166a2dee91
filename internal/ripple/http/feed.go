package http

import (
	"net/http"

	"github.com/ripplehq/ripple/internal/ripple/service"
	"github.com/ripplehq/ripple/pkg/httpx"
)

type FeedHandler struct {
	FeedService *service.FeedService
}

// ServeHTTP returns one page of the caller's personalized feed.
func (h *FeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, pageSize := pageParams(r)
	feed, err := h.FeedService.Feed(ctx, httpx.UserIDFromCtx(ctx), page, pageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	items := make([]PostResponse, 0, len(feed.Items))
	for _, it := range feed.Items {
		items = append(items, feedItemResponse(it))
	}
	httpx.WriteJSON(w, http.StatusOK, FeedResponse{
		Items:   items,
		Page:    feed.Page,
		HasNext: feed.HasNext,
		HasPrev: feed.HasPrev,
	})
}
