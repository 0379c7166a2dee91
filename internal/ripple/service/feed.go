package service

import (
	"context"

	"github.com/ripplehq/ripple/internal/ripple/domain"
	"github.com/ripplehq/ripple/internal/ripple/store"
)

const (
	// DefaultPageSize is used when the caller doesn't ask for a size.
	DefaultPageSize = 30

	// MaxPageSize caps a single feed page.
	MaxPageSize = 100
)

type FeedService struct {
	Store store.Store
}

// Feed assembles one page of the user's personalized feed: posts authored
// by the user or by anyone they follow, newest first. An empty page is a
// valid result, not an error.
func (s *FeedService) Feed(
	ctx context.Context,
	userID string,
	page, pageSize int,
) (domain.FeedPage, error) {
	page, pageSize = normalizePage(page, pageSize)

	// 1. Eligible authors: everyone the user follows, plus the user
	// themselves. Never empty.
	authorIDs, err := s.Store.Follows().FollowingIDs(ctx, userID)
	if err != nil {
		return domain.FeedPage{}, err
	}
	authorIDs = append(authorIDs, userID)

	// 2. One filtered, sorted, paginated query. Fetching one extra row
	// tells us whether a next page exists without a second count query.
	items, err := s.Store.Posts().ListFeed(ctx, authorIDs, pageSize+1, (page-1)*pageSize)
	if err != nil {
		return domain.FeedPage{}, err
	}

	hasNext := len(items) > pageSize
	if hasNext {
		items = items[:pageSize]
	}

	return domain.FeedPage{
		Items:   items,
		Page:    page,
		HasNext: hasNext,
		HasPrev: page > 1,
	}, nil
}

// normalizePage clamps page and pageSize into their valid ranges.
func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	switch {
	case pageSize < 1:
		pageSize = DefaultPageSize
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	}
	return page, pageSize
}
