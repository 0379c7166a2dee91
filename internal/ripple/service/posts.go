package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/ripplehq/ripple/internal/ripple/domain"
	"github.com/ripplehq/ripple/internal/ripple/store"
	"github.com/ripplehq/ripple/pkg/idx"
	"github.com/ripplehq/ripple/pkg/langx"
	"github.com/ripplehq/ripple/pkg/slogx"
)

var (
	ErrEmptyBody   = errors.New("post body is empty")
	ErrBodyTooLong = errors.New("post body too long")
)

type PostsService struct {
	Store store.Store
}

// CreatePost validates and persists a new post for the author.
func (s *PostsService) CreatePost(
	ctx context.Context,
	authorID, body string,
) (domain.Post, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate the body bounds before touching the store.
	body = strings.TrimSpace(body)
	if body == "" {
		return domain.Post{}, ErrEmptyBody
	}
	if utf8.RuneCountInString(body) > domain.MaxPostBodyLen {
		return domain.Post{}, ErrBodyTooLong
	}

	// 2. Verify the author exists so a stale token yields NotFound rather
	// than a bare foreign key violation.
	if _, err := s.Store.Users().GetUserByID(ctx, authorID); err != nil {
		return domain.Post{}, err
	}

	// 3. Best-effort language detection; an empty tag is fine.
	lang := langx.Detect(body)

	// 4. Persist. The post id is minted from the creation instant so the
	// id ordering agrees with the timestamp ordering.
	id := idx.New()
	post := domain.Post{
		ID:        id.String(),
		AuthorID:  authorID,
		Body:      body,
		Language:  lang,
		CreatedAt: id.Time(),
	}

	if err := s.Store.Posts().CreatePost(ctx, post); err != nil {
		log.Error("failed to create post",
			slog.String("author_id", authorID),
			slog.Any("error", err),
		)
		return domain.Post{}, fmt.Errorf("create post: %w", err)
	}

	log.Debug("post created",
		slog.String("post_id", post.ID),
		slog.String("author_id", authorID),
		slog.String("language", lang),
	)

	return post, nil
}

// Timeline returns one page of a single author's posts, newest first.
// hasNext reports whether an older page exists.
func (s *PostsService) Timeline(
	ctx context.Context,
	authorID string,
	page, pageSize int,
) ([]domain.Post, bool, error) {
	page, pageSize = normalizePage(page, pageSize)

	// Fetch one extra row to learn whether another page follows.
	posts, err := s.Store.Posts().ListByAuthor(ctx, authorID, pageSize+1, (page-1)*pageSize)
	if err != nil {
		return nil, false, err
	}

	hasNext := len(posts) > pageSize
	if hasNext {
		posts = posts[:pageSize]
	}
	return posts, hasNext, nil
}
