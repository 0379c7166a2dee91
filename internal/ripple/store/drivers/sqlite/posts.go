package sqlite

import (
	"context"
	"strings"

	"github.com/ripplehq/ripple/internal/ripple/domain"
)

type postsRepo struct {
	db DBTX
}

func (r *postsRepo) CreatePost(ctx context.Context, p domain.Post) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (id, author_id, body, language, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.AuthorID, p.Body, p.Language, p.CreatedAt.UTC())
	return mapConflict(err)
}

func (r *postsRepo) GetPostByID(ctx context.Context, id string) (domain.Post, error) {
	var p domain.Post
	err := r.db.QueryRowContext(ctx,
		`SELECT id, author_id, body, language, created_at FROM posts WHERE id = ?`, id).
		Scan(&p.ID, &p.AuthorID, &p.Body, &p.Language, &p.CreatedAt)
	if err != nil {
		return domain.Post{}, mapNotFound(err)
	}
	return p, nil
}

func (r *postsRepo) ListByAuthor(
	ctx context.Context,
	authorID string,
	limit, offset int,
) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, author_id, body, language, created_at
		 FROM posts
		 WHERE author_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ? OFFSET ?`,
		authorID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Body, &p.Language, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ListFeed is the feed union query: all posts whose author is in authorIDs,
// newest first, ties broken by post id descending so the total order is
// stable across pages even when timestamps collide.
func (r *postsRepo) ListFeed(
	ctx context.Context,
	authorIDs []string,
	limit, offset int,
) ([]domain.FeedItem, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(authorIDs)), ", ")
	args := make([]any, 0, len(authorIDs)+2)
	for _, id := range authorIDs {
		args = append(args, id)
	}
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx,
		`SELECT p.id, p.author_id, p.body, p.language, p.created_at, u.username, u.email
		 FROM posts p
		 JOIN users u ON u.id = p.author_id
		 WHERE p.author_id IN (`+placeholders+`)
		 ORDER BY p.created_at DESC, p.id DESC
		 LIMIT ? OFFSET ?`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.FeedItem
	for rows.Next() {
		var it domain.FeedItem
		err := rows.Scan(
			&it.ID,
			&it.AuthorID,
			&it.Body,
			&it.Language,
			&it.CreatedAt,
			&it.AuthorUsername,
			&it.AuthorEmail,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *postsRepo) CountByAuthor(ctx context.Context, authorID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM posts WHERE author_id = ?`, authorID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
