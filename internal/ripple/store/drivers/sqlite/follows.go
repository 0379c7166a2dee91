package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ripplehq/ripple/internal/ripple/domain"
)

type followsRepo struct {
	db DBTX
}

// CreateFollow inserts the edge. INSERT OR IGNORE makes duplicate edges
// (primary key) and self-pairs (CHECK) silent no-ops, so a racing double
// follow resolves to "edge exists" with no error from either request.
func (r *followsRepo) CreateFollow(ctx context.Context, followerID, followedID string) error {
	if followerID == followedID {
		return nil
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO follows (follower_id, followed_id, created_at)
		 VALUES (?, ?, ?)`,
		followerID, followedID, time.Now().UTC())
	return err
}

func (r *followsRepo) DeleteFollow(ctx context.Context, followerID, followedID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = ? AND followed_id = ?`,
		followerID, followedID)
	return err
}

func (r *followsRepo) IsFollowing(ctx context.Context, followerID, followedID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM follows WHERE follower_id = ? AND followed_id = ?`,
		followerID, followedID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *followsRepo) ListFollowing(ctx context.Context, userID string) ([]domain.User, error) {
	return r.listUsers(ctx,
		`SELECT `+prefixedUserColumns+`
		 FROM users u
		 JOIN follows f ON f.followed_id = u.id
		 WHERE f.follower_id = ?
		 ORDER BY u.username`,
		userID)
}

func (r *followsRepo) ListFollowers(ctx context.Context, userID string) ([]domain.User, error) {
	return r.listUsers(ctx,
		`SELECT `+prefixedUserColumns+`
		 FROM users u
		 JOIN follows f ON f.follower_id = u.id
		 WHERE f.followed_id = ?
		 ORDER BY u.username`,
		userID)
}

func (r *followsRepo) FollowingIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT followed_id FROM follows WHERE follower_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *followsRepo) CountFollowing(ctx context.Context, userID string) (int, error) {
	return r.count(ctx,
		`SELECT COUNT(*) FROM follows WHERE follower_id = ?`, userID)
}

func (r *followsRepo) CountFollowers(ctx context.Context, userID string) (int, error) {
	return r.count(ctx,
		`SELECT COUNT(*) FROM follows WHERE followed_id = ?`, userID)
}

const prefixedUserColumns = `u.id, u.username, u.email, u.password_hash, u.bio, u.last_seen, u.created_at, u.updated_at`

func (r *followsRepo) listUsers(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		err := rows.Scan(
			&u.ID,
			&u.Username,
			&u.Email,
			&u.PasswordHash,
			&u.Bio,
			&u.LastSeen,
			&u.CreatedAt,
			&u.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *followsRepo) count(ctx context.Context, query string, args ...any) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
