package sqlite

import (
	"context"
	"time"

	"github.com/ripplehq/ripple/internal/ripple/domain"
)

type usersRepo struct {
	db DBTX
}

const userColumns = `id, username, email, password_hash, bio, last_seen, created_at, updated_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash, bio, last_seen, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.Bio, now, now, now)
	return mapConflict(err)
}

func (r *usersRepo) UpdateBio(ctx context.Context, userID string, bio string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET bio = ?, updated_at = ? WHERE id = ?`,
		bio, time.Now().UTC(), userID)
	return err
}

func (r *usersRepo) TouchLastSeen(ctx context.Context, userID string, t time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET last_seen = ? WHERE id = ?`,
		t.UTC(), userID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	err := row.Scan(
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
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}
