package sqlite

import (
	"context"

	"github.com/google/uuid"

	"github.com/paperwing/newsletter/internal/newsletter/domain"
	"github.com/paperwing/newsletter/internal/newsletter/store"
)

type usersRepo struct {
	db dbtx
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash FROM users WHERE username = ?`,
		username,
	)

	var (
		u  domain.User
		id string
	)
	if err := row.Scan(&id, &u.Username, &u.PasswordHash); err != nil {
		return domain.User{}, mapNotFound(err)
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return domain.User{}, err
	}
	u.ID = parsed
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, password_hash)
		VALUES (?, ?, ?)`,
		u.ID.String(), u.Username, u.PasswordHash,
	)
	return mapConflict(err)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID uuid.UUID, newHash string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET password_hash = ? WHERE id = ?`,
		newHash, userID.String(),
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`)

	var count int
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}
