package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quizhub/internal/domain"
)

// UserRepository issues single parameterized statements against the users table.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, date_of_birth) VALUES ($1, $2, $3, $4) RETURNING id`,
		user.Username, user.Email, user.PasswordHash, user.DateOfBirth,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

// GetByID returns (zero, false, nil) when the user does not exist.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (domain.User, bool, error) {
	var user domain.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, email, password_hash, date_of_birth FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.DateOfBirth)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, fmt.Errorf("select user: %w", err)
	}
	return user, true, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, bool, error) {
	var user domain.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, email, password_hash, date_of_birth FROM users WHERE email = $1`,
		email,
	).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.DateOfBirth)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, fmt.Errorf("select user by email: %w", err)
	}
	return user, true, nil
}

// Update overwrites username, email and date of birth. Password changes go
// through UpdatePasswordByEmail. Returns the affected row count; 0 means the
// id does not exist (or the row already held these values).
func (r *UserRepository) Update(ctx context.Context, user domain.User) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET username = $1, email = $2, date_of_birth = $3 WHERE id = $4`,
		user.Username, user.Email, user.DateOfBirth, user.ID,
	)
	if err != nil {
		return 0, fmt.Errorf("update user: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *UserRepository) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1 WHERE email = $2`,
		passwordHash, email,
	)
	if err != nil {
		return 0, fmt.Errorf("update user password: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete user: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *UserRepository) ListUsernames(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT username FROM users`)
	if err != nil {
		return nil, fmt.Errorf("list usernames: %w", err)
	}
	defer rows.Close()

	usernames := []string{}
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, fmt.Errorf("scan username: %w", err)
		}
		usernames = append(usernames, username)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list usernames: %w", err)
	}
	return usernames, nil
}
