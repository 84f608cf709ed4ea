package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quizhub/internal/domain"
)

// PlayerRepository issues single parameterized statements against the players table.
type PlayerRepository struct {
	pool *pgxpool.Pool
}

func NewPlayerRepository(pool *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{pool: pool}
}

func (r *PlayerRepository) Create(ctx context.Context, player domain.Player) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO players (player_username, player_email, player_password_hash, player_dob) VALUES ($1, $2, $3, $4) RETURNING player_id`,
		player.Username, player.Email, player.PasswordHash, player.DateOfBirth,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert player: %w", err)
	}
	return id, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (domain.Player, bool, error) {
	return r.getOne(ctx, `SELECT player_id, player_username, player_email, player_password_hash, player_dob FROM players WHERE player_id = $1`, id)
}

func (r *PlayerRepository) GetByEmail(ctx context.Context, email string) (domain.Player, bool, error) {
	return r.getOne(ctx, `SELECT player_id, player_username, player_email, player_password_hash, player_dob FROM players WHERE player_email = $1`, email)
}

func (r *PlayerRepository) getOne(ctx context.Context, sql string, arg any) (domain.Player, bool, error) {
	var player domain.Player
	err := r.pool.QueryRow(ctx, sql, arg).
		Scan(&player.ID, &player.Username, &player.Email, &player.PasswordHash, &player.DateOfBirth)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Player{}, false, nil
	}
	if err != nil {
		return domain.Player{}, false, fmt.Errorf("select player: %w", err)
	}
	return player, true, nil
}

// CheckExisting reports whether another player already holds the username or
// email. excludeID skips the player being updated; pass 0 for registrations.
// This is the read half of the source's check-then-write guard; the unique
// constraints on players back it up when two registrations race.
func (r *PlayerRepository) CheckExisting(ctx context.Context, username, email string, excludeID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM players WHERE (player_username = $1 OR player_email = $2) AND player_id != $3)`,
		username, email, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check existing player: %w", err)
	}
	return exists, nil
}

// Update overwrites the full row except the password hash.
func (r *PlayerRepository) Update(ctx context.Context, player domain.Player) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE players SET player_username = $1, player_email = $2, player_dob = $3 WHERE player_id = $4`,
		player.Username, player.Email, player.DateOfBirth, player.ID,
	)
	if err != nil {
		return 0, fmt.Errorf("update player: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *PlayerRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE players SET player_password_hash = $1 WHERE player_id = $2`,
		passwordHash, id,
	)
	if err != nil {
		return 0, fmt.Errorf("update player password: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *PlayerRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM players WHERE player_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete player: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *PlayerRepository) List(ctx context.Context) ([]domain.Player, error) {
	rows, err := r.pool.Query(ctx, `SELECT player_id, player_username, player_email, player_password_hash, player_dob FROM players`)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	players := []domain.Player{}
	for rows.Next() {
		var player domain.Player
		if err := rows.Scan(&player.ID, &player.Username, &player.Email, &player.PasswordHash, &player.DateOfBirth); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

func (r *PlayerRepository) ListUsernames(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT player_username FROM players`)
	if err != nil {
		return nil, fmt.Errorf("list player usernames: %w", err)
	}
	defer rows.Close()

	usernames := []string{}
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, fmt.Errorf("scan player username: %w", err)
		}
		usernames = append(usernames, username)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list player usernames: %w", err)
	}
	return usernames, nil
}
