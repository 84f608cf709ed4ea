package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"quizhub/internal/domain"
)

// PlayerResultRepository issues single parameterized statements against the
// players_results join table, plus the global score aggregation.
type PlayerResultRepository struct {
	pool *pgxpool.Pool
}

func NewPlayerResultRepository(pool *pgxpool.Pool) *PlayerResultRepository {
	return &PlayerResultRepository{pool: pool}
}

func (r *PlayerResultRepository) Create(ctx context.Context, entry domain.PlayerResult) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO players_results (player_id, result_id) VALUES ($1, $2) RETURNING players_results_id`,
		entry.PlayerID, entry.ResultID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert player result: %w", err)
	}
	return id, nil
}

func (r *PlayerResultRepository) ListByPlayer(ctx context.Context, playerID int64) ([]domain.PlayerResult, error) {
	return r.list(ctx, `SELECT players_results_id, player_id, result_id FROM players_results WHERE player_id = $1`, playerID)
}

func (r *PlayerResultRepository) ListByResult(ctx context.Context, resultID int64) ([]domain.PlayerResult, error) {
	return r.list(ctx, `SELECT players_results_id, player_id, result_id FROM players_results WHERE result_id = $1`, resultID)
}

func (r *PlayerResultRepository) Update(ctx context.Context, entry domain.PlayerResult) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE players_results SET player_id = $1, result_id = $2 WHERE players_results_id = $3`,
		entry.PlayerID, entry.ResultID, entry.ID,
	)
	if err != nil {
		return 0, fmt.Errorf("update player result: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *PlayerResultRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM players_results WHERE players_results_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete player result: %w", err)
	}
	return tag.RowsAffected(), nil
}

// SumScores sums scores per player over every recorded result. Each result
// contributes its quiz's correct-answer count; quizzes with no correct
// answers contribute zero. Players without results are absent from the output.
func (r *PlayerResultRepository) SumScores(ctx context.Context) ([]domain.PlayerScore, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT pr.player_id, COALESCE(SUM(cc.correct_count), 0) AS sum_scores
		 FROM players_results pr
		 INNER JOIN results r ON pr.result_id = r.result_id
		 INNER JOIN players p ON pr.player_id = p.player_id
		 LEFT JOIN (
		     SELECT q.quiz_id, COUNT(*) AS correct_count
		     FROM questions q
		     INNER JOIN answers a ON a.question_id = q.question_id
		     WHERE a.is_correct
		     GROUP BY q.quiz_id
		 ) cc ON cc.quiz_id = r.quiz_id
		 GROUP BY pr.player_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sum scores: %w", err)
	}
	defer rows.Close()

	scores := []domain.PlayerScore{}
	for rows.Next() {
		var score domain.PlayerScore
		if err := rows.Scan(&score.PlayerID, &score.Score); err != nil {
			return nil, fmt.Errorf("scan player score: %w", err)
		}
		scores = append(scores, score)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sum scores: %w", err)
	}
	return scores, nil
}

func (r *PlayerResultRepository) list(ctx context.Context, sql string, args ...any) ([]domain.PlayerResult, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list player results: %w", err)
	}
	defer rows.Close()

	entries := []domain.PlayerResult{}
	for rows.Next() {
		var entry domain.PlayerResult
		if err := rows.Scan(&entry.ID, &entry.PlayerID, &entry.ResultID); err != nil {
			return nil, fmt.Errorf("scan player result: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list player results: %w", err)
	}
	return entries, nil
}
