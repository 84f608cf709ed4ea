package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"quizhub/internal/domain"
)

// ResultRepository issues single parameterized statements against the results
// table, plus the quiz-scoped score aggregation.
type ResultRepository struct {
	pool *pgxpool.Pool
}

func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

func (r *ResultRepository) Create(ctx context.Context, result domain.Result) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO results (winner, quiz_id) VALUES ($1, $2) RETURNING result_id`,
		result.Winner, result.QuizID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert result: %w", err)
	}
	return id, nil
}

func (r *ResultRepository) ListByWinner(ctx context.Context, playerID int64) ([]domain.Result, error) {
	return r.list(ctx, `SELECT result_id, winner, quiz_id FROM results WHERE winner = $1`, playerID)
}

func (r *ResultRepository) ListByQuiz(ctx context.Context, quizID int64) ([]domain.Result, error) {
	return r.list(ctx, `SELECT result_id, winner, quiz_id FROM results WHERE quiz_id = $1`, quizID)
}

func (r *ResultRepository) Update(ctx context.Context, result domain.Result) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE results SET winner = $1, quiz_id = $2 WHERE result_id = $3`,
		result.Winner, result.QuizID, result.ID,
	)
	if err != nil {
		return 0, fmt.Errorf("update result: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *ResultRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM results WHERE result_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete result: %w", err)
	}
	return tag.RowsAffected(), nil
}

// SumScoresByQuiz sums scores per player for a single quiz. The grouping is
// scoped through players_results.result_id -> results.quiz_id; the score of
// each result is the count of correct answers recorded for the quiz.
func (r *ResultRepository) SumScoresByQuiz(ctx context.Context, quizID int64) ([]domain.PlayerScore, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT pr.player_id, COUNT(a.answer_id) AS total_score
		 FROM players_results pr
		 INNER JOIN results r ON pr.result_id = r.result_id
		 INNER JOIN questions q ON q.quiz_id = r.quiz_id
		 INNER JOIN answers a ON a.question_id = q.question_id AND a.is_correct
		 WHERE r.quiz_id = $1
		 GROUP BY pr.player_id`,
		quizID,
	)
	if err != nil {
		return nil, fmt.Errorf("sum scores by quiz: %w", err)
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
		return nil, fmt.Errorf("sum scores by quiz: %w", err)
	}
	return scores, nil
}

func (r *ResultRepository) list(ctx context.Context, sql string, args ...any) ([]domain.Result, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	results := []domain.Result{}
	for rows.Next() {
		var result domain.Result
		if err := rows.Scan(&result.ID, &result.Winner, &result.QuizID); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	return results, nil
}
