package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quizhub/internal/domain"
)

// QuizRepository issues single parameterized statements against the quizzes table.
type QuizRepository struct {
	pool *pgxpool.Pool
}

func NewQuizRepository(pool *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{pool: pool}
}

func (r *QuizRepository) Create(ctx context.Context, quiz domain.Quiz) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO quizzes (title, description, duration, user_id, player_id) VALUES ($1, $2, $3, $4, $5) RETURNING quiz_id`,
		quiz.Title, quiz.Description, quiz.Duration, quiz.UserID, quiz.PlayerID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert quiz: %w", err)
	}
	return id, nil
}

func (r *QuizRepository) GetByID(ctx context.Context, id int64) (domain.Quiz, bool, error) {
	var quiz domain.Quiz
	err := r.pool.QueryRow(ctx,
		`SELECT quiz_id, title, description, duration, user_id, player_id FROM quizzes WHERE quiz_id = $1`,
		id,
	).Scan(&quiz.ID, &quiz.Title, &quiz.Description, &quiz.Duration, &quiz.UserID, &quiz.PlayerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Quiz{}, false, nil
	}
	if err != nil {
		return domain.Quiz{}, false, fmt.Errorf("select quiz: %w", err)
	}
	return quiz, true, nil
}

// List returns the summary view of every quiz.
func (r *QuizRepository) List(ctx context.Context) ([]domain.QuizSummary, error) {
	rows, err := r.pool.Query(ctx, `SELECT quiz_id, title, description FROM quizzes`)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	quizzes := []domain.QuizSummary{}
	for rows.Next() {
		var quiz domain.QuizSummary
		if err := rows.Scan(&quiz.ID, &quiz.Title, &quiz.Description); err != nil {
			return nil, fmt.Errorf("scan quiz summary: %w", err)
		}
		quizzes = append(quizzes, quiz)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	return quizzes, nil
}

func (r *QuizRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Quiz, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT quiz_id, title, description, duration, user_id, player_id FROM quizzes WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list quizzes by user: %w", err)
	}
	defer rows.Close()

	quizzes := []domain.Quiz{}
	for rows.Next() {
		var quiz domain.Quiz
		if err := rows.Scan(&quiz.ID, &quiz.Title, &quiz.Description, &quiz.Duration, &quiz.UserID, &quiz.PlayerID); err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		quizzes = append(quizzes, quiz)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list quizzes by user: %w", err)
	}
	return quizzes, nil
}

func (r *QuizRepository) Update(ctx context.Context, quiz domain.Quiz) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE quizzes SET title = $1, description = $2, duration = $3, user_id = $4, player_id = $5 WHERE quiz_id = $6`,
		quiz.Title, quiz.Description, quiz.Duration, quiz.UserID, quiz.PlayerID, quiz.ID,
	)
	if err != nil {
		return 0, fmt.Errorf("update quiz: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *QuizRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM quizzes WHERE quiz_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete quiz: %w", err)
	}
	return tag.RowsAffected(), nil
}
