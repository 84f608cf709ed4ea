package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"quizhub/internal/domain"
)

// AnswerRepository issues single parameterized statements against the answers
// table, plus the two quiz-scoped join reads.
type AnswerRepository struct {
	pool *pgxpool.Pool
}

func NewAnswerRepository(pool *pgxpool.Pool) *AnswerRepository {
	return &AnswerRepository{pool: pool}
}

func (r *AnswerRepository) Create(ctx context.Context, answer domain.Answer) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO answers (answer_text, is_correct, question_id) VALUES ($1, $2, $3) RETURNING answer_id`,
		answer.Text, answer.IsCorrect, answer.QuestionID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert answer: %w", err)
	}
	return id, nil
}

func (r *AnswerRepository) Update(ctx context.Context, answer domain.Answer) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE answers SET answer_text = $1, is_correct = $2 WHERE answer_id = $3`,
		answer.Text, answer.IsCorrect, answer.ID,
	)
	if err != nil {
		return 0, fmt.Errorf("update answer: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *AnswerRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM answers WHERE answer_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete answer: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *AnswerRepository) ListByQuestion(ctx context.Context, questionID int64) ([]domain.Answer, error) {
	return r.list(ctx,
		`SELECT answer_id, answer_text, is_correct, question_id FROM answers WHERE question_id = $1`,
		questionID,
	)
}

// ListByQuiz returns every answer of the quiz, joined through questions.
func (r *AnswerRepository) ListByQuiz(ctx context.Context, quizID int64) ([]domain.Answer, error) {
	return r.list(ctx,
		`SELECT a.answer_id, a.answer_text, a.is_correct, a.question_id
		 FROM answers a
		 INNER JOIN questions q ON a.question_id = q.question_id
		 WHERE q.quiz_id = $1`,
		quizID,
	)
}

// ListCorrectByQuiz returns the answers marked correct whose question belongs
// to the quiz. An empty slice, not an error, when none are recorded.
func (r *AnswerRepository) ListCorrectByQuiz(ctx context.Context, quizID int64) ([]domain.Answer, error) {
	return r.list(ctx,
		`SELECT a.answer_id, a.answer_text, a.is_correct, a.question_id
		 FROM answers a
		 INNER JOIN questions q ON a.question_id = q.question_id
		 WHERE q.quiz_id = $1 AND a.is_correct`,
		quizID,
	)
}

func (r *AnswerRepository) list(ctx context.Context, sql string, args ...any) ([]domain.Answer, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	defer rows.Close()

	answers := []domain.Answer{}
	for rows.Next() {
		var answer domain.Answer
		if err := rows.Scan(&answer.ID, &answer.Text, &answer.IsCorrect, &answer.QuestionID); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		answers = append(answers, answer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	return answers, nil
}
