package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quizhub/internal/domain"
)

// QuestionRepository issues single parameterized statements against the questions table.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

func (r *QuestionRepository) Create(ctx context.Context, question domain.Question) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO questions (question_text, correct_answer, quiz_id) VALUES ($1, $2, $3) RETURNING question_id`,
		question.Text, question.CorrectAnswer, question.QuizID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert question: %w", err)
	}
	return id, nil
}

func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (domain.Question, bool, error) {
	var question domain.Question
	err := r.pool.QueryRow(ctx,
		`SELECT question_id, question_text, correct_answer, quiz_id FROM questions WHERE question_id = $1`,
		id,
	).Scan(&question.ID, &question.Text, &question.CorrectAnswer, &question.QuizID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Question{}, false, nil
	}
	if err != nil {
		return domain.Question{}, false, fmt.Errorf("select question: %w", err)
	}
	return question, true, nil
}

func (r *QuestionRepository) ListByQuiz(ctx context.Context, quizID int64) ([]domain.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT question_id, question_text, correct_answer, quiz_id FROM questions WHERE quiz_id = $1`,
		quizID,
	)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	questions := []domain.Question{}
	for rows.Next() {
		var question domain.Question
		if err := rows.Scan(&question.ID, &question.Text, &question.CorrectAnswer, &question.QuizID); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, question)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return questions, nil
}

// ListWithAnswers returns one row per (question, answer) pair for the quiz.
// Questions without answers still appear, with nil answer fields.
func (r *QuestionRepository) ListWithAnswers(ctx context.Context, quizID int64) ([]domain.QuestionWithAnswer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT q.question_id, q.question_text, q.correct_answer, q.quiz_id, a.answer_text, a.is_correct
		 FROM questions q
		 LEFT JOIN answers a ON a.question_id = q.question_id
		 WHERE q.quiz_id = $1`,
		quizID,
	)
	if err != nil {
		return nil, fmt.Errorf("list questions with answers: %w", err)
	}
	defer rows.Close()

	result := []domain.QuestionWithAnswer{}
	for rows.Next() {
		var row domain.QuestionWithAnswer
		if err := rows.Scan(&row.ID, &row.Text, &row.CorrectAnswer, &row.QuizID, &row.AnswerText, &row.IsCorrect); err != nil {
			return nil, fmt.Errorf("scan question with answer: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list questions with answers: %w", err)
	}
	return result, nil
}

func (r *QuestionRepository) Update(ctx context.Context, question domain.Question) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE questions SET question_text = $1, correct_answer = $2, quiz_id = $3 WHERE question_id = $4`,
		question.Text, question.CorrectAnswer, question.QuizID, question.ID,
	)
	if err != nil {
		return 0, fmt.Errorf("update question: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *QuestionRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE question_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete question: %w", err)
	}
	return tag.RowsAffected(), nil
}
