package app

import (
	"context"

	"quizhub/internal/domain"
)

// Repository contracts are declared here and satisfied by the postgres and
// memory infrastructure. Reads signal absence with (zero, false, nil) or an
// empty slice; writes return the affected row count, where 0 means the target
// row does not exist. Neither is an error.

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (int64, error)
	GetByID(ctx context.Context, id int64) (domain.User, bool, error)
	GetByEmail(ctx context.Context, email string) (domain.User, bool, error)
	Update(ctx context.Context, user domain.User) (int64, error)
	UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	ListUsernames(ctx context.Context) ([]string, error)
}

type PlayerRepository interface {
	Create(ctx context.Context, player domain.Player) (int64, error)
	GetByID(ctx context.Context, id int64) (domain.Player, bool, error)
	GetByEmail(ctx context.Context, email string) (domain.Player, bool, error)
	CheckExisting(ctx context.Context, username, email string, excludeID int64) (bool, error)
	Update(ctx context.Context, player domain.Player) (int64, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	List(ctx context.Context) ([]domain.Player, error)
	ListUsernames(ctx context.Context) ([]string, error)
}

type QuizRepository interface {
	Create(ctx context.Context, quiz domain.Quiz) (int64, error)
	GetByID(ctx context.Context, id int64) (domain.Quiz, bool, error)
	List(ctx context.Context) ([]domain.QuizSummary, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Quiz, error)
	Update(ctx context.Context, quiz domain.Quiz) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type QuestionRepository interface {
	Create(ctx context.Context, question domain.Question) (int64, error)
	GetByID(ctx context.Context, id int64) (domain.Question, bool, error)
	ListByQuiz(ctx context.Context, quizID int64) ([]domain.Question, error)
	ListWithAnswers(ctx context.Context, quizID int64) ([]domain.QuestionWithAnswer, error)
	Update(ctx context.Context, question domain.Question) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type AnswerRepository interface {
	Create(ctx context.Context, answer domain.Answer) (int64, error)
	Update(ctx context.Context, answer domain.Answer) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	ListByQuestion(ctx context.Context, questionID int64) ([]domain.Answer, error)
	ListByQuiz(ctx context.Context, quizID int64) ([]domain.Answer, error)
	ListCorrectByQuiz(ctx context.Context, quizID int64) ([]domain.Answer, error)
}

type ResultRepository interface {
	Create(ctx context.Context, result domain.Result) (int64, error)
	ListByWinner(ctx context.Context, playerID int64) ([]domain.Result, error)
	ListByQuiz(ctx context.Context, quizID int64) ([]domain.Result, error)
	Update(ctx context.Context, result domain.Result) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	SumScoresByQuiz(ctx context.Context, quizID int64) ([]domain.PlayerScore, error)
}

type PlayerResultRepository interface {
	Create(ctx context.Context, entry domain.PlayerResult) (int64, error)
	ListByPlayer(ctx context.Context, playerID int64) ([]domain.PlayerResult, error)
	ListByResult(ctx context.Context, resultID int64) ([]domain.PlayerResult, error)
	Update(ctx context.Context, entry domain.PlayerResult) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	SumScores(ctx context.Context) ([]domain.PlayerScore, error)
}

// AttemptStore persists the per-(player,quiz) attempt session (in-memory or Redis).
type AttemptStore interface {
	Get(ctx context.Context, playerID, quizID int64) (domain.Attempt, bool, error)
	Put(ctx context.Context, attempt domain.Attempt) error
}

// AnswerKeyRepository serves the correct-answer set of a quiz, typically from
// a TTL'd cache in front of the answers table.
type AnswerKeyRepository interface {
	CorrectAnswers(ctx context.Context, quizID int64) ([]domain.Answer, error)
}
