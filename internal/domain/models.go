package domain

import "time"

// User is an administrative account that authors quizzes.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DateOfBirth  time.Time `json:"dateOfBirth"`
}

// Player is a quiz-taking account. Username and email are unique.
type Player struct {
	ID           int64     `json:"playerId"`
	Username     string    `json:"playerUsername"`
	Email        string    `json:"playerEmail"`
	PasswordHash string    `json:"-"`
	DateOfBirth  time.Time `json:"playerDob"`
}

// Quiz is owned by a User; PlayerID is an optional alternate creator.
type Quiz struct {
	ID          int64  `json:"quizId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	// Duration is an opaque unit carried through from the caller (seconds in practice).
	Duration int64  `json:"duration"`
	UserID   int64  `json:"userId"`
	PlayerID *int64 `json:"playerId,omitempty"`
}

// QuizSummary is the list view of a quiz.
type QuizSummary struct {
	ID          int64  `json:"quizId"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Question belongs to exactly one Quiz. CorrectAnswer is free text kept for
// single-answer quizzes; the authoritative correctness signal is Answer.IsCorrect.
type Question struct {
	ID            int64  `json:"questionId"`
	Text          string `json:"questionText"`
	CorrectAnswer string `json:"correctAnswer"`
	QuizID        int64  `json:"quizId"`
}

// QuestionWithAnswer is one LEFT JOIN row of a question and one of its
// answers. AnswerText and IsCorrect are nil for questions without answers.
type QuestionWithAnswer struct {
	Question
	AnswerText *string `json:"answerText"`
	IsCorrect  *bool   `json:"isCorrect"`
}

// Answer belongs to exactly one Question.
type Answer struct {
	ID         int64  `json:"answerId"`
	Text       string `json:"answerText"`
	IsCorrect  bool   `json:"isCorrect"`
	QuestionID int64  `json:"questionId"`
}

// Result is one outcome record per quiz attempt. Winner is a player id.
type Result struct {
	ID     int64 `json:"resultId"`
	Winner int64 `json:"winner"`
	QuizID int64 `json:"quizId"`
}

// PlayerResult associates players with results many-to-many, so one result
// can list multiple players and one player can appear in multiple results.
type PlayerResult struct {
	ID       int64 `json:"playersResultsId"`
	PlayerID int64 `json:"playerId"`
	ResultID int64 `json:"resultId"`
}

// PlayerScore is one aggregation row: a player and their summed score.
// Players with no results never appear in score listings.
type PlayerScore struct {
	PlayerID int64 `json:"playerId"`
	Score    int64 `json:"totalScore"`
}

// AttemptState is the lifecycle of a per-(player,quiz) attempt session.
type AttemptState string

const (
	AttemptStarted   AttemptState = "started"
	AttemptSubmitted AttemptState = "submitted"
)

// Attempt is the persisted session record for one player taking one quiz.
type Attempt struct {
	PlayerID    int64        `json:"playerId"`
	QuizID      int64        `json:"quizId"`
	State       AttemptState `json:"state"`
	StartedAt   time.Time    `json:"startedAt"`
	SubmittedAt *time.Time   `json:"submittedAt,omitempty"`
	Score       int64        `json:"score"`
}

// AttemptReceipt pairs the structured attempt outcome with the descriptive
// message the API has always produced for start/submit.
type AttemptReceipt struct {
	Attempt Attempt `json:"attempt"`
	Message string  `json:"message"`
}

// Scoreboard is the per-quiz summed-score snapshot pushed to stream subscribers.
type Scoreboard struct {
	QuizID    int64         `json:"quizId"`
	Scores    []PlayerScore `json:"scores"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
