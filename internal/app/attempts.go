package app

import (
	"context"
	"fmt"
	"time"

	"quizhub/internal/domain"
)

// AttemptService drives the quiz-session lifecycle: NotStarted -> Started ->
// Submitted. State lives in the AttemptStore; the durable outcome of a submit
// is a Result plus a PlayerResult row.
type AttemptService struct {
	attempts      AttemptStore
	quizzes       QuizRepository
	answerKeys    AnswerKeyRepository
	results       ResultRepository
	playerResults PlayerResultRepository
	board         *ScoreboardHub
	now           func() time.Time
}

func NewAttemptService(
	attempts AttemptStore,
	quizzes QuizRepository,
	answerKeys AnswerKeyRepository,
	results ResultRepository,
	playerResults PlayerResultRepository,
	board *ScoreboardHub,
) *AttemptService {
	return &AttemptService{
		attempts:      attempts,
		quizzes:       quizzes,
		answerKeys:    answerKeys,
		results:       results,
		playerResults: playerResults,
		board:         board,
		now:           time.Now,
	}
}

// NewAttemptServiceWithClock is test-only for deterministic timestamps.
func NewAttemptServiceWithClock(
	attempts AttemptStore,
	quizzes QuizRepository,
	answerKeys AnswerKeyRepository,
	results ResultRepository,
	playerResults PlayerResultRepository,
	board *ScoreboardHub,
	now func() time.Time,
) *AttemptService {
	s := NewAttemptService(attempts, quizzes, answerKeys, results, playerResults, board)
	s.now = now
	return s
}

// Start opens an attempt for the player on the quiz. Starting twice yields
// ErrAttemptStarted; starting after submit yields ErrAttemptSubmitted.
func (s *AttemptService) Start(ctx context.Context, playerID, quizID int64) (domain.AttemptReceipt, error) {
	if _, ok, err := s.quizzes.GetByID(ctx, quizID); err != nil {
		return domain.AttemptReceipt{}, err
	} else if !ok {
		return domain.AttemptReceipt{}, domain.ErrQuizNotFound
	}

	existing, ok, err := s.attempts.Get(ctx, playerID, quizID)
	if err != nil {
		return domain.AttemptReceipt{}, err
	}
	if ok {
		if existing.State == domain.AttemptSubmitted {
			return domain.AttemptReceipt{}, domain.ErrAttemptSubmitted
		}
		return domain.AttemptReceipt{}, domain.ErrAttemptStarted
	}

	startedAt := s.now()
	attempt := domain.Attempt{
		PlayerID:  playerID,
		QuizID:    quizID,
		State:     domain.AttemptStarted,
		StartedAt: startedAt,
	}
	if err := s.attempts.Put(ctx, attempt); err != nil {
		return domain.AttemptReceipt{}, err
	}

	return domain.AttemptReceipt{
		Attempt: attempt,
		Message: fmt.Sprintf("Player %d started quiz %d at %s", playerID, quizID, startedAt.Format("2006-01-02 15:04:05")),
	}, nil
}

// Submit closes a started attempt: it scores the selected answers against the
// quiz's correct-answer set, records a Result with the player as winner and
// the matching players_results row, and pushes the refreshed quiz scoreboard
// to stream subscribers.
func (s *AttemptService) Submit(ctx context.Context, playerID, quizID int64, selectedAnswerIDs []int64) (domain.AttemptReceipt, error) {
	attempt, ok, err := s.attempts.Get(ctx, playerID, quizID)
	if err != nil {
		return domain.AttemptReceipt{}, err
	}
	if !ok {
		return domain.AttemptReceipt{}, domain.ErrAttemptNotStarted
	}
	if attempt.State == domain.AttemptSubmitted {
		return domain.AttemptReceipt{}, domain.ErrAttemptSubmitted
	}

	key, err := s.answerKeys.CorrectAnswers(ctx, quizID)
	if err != nil {
		return domain.AttemptReceipt{}, err
	}
	score := scoreSelections(key, selectedAnswerIDs)

	resultID, err := s.results.Create(ctx, domain.Result{Winner: playerID, QuizID: quizID})
	if err != nil {
		return domain.AttemptReceipt{}, err
	}
	if _, err := s.playerResults.Create(ctx, domain.PlayerResult{PlayerID: playerID, ResultID: resultID}); err != nil {
		return domain.AttemptReceipt{}, err
	}

	submittedAt := s.now()
	attempt.State = domain.AttemptSubmitted
	attempt.SubmittedAt = &submittedAt
	attempt.Score = score
	if err := s.attempts.Put(ctx, attempt); err != nil {
		return domain.AttemptReceipt{}, err
	}

	// Scoreboard push is best effort; the submit already succeeded.
	if s.board != nil {
		if scores, err := s.results.SumScoresByQuiz(ctx, quizID); err == nil {
			s.board.Broadcast(domain.Scoreboard{QuizID: quizID, Scores: scores, UpdatedAt: submittedAt})
		}
	}

	return domain.AttemptReceipt{
		Attempt: attempt,
		Message: fmt.Sprintf("Player %d submitted quiz %d with answers: %v at %s", playerID, quizID, selectedAnswerIDs, submittedAt.Format("2006-01-02 15:04:05")),
	}, nil
}

// scoreSelections counts how many distinct selected answer ids are in the
// correct-answer set. Repeated selections of the same answer count once.
func scoreSelections(key []domain.Answer, selected []int64) int64 {
	correct := make(map[int64]struct{}, len(key))
	for _, answer := range key {
		correct[answer.ID] = struct{}{}
	}

	var score int64
	seen := make(map[int64]struct{}, len(selected))
	for _, id := range selected {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := correct[id]; ok {
			score++
		}
	}
	return score
}
