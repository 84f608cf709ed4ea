package app

import (
	"context"

	"quizhub/internal/domain"
)

// ResultService covers result records, the players-results association and
// the two score aggregations.
//
// The two aggregations deliberately stay separate: SumScores (global) and
// SumScoresByQuiz (quiz-scoped) answer different questions over different
// join paths and must not be unified.
type ResultService struct {
	results       ResultRepository
	playerResults PlayerResultRepository
}

func NewResultService(results ResultRepository, playerResults PlayerResultRepository) *ResultService {
	return &ResultService{results: results, playerResults: playerResults}
}

func (s *ResultService) CreateResult(ctx context.Context, result domain.Result) (int64, error) {
	return s.results.Create(ctx, result)
}

func (s *ResultService) ResultsForPlayer(ctx context.Context, playerID int64) ([]domain.Result, error) {
	return s.results.ListByWinner(ctx, playerID)
}

func (s *ResultService) ResultsForQuiz(ctx context.Context, quizID int64) ([]domain.Result, error) {
	return s.results.ListByQuiz(ctx, quizID)
}

func (s *ResultService) UpdateResult(ctx context.Context, result domain.Result) (int64, error) {
	return s.results.Update(ctx, result)
}

func (s *ResultService) DeleteResult(ctx context.Context, id int64) (int64, error) {
	return s.results.Delete(ctx, id)
}

// SumScoresByQuiz aggregates per-player totals for one quiz.
func (s *ResultService) SumScoresByQuiz(ctx context.Context, quizID int64) ([]domain.PlayerScore, error) {
	return s.results.SumScoresByQuiz(ctx, quizID)
}

func (s *ResultService) CreatePlayerResult(ctx context.Context, entry domain.PlayerResult) (int64, error) {
	return s.playerResults.Create(ctx, entry)
}

func (s *ResultService) PlayerResultsForPlayer(ctx context.Context, playerID int64) ([]domain.PlayerResult, error) {
	return s.playerResults.ListByPlayer(ctx, playerID)
}

func (s *ResultService) PlayerResultsForResult(ctx context.Context, resultID int64) ([]domain.PlayerResult, error) {
	return s.playerResults.ListByResult(ctx, resultID)
}

func (s *ResultService) UpdatePlayerResult(ctx context.Context, entry domain.PlayerResult) (int64, error) {
	return s.playerResults.Update(ctx, entry)
}

func (s *ResultService) DeletePlayerResult(ctx context.Context, id int64) (int64, error) {
	return s.playerResults.Delete(ctx, id)
}

// SumScores aggregates per-player totals over every recorded result. Players
// with no results are absent from the output, never zero-filled.
func (s *ResultService) SumScores(ctx context.Context) ([]domain.PlayerScore, error) {
	return s.playerResults.SumScores(ctx)
}
