package memory

import (
	"context"
	"sync"

	"quizhub/internal/domain"
)

// AttemptStore is an in-memory implementation of app.AttemptStore.
type AttemptStore struct {
	mu       sync.RWMutex
	attempts map[attemptKey]domain.Attempt
}

type attemptKey struct {
	playerID int64
	quizID   int64
}

func NewAttemptStore() *AttemptStore {
	return &AttemptStore{
		attempts: make(map[attemptKey]domain.Attempt),
	}
}

func (s *AttemptStore) Get(_ context.Context, playerID, quizID int64) (domain.Attempt, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	attempt, ok := s.attempts[attemptKey{playerID, quizID}]
	return attempt, ok, nil
}

func (s *AttemptStore) Put(_ context.Context, attempt domain.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[attemptKey{attempt.PlayerID, attempt.QuizID}] = attempt
	return nil
}
