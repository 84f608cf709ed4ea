package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"quizhub/internal/domain"
)

// AttemptStore keeps the per-(player,quiz) attempt session in Redis so it
// survives restarts and is shared across instances.
// Sessions are stored as: SET attempt:{playerID}:{quizID} {json} EX {ttl}
type AttemptStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAttemptStore(client *redis.Client, ttl time.Duration) *AttemptStore {
	return &AttemptStore{client: client, ttl: ttl}
}

func (s *AttemptStore) Get(ctx context.Context, playerID, quizID int64) (domain.Attempt, bool, error) {
	raw, err := s.client.Get(ctx, s.key(playerID, quizID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Attempt{}, false, nil
	}
	if err != nil {
		return domain.Attempt{}, false, fmt.Errorf("redis get attempt: %w", err)
	}
	var attempt domain.Attempt
	if err := json.Unmarshal(raw, &attempt); err != nil {
		return domain.Attempt{}, false, fmt.Errorf("decode attempt: %w", err)
	}
	return attempt, true, nil
}

func (s *AttemptStore) Put(ctx context.Context, attempt domain.Attempt) error {
	raw, err := json.Marshal(attempt)
	if err != nil {
		return fmt.Errorf("encode attempt: %w", err)
	}
	if err := s.client.Set(ctx, s.key(attempt.PlayerID, attempt.QuizID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set attempt: %w", err)
	}
	return nil
}

func (s *AttemptStore) key(playerID, quizID int64) string {
	return "attempt:" + strconv.FormatInt(playerID, 10) + ":" + strconv.FormatInt(quizID, 10)
}
