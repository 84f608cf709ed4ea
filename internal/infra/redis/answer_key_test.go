package redis

import (
	"context"
	"testing"
	"time"

	"quizhub/internal/domain"
)

func TestAnswerKeyCacheCachesInRedis(t *testing.T) {
	mr, client := newTestRedis(t)
	defer mr.Close()

	source := &countingSource{answers: []domain.Answer{{ID: 7, Text: "right", IsCorrect: true, QuestionID: 3}}}
	cache := NewAnswerKeyCache(client, source, time.Minute)
	ctx := context.Background()

	answers, err := cache.CorrectAnswers(ctx, 5)
	if err != nil {
		t.Fatalf("correct answers: %v", err)
	}
	if len(answers) != 1 || answers[0].ID != 7 {
		t.Fatalf("unexpected answers: %+v", answers)
	}
	if source.calls != 1 {
		t.Fatalf("expected source called once, got %d", source.calls)
	}

	// Second call should hit redis, source not incremented.
	if _, err := cache.CorrectAnswers(ctx, 5); err != nil {
		t.Fatalf("correct answers: %v", err)
	}
	if source.calls != 1 {
		t.Fatalf("expected cache hit, source calls=%d", source.calls)
	}
}

func TestAnswerKeyCacheReloadsAfterExpiry(t *testing.T) {
	mr, client := newTestRedis(t)
	defer mr.Close()

	source := &countingSource{}
	cache := NewAnswerKeyCache(client, source, time.Minute)
	ctx := context.Background()

	if _, err := cache.CorrectAnswers(ctx, 5); err != nil {
		t.Fatalf("correct answers: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := cache.CorrectAnswers(ctx, 5); err != nil {
		t.Fatalf("correct answers: %v", err)
	}
	if source.calls != 2 {
		t.Fatalf("expected reload after expiry, got %d calls", source.calls)
	}
}

type countingSource struct {
	answers []domain.Answer
	calls   int
}

func (s *countingSource) ListCorrectByQuiz(ctx context.Context, quizID int64) ([]domain.Answer, error) {
	s.calls++
	return s.answers, nil
}
