package memory

import (
	"context"
	"testing"
	"time"

	"quizhub/internal/domain"
)

func TestAnswerKeyCacheLoadsOnce(t *testing.T) {
	ctx := context.Background()
	source := &countingSource{answers: []domain.Answer{{ID: 1, Text: "right", IsCorrect: true, QuestionID: 1}}}
	cache := NewAnswerKeyCache(source, time.Minute)

	answers, err := cache.CorrectAnswers(ctx, 1)
	if err != nil {
		t.Fatalf("correct answers: %v", err)
	}
	if len(answers) != 1 || answers[0].ID != 1 {
		t.Fatalf("unexpected answers: %+v", answers)
	}
	if source.calls != 1 {
		t.Fatalf("expected source called once, got %d", source.calls)
	}

	// Second call hits the cache.
	if _, err := cache.CorrectAnswers(ctx, 1); err != nil {
		t.Fatalf("correct answers: %v", err)
	}
	if source.calls != 1 {
		t.Fatalf("expected cache hit, source calls=%d", source.calls)
	}
}

func TestAnswerKeyCacheExpires(t *testing.T) {
	ctx := context.Background()
	source := &countingSource{}
	cache := NewAnswerKeyCache(source, time.Minute)

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	cache.clock = func() time.Time { return now }

	if _, err := cache.CorrectAnswers(ctx, 1); err != nil {
		t.Fatalf("correct answers: %v", err)
	}
	if source.calls != 1 {
		t.Fatalf("expected one load, got %d", source.calls)
	}

	// Past the TTL plus maximum jitter the entry must reload.
	now = now.Add(2 * time.Minute)
	if _, err := cache.CorrectAnswers(ctx, 1); err != nil {
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
