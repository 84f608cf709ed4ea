package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"quizhub/internal/domain"
)

func TestAttemptStoreRoundTrip(t *testing.T) {
	mr, client := newTestRedis(t)
	defer mr.Close()

	store := NewAttemptStore(client, time.Minute)
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, 1, 2); err != nil || ok {
		t.Fatalf("expected absent attempt, got ok=%v err=%v", ok, err)
	}

	attempt := domain.Attempt{
		PlayerID:  1,
		QuizID:    2,
		State:     domain.AttemptStarted,
		StartedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	if err := store.Put(ctx, attempt); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := store.Get(ctx, 1, 2)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected attempt to exist")
	}
	if got.State != domain.AttemptStarted || !got.StartedAt.Equal(attempt.StartedAt) {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestAttemptStoreExpires(t *testing.T) {
	mr, client := newTestRedis(t)
	defer mr.Close()

	store := NewAttemptStore(client, time.Minute)
	ctx := context.Background()

	if err := store.Put(ctx, domain.Attempt{PlayerID: 1, QuizID: 2, State: domain.AttemptStarted}); err != nil {
		t.Fatalf("put: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, ok, err := store.Get(ctx, 1, 2); err != nil || ok {
		t.Fatalf("expected attempt expired, got ok=%v err=%v", ok, err)
	}
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}
