package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"quizhub/internal/app"
	"quizhub/internal/domain"
	"quizhub/internal/infra/memory"
)

func TestStartAndSubmitLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newAttemptFixture(t)

	receipt, err := f.attempts.Start(ctx, f.playerID, f.quizID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if receipt.Attempt.State != domain.AttemptStarted {
		t.Fatalf("expected started state, got %q", receipt.Attempt.State)
	}
	if receipt.Message != "Player 1 started quiz 1 at 2025-03-01 10:00:00" {
		t.Fatalf("unexpected start message: %q", receipt.Message)
	}

	if _, err := f.attempts.Start(ctx, f.playerID, f.quizID); !errors.Is(err, domain.ErrAttemptStarted) {
		t.Fatalf("expected ErrAttemptStarted on second start, got %v", err)
	}

	// Selections: both correct answers, one wrong one, one duplicate.
	receipt, err = f.attempts.Submit(ctx, f.playerID, f.quizID, []int64{f.correctIDs[0], f.correctIDs[1], f.wrongID, f.correctIDs[0]})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if receipt.Attempt.Score != 2 {
		t.Fatalf("expected score 2, got %d", receipt.Attempt.Score)
	}
	if receipt.Attempt.State != domain.AttemptSubmitted {
		t.Fatalf("expected submitted state, got %q", receipt.Attempt.State)
	}

	if _, err := f.attempts.Submit(ctx, f.playerID, f.quizID, nil); !errors.Is(err, domain.ErrAttemptSubmitted) {
		t.Fatalf("expected ErrAttemptSubmitted on second submit, got %v", err)
	}
	if _, err := f.attempts.Start(ctx, f.playerID, f.quizID); !errors.Is(err, domain.ErrAttemptSubmitted) {
		t.Fatalf("expected ErrAttemptSubmitted on start after submit, got %v", err)
	}
}

func TestStartUnknownQuiz(t *testing.T) {
	ctx := context.Background()
	f := newAttemptFixture(t)

	if _, err := f.attempts.Start(ctx, f.playerID, 999); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestSubmitRequiresStart(t *testing.T) {
	ctx := context.Background()
	f := newAttemptFixture(t)

	if _, err := f.attempts.Submit(ctx, f.playerID, f.quizID, nil); !errors.Is(err, domain.ErrAttemptNotStarted) {
		t.Fatalf("expected ErrAttemptNotStarted, got %v", err)
	}
}

func TestSubmitRecordsResultAndBroadcasts(t *testing.T) {
	ctx := context.Background()
	f := newAttemptFixture(t)

	updates, cancel := f.board.Subscribe(f.quizID)
	defer cancel()

	if _, err := f.attempts.Start(ctx, f.playerID, f.quizID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := f.attempts.Submit(ctx, f.playerID, f.quizID, []int64{f.correctIDs[0]}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	results, err := f.store.Results().ListByQuiz(ctx, f.quizID)
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	if len(results) != 1 || results[0].Winner != f.playerID {
		t.Fatalf("expected one result for player %d, got %+v", f.playerID, results)
	}
	entries, err := f.store.PlayerResults().ListByResult(ctx, results[0].ID)
	if err != nil {
		t.Fatalf("list player results: %v", err)
	}
	if len(entries) != 1 || entries[0].PlayerID != f.playerID {
		t.Fatalf("expected one players_results row, got %+v", entries)
	}

	select {
	case board := <-updates:
		if board.QuizID != f.quizID || len(board.Scores) != 1 {
			t.Fatalf("unexpected scoreboard: %+v", board)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a scoreboard broadcast")
	}
}

type attemptFixture struct {
	store      *memory.Store
	board      *app.ScoreboardHub
	attempts   *app.AttemptService
	playerID   int64
	quizID     int64
	correctIDs []int64
	wrongID    int64
}

func newAttemptFixture(t *testing.T) *attemptFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	playerID, err := store.Players().Create(ctx, domain.Player{Username: "alice", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	userID, err := store.Users().Create(ctx, domain.User{Username: "author", Email: "author@example.com"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	quizID, err := store.Quizzes().Create(ctx, domain.Quiz{Title: "Capitals", UserID: userID})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	questionID, err := store.Questions().Create(ctx, domain.Question{Text: "Capital of France?", QuizID: quizID})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	c1, _ := store.Answers().Create(ctx, domain.Answer{Text: "Paris", IsCorrect: true, QuestionID: questionID})
	c2, _ := store.Answers().Create(ctx, domain.Answer{Text: "Paris, France", IsCorrect: true, QuestionID: questionID})
	wrong, _ := store.Answers().Create(ctx, domain.Answer{Text: "Lyon", QuestionID: questionID})

	board := app.NewScoreboardHub()
	clock := func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) }
	attempts := app.NewAttemptServiceWithClock(
		memory.NewAttemptStore(),
		store.Quizzes(),
		memory.NewAnswerKeyCache(store.Answers(), time.Minute),
		store.Results(),
		store.PlayerResults(),
		board,
		clock,
	)

	return &attemptFixture{
		store:      store,
		board:      board,
		attempts:   attempts,
		playerID:   playerID,
		quizID:     quizID,
		correctIDs: []int64{c1, c2},
		wrongID:    wrong,
	}
}
