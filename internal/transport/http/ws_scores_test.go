package http

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"quizhub/internal/app"
	"quizhub/internal/domain"
	"quizhub/internal/infra/memory"
)

func TestScoreboardStream(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	playerID, _ := store.Players().Create(ctx, domain.Player{Username: "alice", Email: "alice@example.com"})
	userID, _ := store.Users().Create(ctx, domain.User{Username: "author", Email: "author@example.com"})
	quizID, _ := store.Quizzes().Create(ctx, domain.Quiz{Title: "Capitals", UserID: userID})
	questionID, _ := store.Questions().Create(ctx, domain.Question{Text: "Capital of France?", QuizID: quizID})
	answerID, _ := store.Answers().Create(ctx, domain.Answer{Text: "Paris", IsCorrect: true, QuestionID: questionID})

	board := app.NewScoreboardHub()
	results := app.NewResultService(store.Results(), store.PlayerResults())
	attempts := app.NewAttemptService(
		memory.NewAttemptStore(),
		store.Quizzes(),
		memory.NewAnswerKeyCache(store.Answers(), time.Minute),
		store.Results(),
		store.PlayerResults(),
		board,
	)

	mux := http.NewServeMux()
	scores := NewScoresHandler(board, results, log)
	mux.HandleFunc("GET /ws/scores", scores.ServeWS)
	server := httptest.NewServer(mux)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + fmt.Sprintf("/ws/scores?quizId=%d", quizID)
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Initial snapshot: no submissions yet.
	var snapshot domain.Scoreboard
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&snapshot); err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if snapshot.QuizID != quizID || len(snapshot.Scores) != 0 {
		t.Fatalf("unexpected initial snapshot: %+v", snapshot)
	}

	if _, err := attempts.Start(ctx, playerID, quizID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := attempts.Submit(ctx, playerID, quizID, []int64{answerID}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	var update domain.Scoreboard
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&update); err != nil {
		t.Fatalf("read update: %v", err)
	}
	if len(update.Scores) != 1 || update.Scores[0].PlayerID != playerID || update.Scores[0].Score != 1 {
		t.Fatalf("unexpected scoreboard update: %+v", update)
	}
}
