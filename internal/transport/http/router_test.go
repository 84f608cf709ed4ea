package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quizhub/internal/app"
	"quizhub/internal/domain"
	"quizhub/internal/infra/memory"
)

func TestPlayerRegistrationConflict(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	body := `{"username":"alice","email":"alice@example.com","password":"secret1","dateOfBirth":"2000-01-02"}`
	resp := doJSON(t, server, http.MethodPost, "/api/players", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	resp = doJSON(t, server, http.MethodPost, "/api/players", body)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate, got %d", resp.StatusCode)
	}
}

func TestValidationRejected(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	cases := []struct {
		name string
		body string
	}{
		{"missing username", `{"email":"a@example.com","password":"secret1","dateOfBirth":"2000-01-02"}`},
		{"bad email", `{"username":"a","email":"not-an-email","password":"secret1","dateOfBirth":"2000-01-02"}`},
		{"short password", `{"username":"a","email":"a@example.com","password":"abc","dateOfBirth":"2000-01-02"}`},
		{"bad dob", `{"username":"a","email":"a@example.com","password":"secret1","dateOfBirth":"02/01/2000"}`},
	}
	for _, tc := range cases {
		resp := doJSON(t, server, http.MethodPost, "/api/players", tc.body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tc.name, resp.StatusCode)
		}
	}

	// Answer text over 255 characters.
	long := bytes.Repeat([]byte("x"), 256)
	resp := doJSON(t, server, http.MethodPost, "/api/answers", fmt.Sprintf(`{"answerText":%q,"questionId":1}`, long))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("long answer: expected 400, got %d", resp.StatusCode)
	}
}

func TestGetAbsentIsNotFound(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	resp := doJSON(t, server, http.MethodGet, "/api/quizzes/999", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestDeleteTwice(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	userID := createUser(t, server)
	quizID := createJSON(t, server, "/api/quizzes", fmt.Sprintf(`{"title":"Capitals","userId":%d}`, userID))

	resp := doJSON(t, server, http.MethodDelete, fmt.Sprintf("/api/quizzes/%d", quizID), "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on first delete, got %d", resp.StatusCode)
	}
	resp = doJSON(t, server, http.MethodDelete, fmt.Sprintf("/api/quizzes/%d", quizID), "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", resp.StatusCode)
	}
}

func TestCorrectAnswersEndpoint(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	userID := createUser(t, server)
	quizID := createJSON(t, server, "/api/quizzes", fmt.Sprintf(`{"title":"Capitals","userId":%d}`, userID))
	otherQuiz := createJSON(t, server, "/api/quizzes", fmt.Sprintf(`{"title":"Other","userId":%d}`, userID))

	q1 := createJSON(t, server, "/api/questions", fmt.Sprintf(`{"questionText":"Capital of France?","quizId":%d}`, quizID))
	q2 := createJSON(t, server, "/api/questions", fmt.Sprintf(`{"questionText":"Unrelated","quizId":%d}`, otherQuiz))

	right := createJSON(t, server, "/api/answers", fmt.Sprintf(`{"answerText":"Paris","isCorrect":true,"questionId":%d}`, q1))
	createJSON(t, server, "/api/answers", fmt.Sprintf(`{"answerText":"Lyon","isCorrect":false,"questionId":%d}`, q1))
	createJSON(t, server, "/api/answers", fmt.Sprintf(`{"answerText":"Elsewhere","isCorrect":true,"questionId":%d}`, q2))

	resp := doJSON(t, server, http.MethodGet, fmt.Sprintf("/api/answers/quiz/%d/correct", quizID), "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var answers []domain.Answer
	decodeBody(t, resp, &answers)
	if len(answers) != 1 || answers[0].ID != right {
		t.Fatalf("expected exactly answer %d, got %+v", right, answers)
	}
}

func TestAttemptFlowOverREST(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	userID := createUser(t, server)
	playerID := createJSON(t, server, "/api/players", `{"username":"alice","email":"alice@example.com","password":"secret1","dateOfBirth":"2000-01-02"}`)
	quizID := createJSON(t, server, "/api/quizzes", fmt.Sprintf(`{"title":"Capitals","userId":%d}`, userID))
	q1 := createJSON(t, server, "/api/questions", fmt.Sprintf(`{"questionText":"Capital of France?","quizId":%d}`, quizID))
	right := createJSON(t, server, "/api/answers", fmt.Sprintf(`{"answerText":"Paris","isCorrect":true,"questionId":%d}`, q1))
	wrong := createJSON(t, server, "/api/answers", fmt.Sprintf(`{"answerText":"Lyon","isCorrect":false,"questionId":%d}`, q1))

	startPath := fmt.Sprintf("/api/players/%d/quizzes/%d/start", playerID, quizID)
	submitPath := fmt.Sprintf("/api/players/%d/quizzes/%d/submit", playerID, quizID)

	// Submit before start is rejected.
	resp := doJSON(t, server, http.MethodPost, submitPath, `{"answerIds":[]}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for submit before start, got %d", resp.StatusCode)
	}

	resp = doJSON(t, server, http.MethodPost, startPath, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on start, got %d", resp.StatusCode)
	}
	var receipt domain.AttemptReceipt
	decodeBody(t, resp, &receipt)
	if receipt.Attempt.State != domain.AttemptStarted {
		t.Fatalf("expected started attempt, got %+v", receipt.Attempt)
	}

	resp = doJSON(t, server, http.MethodPost, startPath, "")
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 on second start, got %d", resp.StatusCode)
	}

	resp = doJSON(t, server, http.MethodPost, submitPath, fmt.Sprintf(`{"answerIds":[%d,%d]}`, right, wrong))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on submit, got %d", resp.StatusCode)
	}
	decodeBody(t, resp, &receipt)
	if receipt.Attempt.Score != 1 {
		t.Fatalf("expected score 1, got %d", receipt.Attempt.Score)
	}

	resp = doJSON(t, server, http.MethodPost, submitPath, `{"answerIds":[]}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 on second submit, got %d", resp.StatusCode)
	}

	// The submit left a durable trail visible in both aggregations.
	resp = doJSON(t, server, http.MethodGet, fmt.Sprintf("/api/results/quiz/%d/sum-scores", quizID), "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var scores []domain.PlayerScore
	decodeBody(t, resp, &scores)
	if len(scores) != 1 || scores[0].PlayerID != playerID {
		t.Fatalf("expected player %d on the quiz scoreboard, got %+v", playerID, scores)
	}

	resp = doJSON(t, server, http.MethodGet, "/api/players-results/sum-scores", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	decodeBody(t, resp, &scores)
	if len(scores) != 1 || scores[0].PlayerID != playerID {
		t.Fatalf("expected player %d in global scores, got %+v", playerID, scores)
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := memory.NewStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	board := app.NewScoreboardHub()
	accounts := app.NewAccountService(store.Users(), store.Players(), app.BcryptHasher{Cost: 4})
	authoring := app.NewAuthoringService(store.Quizzes(), store.Questions(), store.Answers())
	results := app.NewResultService(store.Results(), store.PlayerResults())
	attempts := app.NewAttemptService(
		memory.NewAttemptStore(),
		store.Quizzes(),
		memory.NewAnswerKeyCache(store.Answers(), time.Minute),
		store.Results(),
		store.PlayerResults(),
		board,
	)

	return httptest.NewServer(NewRouter(accounts, authoring, results, attempts, board, log))
}

func doJSON(t *testing.T, server *httptest.Server, method, path, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, server.URL+path, bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := server.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func createJSON(t *testing.T, server *httptest.Server, path, body string) int64 {
	t.Helper()
	resp := doJSON(t, server, http.MethodPost, path, body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST %s: expected 201, got %d", path, resp.StatusCode)
	}
	var created idBody
	decodeBody(t, resp, &created)
	return created.ID
}

func createUser(t *testing.T, server *httptest.Server) int64 {
	t.Helper()
	return createJSON(t, server, "/api/users", `{"username":"author","email":"author@example.com","password":"secret1","dateOfBirth":"1990-06-15"}`)
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
