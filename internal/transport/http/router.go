package http

import (
	"log/slog"
	"net/http"

	"quizhub/internal/app"
)

// NewRouter wires every handler onto a ServeMux.
func NewRouter(
	accounts *app.AccountService,
	authoring *app.AuthoringService,
	results *app.ResultService,
	attempts *app.AttemptService,
	board *app.ScoreboardHub,
	log *slog.Logger,
) *http.ServeMux {
	users := NewUserHandler(accounts, log)
	players := NewPlayerHandler(accounts, attempts, log)
	quizzes := NewQuizHandler(authoring, log)
	questions := NewQuestionHandler(authoring, log)
	answers := NewAnswerHandler(authoring, log)
	res := NewResultHandler(results, log)
	scores := NewScoresHandler(board, results, log)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("POST /api/users", users.Register)
	mux.HandleFunc("POST /api/users/login", users.Login)
	mux.HandleFunc("PUT /api/users/password", users.ChangePassword)
	mux.HandleFunc("GET /api/users/usernames", users.Usernames)
	mux.HandleFunc("GET /api/users/{id}", users.Get)
	mux.HandleFunc("PUT /api/users/{id}", users.Update)
	mux.HandleFunc("DELETE /api/users/{id}", users.Delete)

	mux.HandleFunc("POST /api/players", players.Register)
	mux.HandleFunc("POST /api/players/login", players.Login)
	mux.HandleFunc("GET /api/players", players.List)
	mux.HandleFunc("GET /api/players/usernames", players.Usernames)
	mux.HandleFunc("GET /api/players/{id}", players.Get)
	mux.HandleFunc("PUT /api/players/{id}", players.Update)
	mux.HandleFunc("DELETE /api/players/{id}", players.Delete)
	mux.HandleFunc("PUT /api/players/{id}/password", players.ChangePassword)
	mux.HandleFunc("POST /api/players/{playerID}/quizzes/{quizID}/start", players.StartQuiz)
	mux.HandleFunc("POST /api/players/{playerID}/quizzes/{quizID}/submit", players.SubmitQuiz)

	mux.HandleFunc("POST /api/quizzes", quizzes.Create)
	mux.HandleFunc("GET /api/quizzes", quizzes.List)
	mux.HandleFunc("GET /api/quizzes/user/{userID}", quizzes.ListByUser)
	mux.HandleFunc("GET /api/quizzes/{id}", quizzes.Get)
	mux.HandleFunc("PUT /api/quizzes/{id}", quizzes.Update)
	mux.HandleFunc("DELETE /api/quizzes/{id}", quizzes.Delete)
	mux.HandleFunc("GET /api/quizzes/{id}/questions", quizzes.Questions)
	mux.HandleFunc("GET /api/quizzes/{id}/questions/answers", quizzes.QuestionsWithAnswers)

	mux.HandleFunc("POST /api/questions", questions.Create)
	mux.HandleFunc("GET /api/questions/{id}", questions.Get)
	mux.HandleFunc("PUT /api/questions/{id}", questions.Update)
	mux.HandleFunc("DELETE /api/questions/{id}", questions.Delete)

	mux.HandleFunc("POST /api/answers", answers.Create)
	mux.HandleFunc("PUT /api/answers/{id}", answers.Update)
	mux.HandleFunc("DELETE /api/answers/{id}", answers.Delete)
	mux.HandleFunc("GET /api/answers/question/{questionID}", answers.ListByQuestion)
	mux.HandleFunc("GET /api/answers/quiz/{quizID}", answers.ListByQuiz)
	mux.HandleFunc("GET /api/answers/quiz/{quizID}/correct", answers.ListCorrectByQuiz)

	mux.HandleFunc("POST /api/results", res.Create)
	mux.HandleFunc("GET /api/results/player/{playerID}", res.ListByPlayer)
	mux.HandleFunc("GET /api/results/quiz/{quizID}", res.ListByQuiz)
	mux.HandleFunc("GET /api/results/quiz/{quizID}/sum-scores", res.SumScoresByQuiz)
	mux.HandleFunc("PUT /api/results/{id}", res.Update)
	mux.HandleFunc("DELETE /api/results/{id}", res.Delete)

	mux.HandleFunc("POST /api/players-results", res.CreatePlayerResult)
	mux.HandleFunc("GET /api/players-results/sum-scores", res.SumScores)
	mux.HandleFunc("GET /api/players-results/player/{playerID}", res.PlayerResultsByPlayer)
	mux.HandleFunc("GET /api/players-results/result/{resultID}", res.PlayerResultsByResult)
	mux.HandleFunc("PUT /api/players-results/{id}", res.UpdatePlayerResult)
	mux.HandleFunc("DELETE /api/players-results/{id}", res.DeletePlayerResult)

	mux.HandleFunc("GET /ws/scores", scores.ServeWS)

	return mux
}
