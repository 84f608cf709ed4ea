package http

import (
	"log/slog"
	"net/http"

	"quizhub/internal/app"
	"quizhub/internal/domain"
)

// QuizHandler serves the quiz endpoints, including the question/answer views
// scoped to a quiz.
type QuizHandler struct {
	authoring *app.AuthoringService
	log       *slog.Logger
}

func NewQuizHandler(authoring *app.AuthoringService, log *slog.Logger) *QuizHandler {
	return &QuizHandler{authoring: authoring, log: log}
}

type quizRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    int64  `json:"duration"`
	UserID      int64  `json:"userId"`
	PlayerID    *int64 `json:"playerId"`
}

func (q quizRequest) validate(w http.ResponseWriter) bool {
	if q.Title == "" {
		writeValidation(w, "title is required")
		return false
	}
	if q.UserID <= 0 {
		writeValidation(w, "userId is required")
		return false
	}
	return true
}

func (h *QuizHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !req.validate(w) {
		return
	}

	id, err := h.authoring.CreateQuiz(r.Context(), domain.Quiz{
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		UserID:      req.UserID,
		PlayerID:    req.PlayerID,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, idBody{ID: id})
}

func (h *QuizHandler) List(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.authoring.Quizzes(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, quizzes)
}

func (h *QuizHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	quiz, found, err := h.authoring.Quiz(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if !found {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

func (h *QuizHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}
	quizzes, err := h.authoring.QuizzesByUser(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, quizzes)
}

func (h *QuizHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req quizRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !req.validate(w) {
		return
	}

	affected, err := h.authoring.UpdateQuiz(r.Context(), domain.Quiz{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		UserID:      req.UserID,
		PlayerID:    req.PlayerID,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeAffected(w, affected)
}

func (h *QuizHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	affected, err := h.authoring.DeleteQuiz(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeAffected(w, affected)
}

func (h *QuizHandler) Questions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	questions, err := h.authoring.QuestionsForQuiz(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

func (h *QuizHandler) QuestionsWithAnswers(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	rows, err := h.authoring.QuestionsWithAnswers(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
