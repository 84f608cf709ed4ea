package http

import (
	"log/slog"
	"net/http"

	"quizhub/internal/app"
	"quizhub/internal/domain"
)

type QuestionHandler struct {
	authoring *app.AuthoringService
	log       *slog.Logger
}

func NewQuestionHandler(authoring *app.AuthoringService, log *slog.Logger) *QuestionHandler {
	return &QuestionHandler{authoring: authoring, log: log}
}

type questionRequest struct {
	Text          string `json:"questionText"`
	CorrectAnswer string `json:"correctAnswer"`
	QuizID        int64  `json:"quizId"`
}

func (q questionRequest) validate(w http.ResponseWriter) bool {
	if q.Text == "" {
		writeValidation(w, "questionText is required")
		return false
	}
	if q.QuizID <= 0 {
		writeValidation(w, "quizId is required")
		return false
	}
	return true
}

func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !req.validate(w) {
		return
	}

	id, err := h.authoring.CreateQuestion(r.Context(), domain.Question{
		Text:          req.Text,
		CorrectAnswer: req.CorrectAnswer,
		QuizID:        req.QuizID,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, idBody{ID: id})
}

func (h *QuestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	question, found, err := h.authoring.Question(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if !found {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, question)
}

func (h *QuestionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req questionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !req.validate(w) {
		return
	}

	affected, err := h.authoring.UpdateQuestion(r.Context(), domain.Question{
		ID:            id,
		Text:          req.Text,
		CorrectAnswer: req.CorrectAnswer,
		QuizID:        req.QuizID,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeAffected(w, affected)
}

func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	affected, err := h.authoring.DeleteQuestion(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeAffected(w, affected)
}
