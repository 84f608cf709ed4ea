package http

import (
	"log/slog"
	"net/http"

	"quizhub/internal/app"
	"quizhub/internal/domain"
)

type AnswerHandler struct {
	authoring *app.AuthoringService
	log       *slog.Logger
}

func NewAnswerHandler(authoring *app.AuthoringService, log *slog.Logger) *AnswerHandler {
	return &AnswerHandler{authoring: authoring, log: log}
}

type answerRequest struct {
	Text       string `json:"answerText"`
	IsCorrect  bool   `json:"isCorrect"`
	QuestionID int64  `json:"questionId"`
}

func (h *AnswerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validAnswerText(req.Text) {
		writeValidation(w, "answerText must be 1-255 characters")
		return
	}
	if req.QuestionID <= 0 {
		writeValidation(w, "questionId is required")
		return
	}

	id, err := h.authoring.CreateAnswer(r.Context(), domain.Answer{
		Text:       req.Text,
		IsCorrect:  req.IsCorrect,
		QuestionID: req.QuestionID,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, idBody{ID: id})
}

func (h *AnswerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req answerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validAnswerText(req.Text) {
		writeValidation(w, "answerText must be 1-255 characters")
		return
	}

	affected, err := h.authoring.UpdateAnswer(r.Context(), domain.Answer{
		ID:        id,
		Text:      req.Text,
		IsCorrect: req.IsCorrect,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeAffected(w, affected)
}

func (h *AnswerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	affected, err := h.authoring.DeleteAnswer(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeAffected(w, affected)
}

func (h *AnswerHandler) ListByQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, ok := pathID(w, r, "questionID")
	if !ok {
		return
	}
	answers, err := h.authoring.AnswersByQuestion(r.Context(), questionID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, answers)
}

func (h *AnswerHandler) ListByQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, ok := pathID(w, r, "quizID")
	if !ok {
		return
	}
	answers, err := h.authoring.AnswersOfQuiz(r.Context(), quizID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, answers)
}

func (h *AnswerHandler) ListCorrectByQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, ok := pathID(w, r, "quizID")
	if !ok {
		return
	}
	answers, err := h.authoring.CorrectAnswers(r.Context(), quizID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, answers)
}
