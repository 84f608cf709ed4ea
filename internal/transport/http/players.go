package http

import (
	"log/slog"
	"net/http"

	"quizhub/internal/app"
	"quizhub/internal/domain"
)

// PlayerHandler serves the player-account endpoints and the per-player quiz
// attempt lifecycle (start/submit).
type PlayerHandler struct {
	accounts *app.AccountService
	attempts *app.AttemptService
	log      *slog.Logger
}

func NewPlayerHandler(accounts *app.AccountService, attempts *app.AttemptService, log *slog.Logger) *PlayerHandler {
	return &PlayerHandler{accounts: accounts, attempts: attempts, log: log}
}

func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Username == "" {
		writeValidation(w, "username is required")
		return
	}
	if !validEmail(req.Email) {
		writeValidation(w, "invalid email")
		return
	}
	if !validPassword(req.Password) {
		writeValidation(w, "password too short")
		return
	}
	dob, ok := parseDOB(req.DateOfBirth)
	if !ok {
		writeValidation(w, "invalid dateOfBirth")
		return
	}

	id, err := h.accounts.RegisterPlayer(r.Context(), req.Username, req.Email, req.Password, dob)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, idBody{ID: id})
}

func (h *PlayerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validEmail(req.Email) || req.Password == "" {
		writeValidation(w, "email and password are required")
		return
	}

	player, err := h.accounts.PlayerLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, player)
}

func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.accounts.Players(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

func (h *PlayerHandler) Usernames(w http.ResponseWriter, r *http.Request) {
	usernames, err := h.accounts.PlayerUsernames(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, usernames)
}

func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	player, found, err := h.accounts.Player(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if !found {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, player)
}

func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req updateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Username == "" || !validEmail(req.Email) {
		writeValidation(w, "username and email are required")
		return
	}
	dob, ok := parseDOB(req.DateOfBirth)
	if !ok {
		writeValidation(w, "invalid dateOfBirth")
		return
	}

	affected, err := h.accounts.UpdatePlayer(r.Context(), domain.Player{
		ID:          id,
		Username:    req.Username,
		Email:       req.Email,
		DateOfBirth: dob,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeAffected(w, affected)
}

func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	affected, err := h.accounts.DeletePlayer(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeAffected(w, affected)
}

type changePlayerPasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

func (h *PlayerHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req changePlayerPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validPassword(req.NewPassword) {
		writeValidation(w, "password too short")
		return
	}

	affected, err := h.accounts.ChangePlayerPassword(r.Context(), id, req.NewPassword)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeAffected(w, affected)
}

func (h *PlayerHandler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	playerID, ok := pathID(w, r, "playerID")
	if !ok {
		return
	}
	quizID, ok := pathID(w, r, "quizID")
	if !ok {
		return
	}

	receipt, err := h.attempts.Start(r.Context(), playerID, quizID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

type submitQuizRequest struct {
	AnswerIDs []int64 `json:"answerIds"`
}

func (h *PlayerHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	playerID, ok := pathID(w, r, "playerID")
	if !ok {
		return
	}
	quizID, ok := pathID(w, r, "quizID")
	if !ok {
		return
	}
	var req submitQuizRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	receipt, err := h.attempts.Submit(r.Context(), playerID, quizID, req.AnswerIDs)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}
