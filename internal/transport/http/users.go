package http

import (
	"log/slog"
	"net/http"

	"quizhub/internal/app"
	"quizhub/internal/domain"
)

// UserHandler serves the author-account endpoints.
type UserHandler struct {
	accounts *app.AccountService
	log      *slog.Logger
}

func NewUserHandler(accounts *app.AccountService, log *slog.Logger) *UserHandler {
	return &UserHandler{accounts: accounts, log: log}
}

type registerRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DateOfBirth string `json:"dateOfBirth"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
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

	id, err := h.accounts.RegisterUser(r.Context(), req.Username, req.Email, req.Password, dob)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, idBody{ID: id})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validEmail(req.Email) || req.Password == "" {
		writeValidation(w, "email and password are required")
		return
	}

	user, err := h.accounts.UserLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	user, found, err := h.accounts.User(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if !found {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type updateUserRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	DateOfBirth string `json:"dateOfBirth"`
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	affected, err := h.accounts.UpdateUser(r.Context(), domain.User{
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

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	affected, err := h.accounts.DeleteUser(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeAffected(w, affected)
}

func (h *UserHandler) Usernames(w http.ResponseWriter, r *http.Request) {
	usernames, err := h.accounts.UserUsernames(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, usernames)
}

type changePasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validEmail(req.Email) {
		writeValidation(w, "invalid email")
		return
	}
	if !validPassword(req.NewPassword) {
		writeValidation(w, "password too short")
		return
	}

	affected, err := h.accounts.ChangeUserPassword(r.Context(), req.Email, req.NewPassword)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeAffected(w, affected)
}
