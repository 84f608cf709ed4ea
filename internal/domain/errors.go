package domain

import "errors"

var (
	// ErrPlayerExists is returned when a registration or update collides with
	// an existing player username or email.
	ErrPlayerExists = errors.New("player already registered")
	// ErrInvalidCredentials covers both unknown account and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrQuizNotFound indicates the referenced quiz does not exist.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrAttemptStarted rejects a repeated start for the same player and quiz.
	ErrAttemptStarted = errors.New("quiz already started")
	// ErrAttemptSubmitted rejects starting or re-submitting a finished attempt.
	ErrAttemptSubmitted = errors.New("quiz already submitted")
	// ErrAttemptNotStarted rejects a submit without a prior start.
	ErrAttemptNotStarted = errors.New("quiz not started")
)
