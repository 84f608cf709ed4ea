package http

import (
	"regexp"
	"time"
)

// Request-shape validation mirrors the upstream contract: handlers validate,
// repositories assume validated input.

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const (
	minPasswordLen = 6
	maxAnswerLen   = 255
)

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func validPassword(password string) bool {
	return len(password) >= minPasswordLen
}

func validAnswerText(text string) bool {
	return text != "" && len(text) <= maxAnswerLen
}

// parseDOB accepts the date-only wire format used for dates of birth.
func parseDOB(raw string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
