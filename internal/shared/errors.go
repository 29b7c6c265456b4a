package shared

import "errors"

var (
	// ErrSessionMissing indicates no session was attached to the request.
	ErrSessionMissing = errors.New("session missing")
	// ErrCSRFTokenMissing occurs when CSRF token missing.
	ErrCSRFTokenMissing = errors.New("csrf token missing")
	// ErrCSRFTokenMismatch occurs when CSRF tokens do not match.
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")
	// ErrAlreadySubmitted is returned when a one-shot form token is reused.
	ErrAlreadySubmitted = errors.New("form already submitted")
)
