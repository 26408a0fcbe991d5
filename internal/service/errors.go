package service

import "errors"

// ErrNotFound is returned when a short code resolves to nothing, either
// because no record holds it or because the matching record has expired.
// Both cases look identical to callers.
var ErrNotFound = errors.New("URL not found or expired")

// ErrInvalidCredentials is returned by credential verification failures.
// The reason (unknown email vs wrong password) is deliberately not exposed.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ValidationError marks a request the caller can correct: a malformed URL,
// a bad custom short code, or an out-of-range duration.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
