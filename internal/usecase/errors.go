package usecase

import "errors"

// ErrUnauthorized means the request carried no resolvable user identity.
var ErrUnauthorized = errors.New("unauthorized")

// ValidationError reports a bad request field. It is always produced before
// any external call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}
