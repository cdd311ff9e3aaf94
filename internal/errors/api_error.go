package apierrors

import (
	"errors"
	"net/http"
)

// APIError is an error that crosses the HTTP boundary. Only Code and Message are
// ever rendered to clients.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return e.Code
}

// NewAPIError builds an APIError with the default message registered for code.
func NewAPIError(status int, code string) *APIError {
	message, ok := messages[code]
	if !ok {
		message = http.StatusText(status)
	}
	return &APIError{Status: status, Code: code, Message: message}
}

func NewValidationError(code string) *APIError {
	return NewAPIError(http.StatusBadRequest, code)
}

func NewStoreUnavailableError() *APIError {
	return NewAPIError(http.StatusServiceUnavailable, ErrStoreUnavailable)
}

// AsAPIError unwraps err into an APIError. Anything that is not already an
// APIError becomes an INTERNAL_ERROR so no internal detail reaches the caller.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return NewAPIError(http.StatusInternalServerError, ErrInternal)
}

// IsValidation reports whether err is a client-side validation failure.
func IsValidation(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest
}
