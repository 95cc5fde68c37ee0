package internal

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrSessionNotConfigured = errors.New("appshell: session is not configured")
	ErrUnableToWriteBody    = errors.New("appshell: unable to write response body")
	ErrInvalidStatus        = errors.New("appshell: invalid HTTP status code")
)

// PanicError is a panic recovered from the execution routine.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// IsPanicError reports whether err wraps a PanicError.
func IsPanicError(err error) bool {
	var pe *PanicError
	return errors.As(err, &pe)
}

// HTTPError lets the execution routine choose the status code sent when it
// fails.
type HTTPError struct {
	Err     error
	Message string
	Code    int
}

// NewHTTPError returns an HTTPError with code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{Code: code, Message: message}
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}
