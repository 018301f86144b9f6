package query

import (
	"errors"
	"net/http"
)

var (
	ErrNoClient           = errors.New("query: no client in context")
	ErrNoLink             = errors.New("query: client has no link")
	ErrUnknownProcedure   = errors.New("query: unknown procedure")
	ErrInvalidInput       = errors.New("query: invalid input")
	ErrInvalidResponse    = errors.New("query: invalid response")
	ErrDuplicateProcedure = errors.New("query: procedure already registered")
)

// Error codes carried in the error envelope.
const (
	CodeBadRequest          = "BAD_REQUEST"
	CodeNotFound            = "NOT_FOUND"
	CodeInternalServerError = "INTERNAL_SERVER_ERROR"
	CodeServiceUnavailable  = "SERVICE_UNAVAILABLE"
)

// Error is a procedure failure as seen by the caller.
// Procedures return it to pick the code sent to clients.
type Error struct {
	Err     error  `json:"-"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// NewError creates an Error with the given code and message.
func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status maps the error code to an HTTP status.
func (e *Error) Status() int {
	switch e.Code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// toError converts any error to an *Error safe to expose.
// Internal error messages are not leaked.
func toError(err error) *Error {
	var qerr *Error
	if errors.As(err, &qerr) {
		return qerr
	}

	switch {
	case errors.Is(err, ErrUnknownProcedure):
		return &Error{Err: err, Code: CodeNotFound, Message: "procedure not found"}
	case errors.Is(err, ErrInvalidInput):
		return &Error{Err: err, Code: CodeBadRequest, Message: "invalid input"}
	default:
		return &Error{Err: err, Code: CodeInternalServerError, Message: "internal server error"}
	}
}
