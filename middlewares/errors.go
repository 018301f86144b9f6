package middlewares

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// PanicError is returned by Recover when a handler panics.
type PanicError struct {
	Value any
	Stack []byte // nil when stack capture is disabled
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// StatusCode reports the response status for a recovered panic.
func (e *PanicError) StatusCode() int {
	return http.StatusInternalServerError
}

// TimeoutError is returned by Timeout when a handler misses its deadline.
type TimeoutError struct {
	Duration time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timeout after %s", e.Duration)
}

// StatusCode reports the response status for a timed out request.
func (e *TimeoutError) StatusCode() int {
	return http.StatusGatewayTimeout
}

// IsPanicError reports whether err wraps a PanicError.
func IsPanicError(err error) bool {
	_, ok := AsPanicError(err)
	return ok
}

// IsTimeoutError reports whether err wraps a TimeoutError.
func IsTimeoutError(err error) bool {
	_, ok := AsTimeoutError(err)
	return ok
}

// AsPanicError returns the PanicError in err's chain.
func AsPanicError(err error) (*PanicError, bool) {
	return as[*PanicError](err)
}

// AsTimeoutError returns the TimeoutError in err's chain.
func AsTimeoutError(err error) (*TimeoutError, bool) {
	return as[*TimeoutError](err)
}

func as[E error](err error) (E, bool) {
	var target E
	ok := errors.As(err, &target)
	return target, ok
}
