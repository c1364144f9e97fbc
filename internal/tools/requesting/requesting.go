package requesting

import (
	"fmt"
	"os"
)

type ErrorCode string

const (
	TimeoutError    ErrorCode = "timeout"
	ConnectionError ErrorCode = "connection"
)

// Error is a transport level failure of an outgoing request.
type Error struct {
	Code ErrorCode
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func IsValidResponse(code int) bool {
	return code >= 200 && code <= 299
}

func Classify(err error) ErrorCode {
	if os.IsTimeout(err) {
		return TimeoutError
	}

	return ConnectionError
}

func RequestError(err error) error {
	if err == nil {
		return nil
	}

	return &Error{Code: Classify(err), Err: err}
}

func ReadError(err error) error {
	if err == nil {
		return nil
	}

	return &Error{Code: ConnectionError, Err: fmt.Errorf("reading response body: %w", err)}
}
