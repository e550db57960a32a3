package ops

import (
	"errors"
	"fmt"
)

// OpError is a hard failure thrown out of Perform: persistence I/O during
// extraction, or identifier-generation exhaustion. The engine records no
// history for it and the graph is exactly as it was before the call.
type OpError struct {
	Code    OpErrorCode
	Message string
	Path    string
	Err     error
}

// OpErrorCode categorizes hard failures.
type OpErrorCode string

const (
	// ErrCodePersistence indicates a failed write of a reusable-unit file.
	ErrCodePersistence OpErrorCode = "PERSISTENCE_FAILED"

	// ErrCodeIdentExhausted indicates the identifier generator gave up.
	ErrCodeIdentExhausted OpErrorCode = "IDENT_EXHAUSTED"
)

func (e *OpError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s (path=%s)", e.Code, e.Message, e.Path)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *OpError) Unwrap() error { return e.Err }

// IsPersistenceError reports whether err is a persistence hard failure.
// Uses errors.As to handle wrapped errors.
func IsPersistenceError(err error) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Code == ErrCodePersistence
	}
	return false
}

func newPersistenceError(path string, err error) *OpError {
	return &OpError{
		Code:    ErrCodePersistence,
		Message: "writing reusable unit failed",
		Path:    path,
		Err:     err,
	}
}

func newIdentError(err error) *OpError {
	return &OpError{
		Code:    ErrCodeIdentExhausted,
		Message: "identifier generation failed",
		Err:     err,
	}
}
