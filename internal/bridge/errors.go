package bridge

import (
	"errors"
	"fmt"
)

// Failure kinds. Only ErrBridgeUnavailable ends a session; the rest are
// logged where they happen.
var (
	ErrBridgeUnavailable = errors.New("bridge unavailable")
	ErrQueryFailed       = errors.New("query failed")
	ErrSubmissionFailed  = errors.New("submission failed")
	ErrUpdateFailed      = errors.New("update failed")
)

// OpError records which bridge operation failed and with what kind.
type OpError struct {
	Op   string
	Kind error
	Err  error
}

// Fail wraps err as an OpError of the given kind. A nil err yields nil.
func Fail(op string, kind error, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Kind: kind, Err: err}
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *OpError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// IsFatal reports whether err should end the session.
func IsFatal(err error) bool {
	return errors.Is(err, ErrBridgeUnavailable)
}
