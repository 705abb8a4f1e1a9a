package dto

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrDuplicate       = errors.New("duplicate record")
	ErrInternalFailure = errors.New("internal failure")
)

// apiError carries a client-facing message while unwrapping to one of the
// sentinels above, so callers keep matching with errors.Is.
type apiError struct {
	kind error
	msg  string
}

func (e *apiError) Error() string {
	return e.msg
}

func (e *apiError) Unwrap() error {
	return e.kind
}

func Validationf(format string, args ...any) error {
	return &apiError{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) error {
	return &apiError{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}
