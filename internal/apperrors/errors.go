package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
// For accounts this is the DuplicateName condition.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnknownAccount indicates that a transaction referenced an account name that does not exist.
var ErrUnknownAccount = errors.New("unknown account")

// ErrInvalidAmount indicates a negative transaction amount.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrConsistencyViolation indicates that a balance adjustment targeted an account that
// does not exist outside of a cascade delete. It means the balance invariant broke.
var ErrConsistencyViolation = errors.New("balance consistency violation")

// ErrStorageUnavailable indicates that the store could not be opened or migrated.
var ErrStorageUnavailable = errors.New("storage unavailable")

// ErrStorageBusy indicates a transient storage conflict (lock contention, serialization
// failure). Operations failing with it can be retried.
var ErrStorageBusy = errors.New("storage busy")

// AppError carries an HTTP-ish status code alongside a wrapped infrastructure error.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
