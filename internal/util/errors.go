// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
//
// Every failure the ledger can surface folds into one of three recoverable
// categories: a missing reference, a malformed payload, or storage-level
// contention. The entity-specific sentinels wrap ErrNotFound so callers can
// match either the broad category or the exact entity.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidPayload = errors.New("invalid transaction payload")
	ErrConflict       = errors.New("storage conflict, safe to retry")

	ErrCustomerNotFound    = wrap("customer not found", ErrNotFound)
	ErrBankAccountNotFound = wrap("bank account not found", ErrNotFound)
	ErrJewelryNotFound     = wrap("jewelry item not found", ErrNotFound)
)

// wrap builds a sentinel that is errors.Is-matchable against its category.
func wrap(msg string, category error) error {
	return &categorizedError{msg: msg, category: category}
}

type categorizedError struct {
	msg      string
	category error
}

func (e *categorizedError) Error() string { return e.msg }
func (e *categorizedError) Unwrap() error { return e.category }

// IsError reports whether err matches the target sentinel.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
