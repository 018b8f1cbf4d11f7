// internal/accounting/result.go
package accounting

import (
	"gold-ledger/internal/util"
)

// Status of an executed transaction.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Result is the outcome of ExecuteTransaction. On success it carries an
// opaque transaction identifier; on failure a human-readable reason. The
// ledger is untouched whenever Status is error.
type Result struct {
	Status        Status `json:"status"`
	TransactionID string `json:"transaction_id,omitempty"`
	Message       string `json:"message,omitempty"`
}

// Success builds a success result for an appended row.
func Success(transactionID string) Result {
	return Result{
		Status:        StatusSuccess,
		TransactionID: transactionID,
		Message:       "transaction executed successfully",
	}
}

// Failure translates an error from validation, valuation or the store into
// an error result.
func Failure(err error) Result {
	return Result{Status: StatusError, Message: err.Error()}
}

// Retryable reports whether a failed result was caused by storage contention,
// meaning the whole call is safe to retry as-is.
func Retryable(err error) bool {
	return util.IsError(err, util.ErrConflict)
}
