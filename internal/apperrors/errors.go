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
var ErrDuplicate = errors.New("resource already exists")

// ErrExternalIDTaken indicates the randomly drawn transfer number collided with
// an existing account. Callers draw a fresh number and retry.
var ErrExternalIDTaken = errors.New("external id already taken")

// ErrConflict indicates the request conflicts with the current state of a resource.
var ErrConflict = errors.New("resource conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// Transfer failure taxonomy. The ledger engine and its callers report these as
// typed results; handlers map them to user-facing messages.
var (
	// ErrInvalidAmount indicates a transfer amount that is zero, negative, or unparsable.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrSelfTransfer indicates sender and receiver resolve to the same account.
	ErrSelfTransfer = errors.New("cannot transfer to the same account")

	// ErrSenderNotFound indicates the sender external id does not resolve to an account.
	ErrSenderNotFound = errors.New("sender account not found")

	// ErrReceiverNotFound indicates the receiver external id does not resolve to an account.
	ErrReceiverNotFound = errors.New("receiver account not found")

	// ErrInsufficientBalance indicates the sender balance is below the transfer
	// amount at execution time.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrLimitExceeded indicates the amount exceeds the payer's configured max limit.
	// This is a caller-side pre-check, not enforced inside the atomic engine.
	ErrLimitExceeded = errors.New("amount exceeds max limit")

	// ErrConcurrentModification indicates the atomic commit lost a race with a
	// concurrent transfer and exhausted its internal retries.
	ErrConcurrentModification = errors.New("concurrent modification detected")

	// ErrStorageUnavailable indicates a transient infrastructure failure. The engine
	// surfaces it as-is rather than masking it.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// AppError carries a status code alongside a message and wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
