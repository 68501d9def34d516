package model

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation error")       // 400
	ErrPermissionDenied  = errors.New("permission denied")      // 403
	ErrOrderNotFound     = errors.New("order not found")        // 404
	ErrInvoiceNotFound   = errors.New("invoice not found")      // 404
	ErrLineNotFound      = errors.New("line item not found")    // 404
	ErrProductNotFound   = errors.New("product not found")      // 404
	ErrServiceNotFound   = errors.New("service not found")      // 404
	ErrMechanicNotFound  = errors.New("mechanic not found")     // 404
	ErrStaleEntity       = errors.New("stale entity")           // 409
	ErrIllegalTransition = errors.New("illegal transition")     // 409
	ErrInsufficientStock = errors.New("insufficient stock")     // 422
	ErrInvalidCredential = errors.New("invalid credential")     // 401
	ErrAttemptsExhausted = errors.New("attempts exhausted")     // 401
	ErrBusy              = errors.New("edit already in flight") // 423
	ErrBadGateway        = errors.New("bad gateway")            // 502
	ErrUnknownStatus     = errors.New("unknown status")
)

// ValidationError is a local input problem caught before any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// DeniedError carries the human readable reason an action was refused.
type DeniedError struct {
	Action Action
	Reason string
}

func Deny(action Action, format string, args ...any) *DeniedError {
	return &DeniedError{Action: action, Reason: fmt.Sprintf(format, args...)}
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrPermissionDenied, e.Action, e.Reason)
}

func (e *DeniedError) Unwrap() error { return ErrPermissionDenied }

// InsufficientStockError reports how many units are available so callers can clamp.
type InsufficientStockError struct {
	ProductID int64
	Requested int64
	Available int64
	// Remote is set when the persistence service rejected the mutation.
	Remote bool
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: product %d: requested %d, available %d",
		ErrInsufficientStock, e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// IsRetryable reports errors that go away after a re-fetch and a new attempt.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrStaleEntity) {
		return true
	}

	var stockErr *InsufficientStockError
	if errors.As(err, &stockErr) {
		return stockErr.Remote
	}

	return false
}
