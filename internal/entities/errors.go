package entities

import (
	"errors"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidOrder        = errors.New("invalid order")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidTransition   = errors.New("invalid transition")
	ErrConflict            = errors.New("concurrent modification")
	ErrStorageUnavailable  = errors.New("storage unavailable")
	ErrInvariantViolation  = errors.New("order/escrow invariant violated")
	ErrDisputeNotFromBuyer = errors.New("dispute was not opened by the order buyer")
)

// RejectionError is a business rejection carrying a user-facing message.
type RejectionError struct {
	Reason  error
	Message string
}

func (e *RejectionError) Error() string {
	if e.Message == "" {
		return e.Reason.Error()
	}
	return e.Reason.Error() + ": " + e.Message
}

func (e *RejectionError) Unwrap() error {
	return e.Reason
}

func Reject(reason error, message string) error {
	return &RejectionError{Reason: reason, Message: message}
}

// UserMessage returns the message meant for end users, if err carries one.
func UserMessage(err error) string {
	var re *RejectionError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return ""
}
