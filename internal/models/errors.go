package models

import (
	"errors"
	"fmt"
)

// Common errors used throughout the application
var (
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrClubNotFound        = errors.New("club not found")
	ErrPromotionNotFound   = errors.New("promotion not found")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrNotImplemented      = errors.New("feature not implemented")
	ErrInvalidInput        = errors.New("invalid input")
	ErrNoActiveSession     = errors.New("no active session")
	ErrSessionExpired      = errors.New("session expired")
	ErrRemoteFailed        = errors.New("remote operation failed")
	ErrInvalidCodeFormat   = errors.New("code must be 4 alphanumeric characters")
	ErrInvalidInviteCode   = errors.New("invalid invitation code")
	ErrInviteCodeExpired   = errors.New("invitation code has expired")
	ErrInviteCodeExhausted = errors.New("invitation code has been used too many times")
	ErrInviteCodeExists    = errors.New("invitation code already exists")
)

// RemoteError wraps a failure reported by the booking store
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrRemoteFailed, e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrRemoteFailed) match any RemoteError
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemoteFailed
}
