package utils

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrPlanNotFound       = errors.New("plan not found")
	ErrPackageNotFound    = errors.New("credit package not found")
	ErrUnknownAction      = errors.New("unknown action")
	ErrInvalidAmount      = errors.New("amount must be a positive integer")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrDatabaseError      = errors.New("database error")
)

// InsufficientCreditsError reports a failed sufficiency check so callers can
// render the shortfall and offer a purchase path. No state is mutated when it
// is returned.
type InsufficientCreditsError struct {
	Current  int
	Required int
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits: have %d, need %d", e.Current, e.Required)
}
