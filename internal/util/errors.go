// internal/util/errors.go
package util

import (
	"errors"
	"fmt"
)

// Common application-specific errors.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input provided")
	ErrConflict       = errors.New("conflict")
	ErrInvalidState   = errors.New("invalid state")
	ErrDuplicateEntry = fmt.Errorf("%w: duplicate entry", ErrConflict) // Unique constraint violations
	ErrUnauthorized   = errors.New("unauthorized")

	// ErrTransientStore marks store contention or timeouts; the client may retry.
	ErrTransientStore = errors.New("transient store failure")

	// ErrLedgerIntegrity means a user's running total no longer matches the sum
	// of their ledger deltas. It needs out-of-band repair.
	ErrLedgerIntegrity = errors.New("ledger integrity violation")
)

// Achievement claim errors.
var (
	ErrAchievementNotFound = fmt.Errorf("%w: achievement does not exist", ErrNotFound)
	ErrAlreadyClaimed      = fmt.Errorf("%w: already claimed", ErrConflict)
	ErrAlreadyClaimedToday = fmt.Errorf("%w: already claimed today", ErrConflict)
	ErrRequirementNotMet   = fmt.Errorf("%w: requirement not met", ErrInvalidState)
)

// IsError reports whether any error in err's chain matches target.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}

// reasons holds the client-facing message of each specific error.
var reasons = map[error]string{
	ErrAchievementNotFound: "achievement does not exist",
	ErrAlreadyClaimed:      "already claimed",
	ErrAlreadyClaimedToday: "already claimed today",
	ErrRequirementNotMet:   "requirement not met",
	ErrDuplicateEntry:      "duplicate entry",
}

// Reason returns the client-facing message for err, falling back to err.Error().
func Reason(err error) string {
	for known, msg := range reasons {
		if errors.Is(err, known) {
			return msg
		}
	}
	return err.Error()
}
