// Package common defines shared constants and sentinel errors used across
// the Humi pipeline layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Validation errors on log entry drafts.
	ErrMissingName  = errors.New("cigar name is required")
	ErrMissingImage = errors.New("no captured image available")
	ErrBadRating    = errors.New("rating must be between 1 and 5")

	// ErrCorruptQueue signals unreadable local queue storage. This is the one
	// condition the persistence layer refuses to paper over.
	ErrCorruptQueue = errors.New("corrupt pending-sync queue storage")
)
