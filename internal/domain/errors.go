package domain

import "errors"

// Sentinel errors surfaced by services. Handlers map these onto HTTP
// responses; nothing here is fatal to the process.
var (
	ErrAuthRequired = errors.New("authentication required")
	ErrForbidden    = errors.New("access denied")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")

	// auth-specific
	ErrBadCreds = errors.New("invalid email or password")

	// order-specific
	ErrEmptySelection     = errors.New("no items selected for checkout")
	ErrVerificationFailed = errors.New("wrong code or order state")
)
