package domain

import "errors"

// Common domain errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrStoreUnavailable = errors.New("document store is not configured")
	ErrUnknownSection   = errors.New("unknown content section")
)

// ErrMailNotConfigured is returned when the contact form has no SMTP relay.
var ErrMailNotConfigured = errors.New("email service is not configured")
