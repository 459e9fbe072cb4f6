package gsc

import "errors"

var (
	// ErrNotConnected is returned when no usable token is stored.
	ErrNotConnected = errors.New("search console is not connected")

	// ErrInvalidState is returned when the callback state is unknown, expired or reused.
	ErrInvalidState = errors.New("invalid oauth state")

	// ErrMissingCode is returned when the callback carries no authorization code.
	ErrMissingCode = errors.New("missing authorization code")

	// ErrProvider wraps errors reported by Google during authorization.
	ErrProvider = errors.New("oauth provider error")

	// ErrNoSite is returned when no Search Console property is selected.
	ErrNoSite = errors.New("no search console property selected")

	// ErrNotConfigured is returned when client credentials are missing.
	ErrNotConfigured = errors.New("search console client credentials are not configured")
)
