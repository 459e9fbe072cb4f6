package domain

import "errors"

// ErrPostNotFound is returned when a post ID cannot be resolved by a repository.
var ErrPostNotFound = errors.New("post not found")

// ErrUnsupportedPlatform is returned when a cross-post platform name is unknown.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// ErrCrossPostingDisabled is returned when the cross-posting module is switched off.
var ErrCrossPostingDisabled = errors.New("cross posting is disabled")

// ErrTokenNotFound is returned when no OAuth token has been stored.
var ErrTokenNotFound = errors.New("token not found")

// ErrNilToken is returned when a nil OAuth token is passed to a token store.
var ErrNilToken = errors.New("token is nil")
