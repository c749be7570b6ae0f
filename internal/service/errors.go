package service

import "errors"

var (
	// Profile persistence failures. All recoverable by re-sending the last
	// answer; they only differ in the message shown to the user.
	ErrProfileInvalid   = errors.New("profile rejected as invalid")
	ErrStoreUnavailable = errors.New("profile store unavailable")
	ErrStoreInternal    = errors.New("profile store internal error")
	ErrStoreUnreachable = errors.New("profile store unreachable")

	ErrProfileNotFound = errors.New("profile not found")
	ErrSessionNotFound = errors.New("session not found")
)
