package model

import "errors"

// Sentinel errors shared across packages.
var (
	// ErrNoSession is returned when an operation requires a logged-in user
	// but no local session exists.
	ErrNoSession = errors.New("not logged in")
	// ErrNoLoginCode is returned when the host platform fails to produce a
	// one-time login code.
	ErrNoLoginCode = errors.New("failed to obtain login credential")
	// ErrConsentDenied is returned when the user declines the profile
	// consent prompt.
	ErrConsentDenied = errors.New("user cancelled authorization")
)
