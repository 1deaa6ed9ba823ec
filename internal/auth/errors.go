package auth

import "errors"

var (
	// ErrInvalidCredential indicates a malformed or unverifiable bearer token.
	// Callers building a request context treat it as "anonymous", not fatal.
	ErrInvalidCredential = errors.New("auth: invalid credential")

	// ErrAuthenticationRequired is returned by a guard that observed no principal.
	ErrAuthenticationRequired = errors.New("auth: authentication required")

	// ErrInsufficientRole is returned by a guard when the principal holds none
	// of the allowed roles.
	ErrInsufficientRole = errors.New("auth: insufficient role")

	// ErrUserNotFound is reported by a UserSource when no row matches the
	// looked-up email.
	ErrUserNotFound = errors.New("auth: user not found")
)
