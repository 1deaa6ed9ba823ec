package graphqlapi

import (
	"errors"

	"atrium.org/internal/auth"
	"atrium.org/internal/platform"
)

// GraphQL error codes surfaced in the extensions block.
const (
	codeUnauthenticated = "UNAUTHENTICATED"
	codeForbidden       = "FORBIDDEN"
	codeNotFound        = "NOT_FOUND"
	codeConflict        = "CONFLICT"
	codeBadInput        = "BAD_USER_INPUT"
	codeInternal        = "INTERNAL"
)

// apiError is the error shape resolvers return. The graphql engine keeps
// the value intact through formatting, so Extensions lands in the response.
type apiError struct {
	code    string
	message string
}

func (e *apiError) Error() string { return e.message }

func (e *apiError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

// wrapError maps domain errors onto client-facing GraphQL errors. Messages
// stay generic for denials: a rejected caller learns the category, never
// which roles would have been accepted.
func wrapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, auth.ErrAuthenticationRequired):
		return &apiError{code: codeUnauthenticated, message: "authentication required"}
	case errors.Is(err, auth.ErrInsufficientRole), errors.Is(err, platform.ErrForbidden):
		return &apiError{code: codeForbidden, message: "forbidden"}
	case errors.Is(err, platform.ErrNotFound):
		return &apiError{code: codeNotFound, message: "not found"}
	case errors.Is(err, platform.ErrBookingOverlap):
		return &apiError{code: codeConflict, message: "room is already booked for this time range"}
	case errors.Is(err, platform.ErrAssetAssigned):
		return &apiError{code: codeConflict, message: "asset is already assigned"}
	case errors.Is(err, platform.ErrAlreadyCheckedIn):
		return &apiError{code: codeConflict, message: "already checked in today"}
	case errors.Is(err, platform.ErrAlreadyExists):
		return &apiError{code: codeConflict, message: "already exists"}
	case errors.Is(err, platform.ErrInvalidInput):
		return &apiError{code: codeBadInput, message: err.Error()}
	default:
		return &apiError{code: codeInternal, message: "internal error"}
	}
}
