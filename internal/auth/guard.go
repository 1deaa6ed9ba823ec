package auth

import "context"

// Requirement declares the access control attached to an operation or field.
// An empty AllowedRoles means any authenticated principal suffices.
type Requirement struct {
	AllowedRoles []string
}

// Authenticated is the requirement satisfied by any signed-in principal.
var Authenticated = Requirement{}

// RequireRoles builds a requirement demanding at least one of the given roles.
func RequireRoles(roles ...string) Requirement {
	return Requirement{AllowedRoles: NormalizeRoles(roles)}
}

// CheckAccess evaluates a requirement against the request context. Guarded
// resolvers call it synchronously before any store access, so a rejected
// caller causes no side effect. The context is never mutated.
func CheckAccess(ctx context.Context, req Requirement) error {
	principal, ok := PrincipalFromContext(ctx)
	if !ok {
		return ErrAuthenticationRequired
	}
	if len(req.AllowedRoles) == 0 {
		return nil
	}
	if !HasRole(req.AllowedRoles, principal.Roles) {
		return ErrInsufficientRole
	}
	return nil
}
