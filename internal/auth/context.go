package auth

import "context"

type principalContextKey struct{}

// WithPrincipal attaches the resolved principal to the request context.
// The context is built exactly once per inbound operation, before any
// resolver runs, and is never mutated afterwards.
func WithPrincipal(ctx context.Context, principal Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, &principal)
}

// PrincipalFromContext extracts the principal attached to the request
// context. The second return is false for anonymous requests.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	if ctx == nil {
		return Principal{}, false
	}
	v, ok := ctx.Value(principalContextKey{}).(*Principal)
	if !ok || v == nil {
		return Principal{}, false
	}
	return *v, true
}
