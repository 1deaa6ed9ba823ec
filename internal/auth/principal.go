package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Principal is the resolved identity attached to a request. It carries only
// fields that are safe to expose back to the client; server-side columns
// such as the password hash never reach it.
type Principal struct {
	ID    int64    `json:"id"`
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
}

// UserRecord is the subset of a stored user row the resolver consumes.
// Roles keeps the raw persisted shape (single label or list).
type UserRecord struct {
	ID    int64
	Email string
	Name  string
	Roles any
}

// UserSource looks up application users during principal resolution.
// Lookups match the email exactly (case-sensitive).
type UserSource interface {
	FindByEmail(ctx context.Context, email string) (*UserRecord, error)
}

// Identity maps verified claims onto an application principal.
type Identity struct {
	users UserSource
}

func NewIdentity(users UserSource) *Identity {
	return &Identity{users: users}
}

// ResolvePrincipal performs the single store lookup that turns decoded
// claims into a principal. A missing email claim or an unknown email yields
// a nil principal (anonymous), not an error; only a store failure is
// reported, and the caller must then fail the whole operation rather than
// proceed with a partially built context.
func (i *Identity) ResolvePrincipal(ctx context.Context, claims *Claims) (*Principal, error) {
	if claims == nil || strings.TrimSpace(claims.Email) == "" {
		return nil, nil
	}
	user, err := i.users.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve principal: %w", err)
	}
	return &Principal{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Roles: NormalizeRoles(user.Roles),
	}, nil
}
