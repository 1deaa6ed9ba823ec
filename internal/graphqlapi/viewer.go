package graphqlapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"atrium.org/internal/auth"
	"atrium.org/internal/platform"
)

const (
	authHeader = "Authorization"
	bearer     = "Bearer "
)

// credentialFromRequest extracts the advertised credential type and its
// payload. The Authorization header wins; a cookie of the same name is the
// fallback for the SSE endpoint, where browsers cannot set headers.
func credentialFromRequest(r *http.Request) (credType, raw string, ok bool) {
	header := strings.TrimSpace(r.Header.Get(authHeader))
	if header == "" {
		if c, err := r.Cookie(authHeader); err == nil {
			header = strings.TrimSpace(c.Value)
		}
	}
	if header == "" {
		return "", "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return header, "", true
	}
	return parts[0], strings.TrimSpace(parts[1]), true
}

// withViewer builds the per-request identity context exactly once, before
// any resolver runs. A missing or unverifiable credential degrades to an
// anonymous context so public fields stay reachable; only a user-store
// failure aborts the request, since proceeding would misclassify a real
// user as anonymous.
func (a *API) withViewer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.verifier == nil {
			next.ServeHTTP(w, r)
			return
		}
		credType, raw, ok := credentialFromRequest(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		claims, err := a.verifier.Decode(credType, raw)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		principal, err := a.identity.ResolvePrincipal(r.Context(), claims)
		if err != nil {
			writeError(w, r, http.StatusServiceUnavailable, "identity lookup failed")
			return
		}
		if principal == nil {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), *principal)))
	})
}

// userSource adapts the platform user store to principal resolution.
type userSource struct {
	users platform.UserStore
}

func (s userSource) FindByEmail(ctx context.Context, email string) (*auth.UserRecord, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, platform.ErrNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}
	return &auth.UserRecord{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Roles: u.Roles,
	}, nil
}
