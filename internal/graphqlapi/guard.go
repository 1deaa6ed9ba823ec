package graphqlapi

import (
	"errors"

	"github.com/graphql-go/graphql"

	"atrium.org/internal/auth"
	"atrium.org/internal/obs"
)

// guarded wraps a resolver with an access requirement. The check runs
// before the inner resolver, so a denied caller triggers no store reads or
// writes. Each guarded field is evaluated independently: when a nested
// field is denied, the engine nulls that field and records the error while
// sibling fields still resolve.
func guarded(req auth.Requirement, resolve graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		if err := auth.CheckAccess(p.Context, req); err != nil {
			if errors.Is(err, auth.ErrAuthenticationRequired) {
				obs.ObserveAuthCheck("unauthenticated")
			} else {
				obs.ObserveAuthCheck("forbidden")
			}
			return nil, wrapError(err)
		}
		obs.ObserveAuthCheck("allowed")
		return resolve(p)
	}
}
