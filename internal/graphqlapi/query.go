package graphqlapi

import (
	"time"

	"github.com/graphql-go/graphql"

	"atrium.org/internal/auth"
)

func queryType(r *Resolver, t *typeSet) *graphql.Object {
	infoType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ServiceInfo",
		Fields: graphql.Fields{
			"name":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"version": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"time":    &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})

	rangeArgs := graphql.FieldConfigArgument{
		"from": &graphql.ArgumentConfig{Type: graphql.DateTime},
		"to":   &graphql.ArgumentConfig{Type: graphql.DateTime},
	}

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			// Public fields: reachable without a principal.
			"info": &graphql.Field{
				Type: graphql.NewNonNull(infoType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return map[string]interface{}{
						"name":    "atrium-api",
						"version": r.version,
						"time":    time.Now().UTC(),
					}, nil
				},
			},
			"rooms": &graphql.Field{
				Type: graphql.NewList(t.room),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					rooms, err := r.store.Rooms().List(p.Context)
					if err != nil {
						return nil, wrapError(err)
					}
					return rooms, nil
				},
			},

			// Fields for any signed-in principal.
			"viewer": &graphql.Field{
				Type: t.user,
				Resolve: guarded(auth.Authenticated, func(p graphql.ResolveParams) (interface{}, error) {
					principal, _ := auth.PrincipalFromContext(p.Context)
					return &principal, nil
				}),
			},
			"bookings": &graphql.Field{
				Type: graphql.NewList(t.booking),
				Args: rangeArgs,
				Resolve: guarded(auth.Authenticated, func(p graphql.ResolveParams) (interface{}, error) {
					bookings, err := r.store.Bookings().ListBetween(p.Context, timeArg(p, "from"), timeArg(p, "to"))
					if err != nil {
						return nil, wrapError(err)
					}
					return bookings, nil
				}),
			},
			"booking": &graphql.Field{
				Type: t.booking,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: guarded(auth.Authenticated, func(p graphql.ResolveParams) (interface{}, error) {
					b, err := r.store.Bookings().Find(p.Context, int64Arg(p, "id"))
					if err != nil {
						return nil, wrapError(err)
					}
					return b, nil
				}),
			},
			"assets": &graphql.Field{
				Type: graphql.NewList(t.asset),
				Resolve: guarded(auth.Authenticated, func(p graphql.ResolveParams) (interface{}, error) {
					assets, err := r.store.Assets().List(p.Context)
					if err != nil {
						return nil, wrapError(err)
					}
					return assets, nil
				}),
			},
			"supplies": &graphql.Field{
				Type: graphql.NewList(t.supply),
				Resolve: guarded(auth.Authenticated, func(p graphql.ResolveParams) (interface{}, error) {
					supplies, err := r.store.Supplies().List(p.Context)
					if err != nil {
						return nil, wrapError(err)
					}
					return supplies, nil
				}),
			},
			"projects": &graphql.Field{
				Type: graphql.NewList(t.project),
				Resolve: guarded(auth.Authenticated, func(p graphql.ResolveParams) (interface{}, error) {
					projects, err := r.store.Projects().List(p.Context)
					if err != nil {
						return nil, wrapError(err)
					}
					return projects, nil
				}),
			},
			"myAttendance": &graphql.Field{
				Type: graphql.NewList(t.attendance),
				Args: rangeArgs,
				Resolve: guarded(auth.Authenticated, func(p graphql.ResolveParams) (interface{}, error) {
					principal, _ := auth.PrincipalFromContext(p.Context)
					recs, err := r.store.Attendance().ListByUser(p.Context, principal.ID, timeArg(p, "from"), timeArg(p, "to"))
					if err != nil {
						return nil, wrapError(err)
					}
					return recs, nil
				}),
			},

			// Administration fields.
			"users": &graphql.Field{
				Type: graphql.NewList(t.user),
				Resolve: guarded(auth.RequireRoles(auth.RoleAdmin), func(p graphql.ResolveParams) (interface{}, error) {
					users, err := r.store.Users().List(p.Context)
					if err != nil {
						return nil, wrapError(err)
					}
					out := make([]*auth.Principal, 0, len(users))
					for _, u := range users {
						out = append(out, publicUser(u))
					}
					return out, nil
				}),
			},
			"user": &graphql.Field{
				Type: t.user,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: guarded(auth.RequireRoles(auth.RoleAdmin), func(p graphql.ResolveParams) (interface{}, error) {
					u, err := r.store.Users().Find(p.Context, int64Arg(p, "id"))
					if err != nil {
						return nil, wrapError(err)
					}
					return publicUser(u), nil
				}),
			},
			"attendance": &graphql.Field{
				Type: graphql.NewList(t.attendance),
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.Int},
					"from":   &graphql.ArgumentConfig{Type: graphql.DateTime},
					"to":     &graphql.ArgumentConfig{Type: graphql.DateTime},
				},
				Resolve: guarded(auth.RequireRoles(auth.RoleAdmin), func(p graphql.ResolveParams) (interface{}, error) {
					from, to := timeArg(p, "from"), timeArg(p, "to")
					if userID := int64Arg(p, "userId"); userID != 0 {
						recs, err := r.store.Attendance().ListByUser(p.Context, userID, from, to)
						if err != nil {
							return nil, wrapError(err)
						}
						return recs, nil
					}
					recs, err := r.store.Attendance().List(p.Context, from, to)
					if err != nil {
						return nil, wrapError(err)
					}
					return recs, nil
				}),
			},
		},
	})
}
