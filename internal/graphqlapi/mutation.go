package graphqlapi

import (
	"context"

	"github.com/graphql-go/graphql"

	"atrium.org/internal/audit"
	"atrium.org/internal/auth"
	"atrium.org/internal/obs"
)

// logAudit records a mutation's audit event. The mutation itself has
// already succeeded, so a failing audit write must not fail the response,
// but it has to be visible in the logs.
func logAudit(ctx context.Context, event string, fields map[string]any) {
	if err := audit.LogEvent(ctx, event, fields); err != nil {
		obs.LogJSON(map[string]any{
			"level": "error",
			"msg":   "audit_write_failed",
			"event": event,
			"error": err.Error(),
		})
	}
}

func mutationType(r *Resolver, t *typeSet) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createBooking": &graphql.Field{
				Type: t.booking,
				Args: graphql.FieldConfigArgument{
					"roomId":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"startsAt": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.DateTime)},
					"endsAt":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.DateTime)},
					"notes":    &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: guarded(auth.Authenticated, func(p graphql.ResolveParams) (interface{}, error) {
					principal, _ := auth.PrincipalFromContext(p.Context)
					b, err := r.service.CreateBooking(p.Context, principal.ID, int64Arg(p, "roomId"),
						timeArg(p, "startsAt"), timeArg(p, "endsAt"), stringArg(p, "notes"))
					if err != nil {
						return nil, wrapError(err)
					}
					logAudit(p.Context, "booking.create", map[string]any{
						"booking_id": b.ID, "room_id": b.RoomID,
					})
					return b, nil
				}),
			},
			"cancelBooking": &graphql.Field{
				Type: t.booking,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: guarded(auth.Authenticated, func(p graphql.ResolveParams) (interface{}, error) {
					principal, _ := auth.PrincipalFromContext(p.Context)
					isAdmin := auth.HasRole([]string{auth.RoleAdmin}, principal.Roles)
					b, err := r.service.CancelBooking(p.Context, int64Arg(p, "id"), principal.ID, isAdmin)
					if err != nil {
						return nil, wrapError(err)
					}
					logAudit(p.Context, "booking.cancel", map[string]any{
						"booking_id": b.ID,
					})
					return b, nil
				}),
			},
			"checkIn": &graphql.Field{
				Type: t.attendance,
				Args: graphql.FieldConfigArgument{
					"status": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: guarded(auth.Authenticated, func(p graphql.ResolveParams) (interface{}, error) {
					principal, _ := auth.PrincipalFromContext(p.Context)
					rec, err := r.service.CheckIn(p.Context, principal.ID, stringArg(p, "status"))
					if err != nil {
						return nil, wrapError(err)
					}
					logAudit(p.Context, "attendance.checkin", map[string]any{
						"day": rec.Day, "status": rec.Status,
					})
					return rec, nil
				}),
			},
			"assignAsset": &graphql.Field{
				Type: t.asset,
				Args: graphql.FieldConfigArgument{
					"assetId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"userId":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: guarded(auth.RequireRoles(auth.RoleAdmin), func(p graphql.ResolveParams) (interface{}, error) {
					a, err := r.service.AssignAsset(p.Context, int64Arg(p, "assetId"), int64Arg(p, "userId"))
					if err != nil {
						return nil, wrapError(err)
					}
					logAudit(p.Context, "asset.assign", map[string]any{
						"asset_id": a.ID, "user_id": int64Arg(p, "userId"),
					})
					return a, nil
				}),
			},
			"releaseAsset": &graphql.Field{
				Type: t.asset,
				Args: graphql.FieldConfigArgument{
					"assetId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: guarded(auth.RequireRoles(auth.RoleAdmin), func(p graphql.ResolveParams) (interface{}, error) {
					a, err := r.service.ReleaseAsset(p.Context, int64Arg(p, "assetId"))
					if err != nil {
						return nil, wrapError(err)
					}
					logAudit(p.Context, "asset.release", map[string]any{
						"asset_id": a.ID,
					})
					return a, nil
				}),
			},
			"adjustSupply": &graphql.Field{
				Type: t.supply,
				Args: graphql.FieldConfigArgument{
					"supplyId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"delta":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: guarded(auth.RequireRoles(auth.RoleAdmin, auth.RoleFacilities), func(p graphql.ResolveParams) (interface{}, error) {
					s, err := r.service.AdjustSupply(p.Context, int64Arg(p, "supplyId"), intArg(p, "delta"))
					if err != nil {
						return nil, wrapError(err)
					}
					logAudit(p.Context, "supply.adjust", map[string]any{
						"supply_id": s.ID, "delta": intArg(p, "delta"), "quantity": s.Quantity,
					})
					return s, nil
				}),
			},
			"createProject": &graphql.Field{
				Type: t.project,
				Args: graphql.FieldConfigArgument{
					"name": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: guarded(auth.RequireRoles(auth.RoleAdmin, auth.RoleManager), func(p graphql.ResolveParams) (interface{}, error) {
					principal, _ := auth.PrincipalFromContext(p.Context)
					proj, err := r.service.CreateProject(p.Context, principal.ID, stringArg(p, "name"))
					if err != nil {
						return nil, wrapError(err)
					}
					logAudit(p.Context, "project.create", map[string]any{
						"project_id": proj.ID, "name": proj.Name,
					})
					return proj, nil
				}),
			},
			"updateProjectStatus": &graphql.Field{
				Type: t.project,
				Args: graphql.FieldConfigArgument{
					"projectId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"status":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: guarded(auth.RequireRoles(auth.RoleAdmin, auth.RoleManager), func(p graphql.ResolveParams) (interface{}, error) {
					proj, err := r.service.UpdateProjectStatus(p.Context, int64Arg(p, "projectId"), stringArg(p, "status"))
					if err != nil {
						return nil, wrapError(err)
					}
					logAudit(p.Context, "project.status", map[string]any{
						"project_id": proj.ID, "status": proj.Status,
					})
					return proj, nil
				}),
			},
			"createUser": &graphql.Field{
				Type: t.user,
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"name":     &graphql.ArgumentConfig{Type: graphql.String},
					"roles":    &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: guarded(auth.RequireRoles(auth.RoleAdmin), func(p graphql.ResolveParams) (interface{}, error) {
					u, err := r.service.CreateUser(p.Context, stringArg(p, "email"), stringArg(p, "name"),
						stringListArg(p, "roles"), stringArg(p, "password"))
					if err != nil {
						return nil, wrapError(err)
					}
					logAudit(p.Context, "user.create", map[string]any{
						"user_id": u.ID, "email": u.Email,
					})
					return publicUser(u), nil
				}),
			},
		},
	})
}
