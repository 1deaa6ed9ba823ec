package graphqlapi

import (
	"github.com/graphql-go/graphql"

	"atrium.org/internal/auth"
	"atrium.org/internal/platform"
)

// typeSet holds the object types of one schema instance.
type typeSet struct {
	user       *graphql.Object
	room       *graphql.Object
	booking    *graphql.Object
	asset      *graphql.Object
	supply     *graphql.Object
	project    *graphql.Object
	attendance *graphql.Object
}

func newTypeSet(r *Resolver) *typeSet {
	t := &typeSet{}

	t.user = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"email": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"name":  &graphql.Field{Type: graphql.String},
			"roles": &graphql.Field{Type: graphql.NewList(graphql.String)},
		},
	})

	t.room = graphql.NewObject(graphql.ObjectConfig{
		Name: "Room",
		Fields: graphql.Fields{
			"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"name":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"capacity": &graphql.Field{Type: graphql.Int},
			"location": &graphql.Field{Type: graphql.String},
		},
	})

	t.booking = graphql.NewObject(graphql.ObjectConfig{
		Name: "Booking",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"startsAt":  &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"endsAt":    &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"notes":     &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
			"room": &graphql.Field{
				Type: t.room,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					b, ok := p.Source.(*platform.Booking)
					if !ok {
						return nil, nil
					}
					room, err := r.store.Rooms().Find(p.Context, b.RoomID)
					if err != nil {
						return nil, wrapError(err)
					}
					return room, nil
				},
			},
		},
	})
	// Who holds a booking is visible to signed-in staff, not to anonymous
	// callers that may see the public schedule.
	t.booking.AddFieldConfig("user", &graphql.Field{
		Type: t.user,
		Resolve: guarded(auth.Authenticated, func(p graphql.ResolveParams) (interface{}, error) {
			b, ok := p.Source.(*platform.Booking)
			if !ok {
				return nil, nil
			}
			u, err := r.store.Users().Find(p.Context, b.UserID)
			if err != nil {
				return nil, wrapError(err)
			}
			return publicUser(u), nil
		}),
	})

	t.asset = graphql.NewObject(graphql.ObjectConfig{
		Name: "Asset",
		Fields: graphql.Fields{
			"id":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"tag":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"name": &graphql.Field{Type: graphql.String},
			"assigned": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					a, ok := p.Source.(*platform.Asset)
					if !ok {
						return false, nil
					}
					return a.AssignedToID != nil, nil
				},
			},
		},
	})
	t.asset.AddFieldConfig("assignedTo", &graphql.Field{
		Type: t.user,
		Resolve: guarded(auth.RequireRoles(auth.RoleAdmin), func(p graphql.ResolveParams) (interface{}, error) {
			a, ok := p.Source.(*platform.Asset)
			if !ok || a.AssignedToID == nil {
				return nil, nil
			}
			u, err := r.store.Users().Find(p.Context, *a.AssignedToID)
			if err != nil {
				return nil, wrapError(err)
			}
			return publicUser(u), nil
		}),
	})

	t.supply = graphql.NewObject(graphql.ObjectConfig{
		Name: "Supply",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"name":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"quantity":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"reorderLevel": &graphql.Field{Type: graphql.Int},
			"belowReorder": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					s, ok := p.Source.(*platform.Supply)
					if !ok {
						return false, nil
					}
					return s.Quantity < s.ReorderLevel, nil
				},
			},
		},
	})

	t.project = graphql.NewObject(graphql.ObjectConfig{
		Name: "Project",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"status":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
		},
	})
	t.project.AddFieldConfig("owner", &graphql.Field{
		Type: t.user,
		Resolve: guarded(auth.Authenticated, func(p graphql.ResolveParams) (interface{}, error) {
			proj, ok := p.Source.(*platform.Project)
			if !ok {
				return nil, nil
			}
			u, err := r.store.Users().Find(p.Context, proj.OwnerID)
			if err != nil {
				return nil, wrapError(err)
			}
			return publicUser(u), nil
		}),
	})

	t.attendance = graphql.NewObject(graphql.ObjectConfig{
		Name: "AttendanceRecord",
		Fields: graphql.Fields{
			"id":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"userId": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"day":    &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"status": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})
	t.attendance.AddFieldConfig("user", &graphql.Field{
		Type: t.user,
		Resolve: guarded(auth.Authenticated, func(p graphql.ResolveParams) (interface{}, error) {
			rec, ok := p.Source.(*platform.AttendanceRecord)
			if !ok {
				return nil, nil
			}
			u, err := r.store.Users().Find(p.Context, rec.UserID)
			if err != nil {
				return nil, wrapError(err)
			}
			return publicUser(u), nil
		}),
	})

	return t
}

// publicUser trims a stored user row to its API surface. Roles come out
// normalized so the client always sees a list.
func publicUser(u *platform.User) *auth.Principal {
	if u == nil {
		return nil
	}
	return &auth.Principal{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Roles: auth.NormalizeRoles(u.Roles),
	}
}
