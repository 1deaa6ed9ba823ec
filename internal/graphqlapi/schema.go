package graphqlapi

import (
	"time"

	"github.com/graphql-go/graphql"

	"atrium.org/internal/platform"
	"atrium.org/internal/stream"
)

// Resolver carries the dependencies root and field resolvers need.
type Resolver struct {
	store   platform.Store
	service *platform.Service
	events  *stream.Stream
	version string
}

func NewResolver(store platform.Store, service *platform.Service, events *stream.Stream, version string) *Resolver {
	return &Resolver{store: store, service: service, events: events, version: version}
}

// NewSchema assembles the executable schema. Object types are built per
// schema instance; cyclic references (booking -> user) are closed with
// AddFieldConfig after construction.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	types := newTypeSet(r)
	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType(r, types),
		Mutation: mutationType(r, types),
	})
}

// --- argument helpers ---

func int64Arg(p graphql.ResolveParams, name string) int64 {
	v, _ := p.Args[name].(int)
	return int64(v)
}

func stringArg(p graphql.ResolveParams, name string) string {
	v, _ := p.Args[name].(string)
	return v
}

func intArg(p graphql.ResolveParams, name string) int {
	v, _ := p.Args[name].(int)
	return v
}

// timeArg returns the coerced DateTime argument, or the zero time when the
// argument was omitted.
func timeArg(p graphql.ResolveParams, name string) time.Time {
	if v, ok := p.Args[name].(time.Time); ok {
		return v
	}
	return time.Time{}
}

func stringListArg(p graphql.ResolveParams, name string) []string {
	raw, ok := p.Args[name].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
