package auth

import (
	"context"
	"errors"
	"testing"
)

func TestCheckAccessAnonymous(t *testing.T) {
	ctx := context.Background()

	if err := CheckAccess(ctx, Authenticated); !errors.Is(err, ErrAuthenticationRequired) {
		t.Fatalf("expected ErrAuthenticationRequired, got %v", err)
	}
	// An empty-roles requirement still demands a principal.
	if err := CheckAccess(ctx, RequireRoles()); !errors.Is(err, ErrAuthenticationRequired) {
		t.Fatalf("expected ErrAuthenticationRequired, got %v", err)
	}
	if err := CheckAccess(ctx, RequireRoles(RoleAdmin)); !errors.Is(err, ErrAuthenticationRequired) {
		t.Fatalf("expected ErrAuthenticationRequired for role requirement, got %v", err)
	}
}

func TestCheckAccessAuthenticated(t *testing.T) {
	principal := Principal{ID: 7, Email: "kim@example.com", Name: "Kim", Roles: []string{"USER"}}
	ctx := WithPrincipal(context.Background(), principal)

	if err := CheckAccess(ctx, Authenticated); err != nil {
		t.Fatalf("authenticated requirement should pass: %v", err)
	}
	if err := CheckAccess(ctx, RequireRoles(RoleAdmin)); !errors.Is(err, ErrInsufficientRole) {
		t.Fatalf("expected ErrInsufficientRole, got %v", err)
	}
	if err := CheckAccess(ctx, RequireRoles(RoleAdmin, "USER")); err != nil {
		t.Fatalf("overlapping roles should pass: %v", err)
	}
}

func TestCheckAccessDoesNotMutateContext(t *testing.T) {
	principal := Principal{ID: 1, Email: "a@example.com", Roles: []string{RoleAdmin}}
	ctx := WithPrincipal(context.Background(), principal)

	_ = CheckAccess(ctx, RequireRoles(RoleManager))
	_ = CheckAccess(ctx, Authenticated)

	got, ok := PrincipalFromContext(ctx)
	if !ok || got.ID != 1 || got.Email != "a@example.com" {
		t.Fatalf("principal changed after guard evaluation: %+v ok=%v", got, ok)
	}
}

func TestPrincipalFromContextIsolation(t *testing.T) {
	base := context.Background()
	ctxA := WithPrincipal(base, Principal{ID: 1, Email: "a@example.com"})
	ctxB := WithPrincipal(base, Principal{ID: 2, Email: "b@example.com"})

	a, _ := PrincipalFromContext(ctxA)
	b, _ := PrincipalFromContext(ctxB)
	if a.ID != 1 || b.ID != 2 {
		t.Fatalf("contexts leaked principals: a=%+v b=%+v", a, b)
	}
	if _, ok := PrincipalFromContext(base); ok {
		t.Fatal("base context must stay anonymous")
	}
}
