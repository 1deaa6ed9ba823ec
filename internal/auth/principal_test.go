package auth

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type fakeUserSource struct {
	records map[string]*UserRecord
	err     error
	calls   int
}

func (f *fakeUserSource) FindByEmail(_ context.Context, email string) (*UserRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	rec, ok := f.records[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return rec, nil
}

func TestResolvePrincipalAnonymousClaims(t *testing.T) {
	source := &fakeUserSource{}
	identity := NewIdentity(source)

	p, err := identity.ResolvePrincipal(context.Background(), nil)
	if err != nil || p != nil {
		t.Fatalf("nil claims must resolve anonymous, got %+v, %v", p, err)
	}
	p, err = identity.ResolvePrincipal(context.Background(), &Claims{Email: "  "})
	if err != nil || p != nil {
		t.Fatalf("empty email claim must resolve anonymous, got %+v, %v", p, err)
	}
	if source.calls != 0 {
		t.Fatalf("no store lookup expected without an email claim, got %d", source.calls)
	}
}

func TestResolvePrincipalUnknownUser(t *testing.T) {
	identity := NewIdentity(&fakeUserSource{records: map[string]*UserRecord{}})

	p, err := identity.ResolvePrincipal(context.Background(), &Claims{Email: "ghost@example.com"})
	if err != nil {
		t.Fatalf("unknown user is not an error: %v", err)
	}
	if p != nil {
		t.Fatalf("unknown user must resolve anonymous, got %+v", p)
	}
}

func TestResolvePrincipalFound(t *testing.T) {
	identity := NewIdentity(&fakeUserSource{records: map[string]*UserRecord{
		"kim@example.com": {ID: 12, Email: "kim@example.com", Name: "Kim Lee", Roles: "ADMIN"},
	}})

	p, err := identity.ResolvePrincipal(context.Background(), &Claims{Email: "kim@example.com"})
	if err != nil {
		t.Fatalf("ResolvePrincipal: %v", err)
	}
	want := &Principal{ID: 12, Email: "kim@example.com", Name: "Kim Lee", Roles: []string{"ADMIN"}}
	if !reflect.DeepEqual(p, want) {
		t.Fatalf("principal mismatch: got %+v, want %+v", p, want)
	}
}

func TestResolvePrincipalStoreFailure(t *testing.T) {
	boom := errors.New("connection refused")
	identity := NewIdentity(&fakeUserSource{err: boom})

	p, err := identity.ResolvePrincipal(context.Background(), &Claims{Email: "kim@example.com"})
	if p != nil {
		t.Fatalf("no principal expected on store failure, got %+v", p)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("store failure must propagate, got %v", err)
	}
}
