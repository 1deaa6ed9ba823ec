package auth

import (
	"reflect"
	"testing"
)

func TestNormalizeRolesShapes(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want []string
	}{
		{"nil", nil, nil},
		{"scalar", "ADMIN", []string{"ADMIN"}},
		{"slice", []string{"ADMIN", "USER"}, []string{"ADMIN", "USER"}},
		{"decoded json", []any{"ADMIN", "USER"}, []string{"ADMIN", "USER"}},
		{"dedupe and trim", []string{" ADMIN ", "ADMIN", "", "USER"}, []string{"ADMIN", "USER"}},
		{"mixed json garbage", []any{"ADMIN", 42, "USER"}, []string{"ADMIN", "USER"}},
		{"unsupported shape", 42, nil},
	}
	for _, tc := range cases {
		if got := NormalizeRoles(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%s: NormalizeRoles(%v)=%v, want %v", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestNormalizeRolesPreservesCase(t *testing.T) {
	got := NormalizeRoles([]string{"Admin", "admin", "ADMIN"})
	if len(got) != 3 {
		t.Fatalf("labels are opaque and case-sensitive, got %v", got)
	}
}

func TestHasRole(t *testing.T) {
	cases := []struct {
		name     string
		required any
		held     any
		want     bool
	}{
		{"list vs scalar", []string{"ADMIN"}, "ADMIN", true},
		{"scalar vs list", "ADMIN", []string{"ADMIN", "USER"}, true},
		{"list vs list overlap", []string{"ADMIN", "MANAGER"}, []string{"USER", "MANAGER"}, true},
		{"no overlap", []string{"ADMIN"}, "USER", false},
		{"empty held", []string{"ADMIN"}, []string{}, false},
		{"empty required", []string{}, []string{"ADMIN"}, false},
		{"both nil", nil, nil, false},
	}
	for _, tc := range cases {
		if got := HasRole(tc.required, tc.held); got != tc.want {
			t.Fatalf("%s: HasRole(%v, %v)=%v, want %v", tc.name, tc.required, tc.held, got, tc.want)
		}
	}
}
