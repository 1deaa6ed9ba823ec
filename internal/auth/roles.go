package auth

import "strings"

// Role labels are opaque strings; only ADMIN carries elevated privileges.
const (
	RoleAdmin      = "ADMIN"
	RoleManager    = "MANAGER"
	RoleFacilities = "FACILITIES"
)

// NormalizeRoles canonicalizes a stored role shape into a slice of labels.
// User rows and token claims persisted either a single label or a list of
// labels; both are accepted. Labels are trimmed, deduplicated and
// case-preserved. Anything unrecognisable yields nil.
func NormalizeRoles(v any) []string {
	var raw []string
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		raw = []string{t}
	case []string:
		raw = t
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	default:
		return nil
	}

	seen := make(map[string]struct{}, len(raw))
	var out []string
	for _, role := range raw {
		role = strings.TrimSpace(role)
		if role == "" {
			continue
		}
		if _, ok := seen[role]; ok {
			continue
		}
		seen[role] = struct{}{}
		out = append(out, role)
	}
	return out
}

// HasRole reports whether the held roles intersect the required ones.
// Either argument may be a single label or a collection of labels.
// Empty or absent inputs never match.
func HasRole(required, held any) bool {
	req := NormalizeRoles(required)
	have := NormalizeRoles(held)
	if len(req) == 0 || len(have) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(have))
	for _, role := range have {
		set[role] = struct{}{}
	}
	for _, role := range req {
		if _, ok := set[role]; ok {
			return true
		}
	}
	return false
}
