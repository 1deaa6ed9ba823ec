package obs

import "testing"

func TestCanonicalPath(t *testing.T) {
	cases := map[string]string{
		"":                    "/",
		"/graphql":            "/graphql",
		"/graphql?query=%7B%7D": "/graphql",
		"/events":             "/events",
		"/metrics":            "/metrics",
		"/healthz":            "/healthz",
		"/v1/info":            "/v1/info",
		"/favicon.ico":        "/other",
		"/graphql/extra":      "/other",
	}
	for input, expected := range cases {
		if got := CanonicalPath(input); got != expected {
			t.Fatalf("CanonicalPath(%q)=%q, want %q", input, got, expected)
		}
	}
}
