package gqlclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestQueryDecodesData(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/graphql" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("missing bearer token, got %q", got)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"rooms":[{"id":1,"name":"Aurora"}]}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("tok"))

	var out struct {
		Rooms []struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"rooms"`
	}
	if err := c.Query(context.Background(), `{ rooms { id name } }`, nil, &out); err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(out.Rooms) != 1 || out.Rooms[0].Name != "Aurora" {
		t.Fatalf("unexpected data: %+v", out)
	}
}

func TestDoReturnsPartialResultWithErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data":{"assets":[{"tag":"LT-100","assignedTo":null}]},
			"errors":[{"message":"forbidden","path":["assets",0,"assignedTo"],"extensions":{"code":"FORBIDDEN"}}]
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL)

	var out struct {
		Assets []struct {
			Tag string `json:"tag"`
		} `json:"assets"`
	}
	gqlErrs, err := c.Do(context.Background(), `{ assets { tag assignedTo { email } } }`, nil, &out)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if len(out.Assets) != 1 || out.Assets[0].Tag != "LT-100" {
		t.Fatalf("partial data missing: %+v", out)
	}
	if len(gqlErrs) != 1 || gqlErrs[0].Code() != "FORBIDDEN" {
		t.Fatalf("unexpected errors: %+v", gqlErrs)
	}
}

func TestQueryFailsOnTransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.Query(context.Background(), `{ info { name } }`, nil, nil); err == nil {
		t.Fatal("expected error on 503")
	}
}
