package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"atrium.org/internal/gqlclient"
)

// Smoke drives a running atrium-api through the public schedule, the
// viewer flow and a booking round-trip. It needs a token for a seeded
// account (see cmd/tokenctl).
func main() {
	endpoint := os.Getenv("ATRIUM_API_URL")
	if endpoint == "" {
		endpoint = "http://localhost:8080"
	}
	token := os.Getenv("ATRIUM_TOKEN")
	if token == "" {
		log.Fatal("ATRIUM_TOKEN is required (mint one with tokenctl)")
	}

	anon := gqlclient.New(endpoint)
	client := gqlclient.New(endpoint, gqlclient.WithToken(token))

	ctx, cancel := gqlclient.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Public surface must answer without credentials.
	var pub struct {
		Info struct {
			Name    string `json:"name"`
			Version string `json:"version"`
		} `json:"info"`
		Rooms []struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"rooms"`
	}
	if err := anon.Query(ctx, `{ info { name version } rooms { id name } }`, nil, &pub); err != nil {
		log.Fatalf("public query: %v", err)
	}
	if pub.Info.Name != "atrium-api" {
		log.Fatalf("unexpected service: %q", pub.Info.Name)
	}
	if len(pub.Rooms) == 0 {
		log.Fatal("no rooms seeded")
	}

	// The viewer must resolve for the supplied token.
	var who struct {
		Viewer struct {
			ID    int64  `json:"id"`
			Email string `json:"email"`
		} `json:"viewer"`
	}
	if err := client.Query(ctx, `{ viewer { id email } }`, nil, &who); err != nil {
		log.Fatalf("viewer query: %v", err)
	}

	// Booking round-trip: create, observe, cancel.
	start := time.Now().UTC().Add(time.Hour).Truncate(time.Minute)
	var created struct {
		CreateBooking struct {
			ID int64 `json:"id"`
		} `json:"createBooking"`
	}
	err := client.Query(ctx, `mutation($roomId: Int!, $startsAt: DateTime!, $endsAt: DateTime!) {
		createBooking(roomId: $roomId, startsAt: $startsAt, endsAt: $endsAt, notes: "smoke") { id }
	}`, map[string]any{
		"roomId":   pub.Rooms[0].ID,
		"startsAt": start.Format(time.RFC3339),
		"endsAt":   start.Add(30 * time.Minute).Format(time.RFC3339),
	}, &created)
	if err != nil {
		log.Fatalf("create booking: %v", err)
	}

	var listed struct {
		Bookings []struct {
			ID int64 `json:"id"`
		} `json:"bookings"`
	}
	if err := client.Query(ctx, `{ bookings { id } }`, nil, &listed); err != nil {
		log.Fatalf("list bookings: %v", err)
	}
	found := false
	for _, b := range listed.Bookings {
		if b.ID == created.CreateBooking.ID {
			found = true
		}
	}
	if !found {
		log.Fatalf("booking %d not visible in listing", created.CreateBooking.ID)
	}

	if err := client.Query(ctx, `mutation($id: Int!) { cancelBooking(id: $id) { id } }`,
		map[string]any{"id": created.CreateBooking.ID}, nil); err != nil {
		log.Fatalf("cancel booking: %v", err)
	}

	fmt.Printf("✅ atrium-api smoke test passed: viewer=%s booking=%d\n",
		who.Viewer.Email, created.CreateBooking.ID)
}
