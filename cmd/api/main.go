package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"atrium.org/internal/auth"
	"atrium.org/internal/graphqlapi"
	"atrium.org/internal/obs"
	"atrium.org/internal/platform"
	"atrium.org/internal/store/pg"
	"atrium.org/internal/stream"
)

var (
	version = "0.3.0"
	commit  = "dev"
)

func main() {
	obs.Init()
	obs.InitBuildInfo(version, commit)

	addr := os.Getenv("ATRIUM_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	secret := os.Getenv("ATRIUM_AUTH_SECRET")
	if secret == "" {
		log.Fatal("ATRIUM_AUTH_SECRET is required")
	}
	verifier, err := auth.NewVerifier(secret, os.Getenv("ATRIUM_AUTH_ISSUER"))
	if err != nil {
		log.Fatalf("auth: %v", err)
	}

	// PostgreSQL when a DSN is provided; otherwise an in-memory store with
	// demo fixtures so the service runs standalone during development.
	var (
		store platform.Store
		ready graphqlapi.ReadyProbe
	)
	if dsn := os.Getenv("ATRIUM_PG_DSN"); dsn != "" {
		pgStore, err := pg.Open(dsn)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		defer pgStore.Close()
		store = pgStore
		ready = graphqlapi.ReadyProbe{DB: pgStore.DB()}
	} else {
		log.Print("ATRIUM_PG_DSN not set, using in-memory store with demo data")
		store = demoStore()
	}

	events := stream.New()
	service := platform.NewService(store, events)

	api, err := graphqlapi.New(graphqlapi.Config{
		Store:         store,
		Service:       service,
		Events:        events,
		Verifier:      verifier,
		Ready:         ready,
		Version:       version,
		RateBurst:     50,
		RatePerSecond: 25,
	})
	if err != nil {
		log.Fatalf("api: %v", err)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting atrium-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()
	obs.SetReady(true)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")
	obs.SetReady(false)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	log.Println("Stopped")
}

func demoStore() *platform.Memory {
	mem := platform.NewMemory()
	ctx := context.Background()

	for _, u := range []*platform.User{
		{Email: "admin@atrium.local", Name: "Atrium Admin", Roles: []string{"ADMIN"}, Status: "active"},
		{Email: "manager@atrium.local", Name: "Atrium Manager", Roles: "MANAGER", Status: "active"},
		{Email: "staff@atrium.local", Name: "Atrium Staff", Status: "active"},
	} {
		if err := mem.Users().Create(ctx, u); err != nil {
			log.Fatalf("seed users: %v", err)
		}
	}
	mem.AddRoom(platform.Room{Name: "Aurora", Capacity: 8, Location: "3F east"})
	mem.AddRoom(platform.Room{Name: "Borealis", Capacity: 4, Location: "3F west"})
	mem.AddAsset(platform.Asset{Tag: "LT-100", Name: "ThinkPad X1"})
	mem.AddSupply(platform.Supply{Name: "Coffee beans 1kg", Quantity: 12, ReorderLevel: 4})
	return mem
}
