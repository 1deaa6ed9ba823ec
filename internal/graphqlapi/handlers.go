package graphqlapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/graphql-go/graphql"

	"atrium.org/internal/audit"
	"atrium.org/internal/auth"
	"atrium.org/internal/obs"
	"atrium.org/internal/platform"
	"atrium.org/internal/stream"
)

// ReadyProbe reports whether the backing store is reachable.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// Config wires the API's dependencies.
type Config struct {
	Store    platform.Store
	Service  *platform.Service
	Events   *stream.Stream
	Verifier *auth.Verifier
	Ready    ReadyProbe
	Version  string

	// MaxBodyBytes caps the request body; zero applies the default of 1 MiB.
	MaxBodyBytes int64
	// RateBurst/RatePerSecond tune the per-client limiter; zero disables it.
	RateBurst     int
	RatePerSecond int
}

// API is the HTTP layer: one GraphQL endpoint plus operational routes.
type API struct {
	mux        *http.ServeMux
	schema     graphql.Schema
	identity   *auth.Identity
	verifier   *auth.Verifier
	events     *stream.Stream
	readyProbe ReadyProbe
	version    string
	cfg        Config
}

func New(cfg Config) (*API, error) {
	resolver := NewResolver(cfg.Store, cfg.Service, cfg.Events, cfg.Version)
	schema, err := NewSchema(resolver)
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}

	a := &API{
		mux:        http.NewServeMux(),
		schema:     schema,
		identity:   auth.NewIdentity(userSource{users: cfg.Store.Users()}),
		verifier:   cfg.Verifier,
		events:     cfg.Events,
		readyProbe: cfg.Ready,
		version:    cfg.Version,
		cfg:        cfg,
	}

	a.mux.Handle("/graphql", a.withViewer(http.HandlerFunc(a.GraphQL)))
	a.mux.Handle("/events", a.withViewer(http.HandlerFunc(a.Stream)))

	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/readyz", a.Ready)
	a.mux.HandleFunc("/v1/info", a.Info)
	a.mux.Handle("/metrics", obs.Handler())

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return a, nil
}

// Handler returns the full middleware chain around the mux.
func (a *API) Handler() http.Handler {
	maxBody := a.cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	var h http.Handler = a.mux
	h = MaxBodyBytes(h, maxBody)
	if a.cfg.RateBurst > 0 && a.cfg.RatePerSecond > 0 {
		h = RateLimit(h, a.cfg.RateBurst, a.cfg.RatePerSecond)
	}
	h = CORS(h)
	h = SecurityHeaders(h)
	h = LoggingJSON(h)
	h = RequestID(h)
	return obs.Instrument(h)
}

// --- operational handlers ---

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "atrium-api",
		"version": a.version,
	})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		obs.SetReady(false)
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	obs.SetReady(true)
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}

func (a *API) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "atrium-api",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": a.version,
	})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	payload := map[string]any{
		"error": msg,
	}
	if rid := audit.RequestIDFromContext(r.Context()); rid != "" {
		payload["request_id"] = rid
	}
	writeJSON(w, code, payload)
}
