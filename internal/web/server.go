// Package web serves the workspace over HTTP: the login and main pages, a
// JSON API mapping UI events onto store mutations, and a health check.
package web

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/dyluth/slate/internal/app"
	"github.com/dyluth/slate/internal/router"
	"github.com/dyluth/slate/pkg/edgeconfig"
)

// Pinger checks connectivity to the backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server wires the store, config gateway and route guard onto HTTP.
type Server struct {
	store    *app.Store
	config   *edgeconfig.Client
	sessions *Sessions
	pinger   Pinger
	guard    *router.Guard
	server   *http.Server
}

// NewServer creates a server. pinger may be nil, in which case /healthz
// always reports healthy.
func NewServer(store *app.Store, config *edgeconfig.Client, sessions *Sessions, pinger Pinger) *Server {
	s := &Server{
		store:    store,
		config:   config,
		sessions: sessions,
		pinger:   pinger,
	}
	s.guard = router.NewGuard(router.SessionFunc(s.loggedIn))
	return s
}

// Handler returns the root handler with the route guard applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Pages
	mux.HandleFunc("GET /{$}", s.handleLoginPage)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /logout", s.handleLogout)
	mux.HandleFunc("GET /main", s.handleMainPage)

	// Session and state
	mux.HandleFunc("GET /api/session", s.handleSession)
	mux.HandleFunc("GET /api/state", s.requireSession(s.handleState))
	mux.HandleFunc("POST /api/theme/toggle", s.requireSession(s.handleToggleTheme))

	// Tabs
	mux.HandleFunc("POST /api/tabs", s.requireSession(s.handleAddTab))
	mux.HandleFunc("PUT /api/tabs/{id}", s.requireSession(s.handleUpdateTab))
	mux.HandleFunc("DELETE /api/tabs/{id}", s.requireSession(s.handleRemoveTab))
	mux.HandleFunc("POST /api/tabs/{id}/select", s.requireSession(s.handleSwitchTab))
	mux.HandleFunc("GET /api/tabs/{id}/preview", s.requireSession(s.handlePreview))

	// Blackboards
	mux.HandleFunc("PUT /api/blackboards/{id}", s.requireSession(s.handleUpdateBlackboard))
	mux.HandleFunc("POST /api/autosave", s.requireSession(s.handleAutoSave))

	// Config
	mux.HandleFunc("GET /api/config/greeting", s.requireSession(s.handleGreeting))
	mux.HandleFunc("GET /api/config/flags/{name}", s.requireSession(s.handleFeatureFlag))

	mux.HandleFunc("GET /healthz", s.handleHealth)

	return s.guard.Middleware(mux)
}

// Start listens on addr in the background.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("[Web] Server error: %v", err)
		}
	}()

	log.Printf("[Web] Listening on %s", addr)
	return nil
}

// Shutdown gracefully stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// loggedIn is the session state consulted by the guard: the store's flag and
// a valid session cookie must both be present.
func (s *Server) loggedIn(r *http.Request) bool {
	if !s.store.IsLoggedIn() {
		return false
	}
	_, ok := s.sessions.FromRequest(r)
	return ok
}

// requireSession rejects API calls without a session.
func (s *Server) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.loggedIn(r) {
			writeError(w, http.StatusUnauthorized, "not logged in")
			return
		}
		next(w, r)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[Web] Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
