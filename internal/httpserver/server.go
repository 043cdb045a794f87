// internal/httpserver/server.go
//
// HTTP server wiring for the Vache-Taureau backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Room endpoints: POST /rooms/create, POST /rooms/join, GET /rooms,
//     POST /rooms/leave (registered in rooms.go).
//   - Game endpoints: POST /game/start, POST /game/guess, GET /game/state
//     (registered in game.go).
//   - Maps the game core's error taxonomy onto HTTP statuses:
//     validation → 400, not found → 404, phase/capacity conflict → 409.
//
// Notes:
//   - Every room mutation runs under that room's keyed lock, so operations
//     against one room are atomic and serialized while distinct rooms
//     proceed in parallel.
//   - CORS is origin-aware and credentials-enabled.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vachetaureau/go-server/internal/config"
	"github.com/vachetaureau/go-server/internal/game"
	"github.com/vachetaureau/go-server/internal/lock"
	"github.com/vachetaureau/go-server/internal/store"
)

// Server bundles router, directory backend, per-room locks and config.
type Server struct {
	r     *chi.Mux
	dir   store.Directory
	locks *lock.Keyed
	cfg   *config.Config
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg *config.Config, dir store.Directory) *Server {
	s := &Server{r: chi.NewRouter(), dir: dir, locks: lock.New(), cfg: cfg}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsAllow(cfg.Server.CORSOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"vachetaureau-go","endpoints":["/health","POST /rooms/create","POST /rooms/join","GET /rooms","POST /rooms/leave","POST /game/start","POST /game/guess","GET /game/state"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.mountRoomRoutes()
	s.mountGameRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsAllow enables credentialed CORS for a single configured origin.
func corsAllow(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ helpers ------------------------------------

// decodeBody decodes a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr emits the {"error": "..."} failure shape.
func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeLookupErr reports a failed room lookup: 404 only when the room is
// genuinely absent, 500 when the directory itself failed (a Redis transport
// or decode error must not masquerade as a missing room).
func writeLookupErr(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeErr(w, http.StatusNotFound, "room not found")
		return
	}
	writeErr(w, http.StatusInternalServerError, "lookup_failed")
}

// gameStatus maps a game core error onto an HTTP status. Not-found entities
// are distinct from malformed input, which is distinct from phase conflicts,
// so clients can choose the right message.
func gameStatus(err error) int {
	switch {
	case game.IsValidation(err):
		return http.StatusBadRequest
	case game.IsNotFound(err):
		return http.StatusNotFound
	case game.IsConflict(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
