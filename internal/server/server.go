// Package server exposes the query resolver over HTTP. Handlers share the
// immutable index and never mutate it, so the read path needs no locking.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sells-group/polygon-api/internal/config"
	"github.com/sells-group/polygon-api/internal/index"
)

// New builds the HTTP handler for the query service.
func New(cfg config.ServerConfig, ix *index.Index) http.Handler {
	r := chi.NewRouter()

	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}))
	if cfg.RateLimitRPS > 0 {
		r.Use(rateLimit(cfg.RateLimitRPS))
	}

	r.Get("/health", handleHealth)
	r.Get("/query", handleQuery(ix))

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleQuery resolves ?lat=&lon= to the containing polygon's attributes.
// Missing or unparsable parameters default to 0.0; no match is a 200 with a
// JSON null body, never a transport error.
func handleQuery(ix *index.Index) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lat := parseCoord(r.URL.Query().Get("lat"))
		lon := parseCoord(r.URL.Query().Get("lon"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		rec := ix.Lookup(lat, lon)
		if rec == nil {
			_, _ = w.Write([]byte("null\n"))
			return
		}
		_ = json.NewEncoder(w).Encode(rec)
	}
}

// parseCoord parses a coordinate parameter, defaulting to 0.0.
func parseCoord(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0.0
	}
	return f
}
