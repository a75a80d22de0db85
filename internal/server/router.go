package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/starpath/pkg/buildinfo"
	"github.com/matzehuels/starpath/pkg/io"
	"github.com/matzehuels/starpath/pkg/observability"
	"github.com/matzehuels/starpath/pkg/pipeline"
)

// requestIDHeader carries the per-request ID in both directions.
const requestIDHeader = "X-Request-ID"

// Dependencies collects handler dependencies.
type Dependencies struct {
	Runner *pipeline.Runner

	// DefaultMap answers requests that carry no map. It may be nil.
	DefaultMap *io.Document
}

// NewRouter wires the HTTP routes exposed by the API.
func NewRouter(logger *log.Logger, deps Dependencies) http.Handler {
	h := &handlers{logger: logger, runner: deps.Runner, defaultMap: deps.DefaultMap}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(loggingMiddleware(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]any{
			"status":  "ok",
			"version": buildinfo.Version,
		})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/routes", h.createRoute)
		r.Get("/routes/{id}", h.getRoute)
		r.Get("/history", h.listHistory)
	})

	return r
}

// requestID echoes an incoming X-Request-ID or assigns a fresh UUID.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func loggingMiddleware(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

			rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)
			observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, rec.status, elapsed)
			logger.Info("request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"request_id", r.Header.Get(requestIDHeader),
				"duration_ms", elapsed.Milliseconds(),
			)
		})
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
