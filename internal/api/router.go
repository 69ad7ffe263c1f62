package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/utakatalp/league-dashboard/internal/logger"
)

// RequestIDHeader carries the per-request id.
const RequestIDHeader = "X-Request-ID"

// NewRouter wires the API routes under /api/v1. Request ids and request
// logging wrap the whole chain, so unmatched routes and CORS preflights
// carry them too.
func NewRouter(h *Handlers, allowedOrigins []string) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(notFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	apiRouter := router.PathPrefix("/api/v1").Subrouter()
	apiRouter.NotFoundHandler = http.HandlerFunc(notFound)
	apiRouter.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	apiRouter.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	apiRouter.HandleFunc("/standings", h.Standings).Methods(http.MethodGet)
	apiRouter.HandleFunc("/standings/{group}", h.GroupStandings).Methods(http.MethodGet)

	apiRouter.HandleFunc("/matches/results", h.Results).Methods(http.MethodGet)
	apiRouter.HandleFunc("/matches/fixtures", h.Fixtures).Methods(http.MethodGet)

	apiRouter.HandleFunc("/stats/scorers", h.TopScorers).Methods(http.MethodGet)
	apiRouter.HandleFunc("/stats/cards", h.TopCards).Methods(http.MethodGet)

	apiRouter.HandleFunc("/knockout", h.Knockout).Methods(http.MethodGet)

	apiRouter.HandleFunc("/teams", h.Teams).Methods(http.MethodGet)
	apiRouter.HandleFunc("/teams/{id}", h.Team).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{RequestIDHeader},
	})
	return requestIDMiddleware(loggingMiddleware(c.Handler(router)))
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"request_id", w.Header().Get(RequestIDHeader),
		)
	})
}
