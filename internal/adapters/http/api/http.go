// Package api exposes the scoring service over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/shopspring/decimal"

	"github.com/okian/admitscore/internal/adapters/http/swagger"
	"github.com/okian/admitscore/internal/adapters/mq/queue"
	"github.com/okian/admitscore/internal/adapters/repository"
	service "github.com/okian/admitscore/internal/app"
	"github.com/okian/admitscore/internal/domain/model"
	"github.com/okian/admitscore/internal/domain/pattern"
)

// Dependencies required by HTTP handlers.
type Dependencies interface {
	StatsProvider

	Score(ctx context.Context, cand model.Candidate, ids []string) ([]model.Evaluation, error)
	Submit(ctx context.Context, sub service.Submission) (service.Receipt, error)
	Submission(ctx context.Context, id string) ([]model.Evaluation, error)
	Results(ctx context.Context, candidateID string) ([]model.Evaluation, error)

	Patterns() pattern.Registry
	Universities() []model.UniversityCondition
	University(id string) (model.UniversityCondition, bool)
}

// Server wires HTTP routes for the business API.
type Server struct {
	deps        Dependencies
	stats       *StatsHandler
	corsOrigins []string
	timeout     time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithCORSOrigins sets the allowed CORS origins.
func WithCORSOrigins(origins ...string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.corsOrigins = origins
		}
	}
}

// WithRequestTimeout bounds the time spent in one handler.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewServer creates a new API server.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		deps:        deps,
		stats:       NewStatsHandler(deps),
		corsOrigins: []string{"*"},
		timeout:     30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes returns the router with every endpoint registered.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(MetricsMiddleware)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", HandleHealth)
	r.Method(http.MethodGet, "/metrics", MetricsHandler())
	r.Get("/stats", s.stats.HandleStats)
	swagger.Register(r)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/score", s.handleScore)
		r.Post("/submissions", s.handleSubmit)
		r.Get("/submissions/{id}", s.handleGetSubmission)
		r.Get("/candidates/{id}/results", s.handleCandidateResults)
		r.Get("/patterns", s.handlePatterns)
		r.Get("/universities", s.handleUniversities)
		r.Get("/universities/{id}", s.handleUniversity)

		r.Route("/risk", func(r chi.Router) {
			r.Post("/aggregate", handleAggregate)
			r.Post("/grade-difference", handleGradeDifference)
			r.Post("/grade-cut", handleGradeCut)
			r.Post("/compatibility", handleCompatibility)
			r.Post("/series", handleSeries)
		})
	})
	return r
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError maps service and storage errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
	case errors.Is(err, queue.ErrFull):
		writeError(w, http.StatusTooManyRequests, "backpressure", WrapKind(op, ErrBackpressure, err))
	case errors.Is(err, queue.ErrClosed), errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
	case errors.Is(err, service.ErrInvalidCandidate),
		errors.Is(err, service.ErrTooManyUniversities),
		errors.Is(err, service.ErrNoUniversities):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, "timeout", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// round2 rounds a presented value to two decimals.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
