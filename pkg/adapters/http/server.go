package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/digits"
	"github.com/aretw0/digits/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request identifier echoed in every response.
const RequestIDHeader = "X-Request-ID"

// Engine defines the interface for the Digits solver core.
type Engine interface {
	Solve(ctx context.Context, target int, operands []int, all bool) (*domain.Result, error)
	Targets(ctx context.Context, operands []int) (*domain.Result, error)
}

// SolveRequest is the body of POST /solve.
type SolveRequest struct {
	Target   *int  `json:"target" validate:"required"`
	Operands []int `json:"operands" validate:"required,min=1"`
	All      bool  `json:"all"`
}

// TargetsRequest is the body of POST /targets.
type TargetsRequest struct {
	Operands []int `json:"operands" validate:"required,min=1"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

var validate = validator.New()

// Server serves the JSON API.
type Server struct {
	Engine  Engine
	metrics http.Handler
}

// Option configures the handler.
type Option func(*Server)

// WithMetrics mounts a Prometheus handler on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	server := &Server{Engine: engine}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(enableCORS)

	r.Post("/solve", server.Solve)
	r.Post("/targets", server.Targets)
	r.Get("/healthz", server.GetHealth)
	r.Get("/info", server.GetInfo)
	if server.metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.metrics)
	}
	return r
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Solve handles the POST /solve request.
func (s *Server) Solve(w http.ResponseWriter, r *http.Request) {
	var body SolveRequest
	if !decode(w, r, &body) {
		return
	}

	result, err := s.Engine.Solve(r.Context(), *body.Target, body.Operands, body.All)
	if err != nil {
		writeEngineError(w, r, "Solve", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Targets handles the POST /targets request.
func (s *Server) Targets(w http.ResponseWriter, r *http.Request) {
	var body TargetsRequest
	if !decode(w, r, &body) {
		return
	}

	result, err := s.Engine.Targets(r.Context(), body.Operands)
	if err != nil {
		writeEngineError(w, r, "Targets", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "digits-http",
		"version": strings.TrimSpace(digits.Version),
	})
}

// decode reads and validates a JSON body, writing a 400 response on failure.
func decode(w http.ResponseWriter, r *http.Request, body any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(body); err != nil {
		slog.Warn("Invalid request body", "path", r.URL.Path, "error", err)
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	if err := validate.Struct(body); err != nil {
		writeError(w, r, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("field %q failed %q", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

func writeEngineError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrTooManyOperands):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrNoOperands):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, r, http.StatusServiceUnavailable, err.Error())
	default:
		slog.Error(op+" failed", "error", err)
		writeError(w, r, http.StatusInternalServerError, fmt.Sprintf("%s error: %v", strings.ToLower(op), err))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:     msg,
		RequestID: w.Header().Get(RequestIDHeader),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}
