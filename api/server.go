// Package api - Thin, deterministic API layer
// The API is ONLY responsible for: input decoding, calculator orchestration, output serialization.
// The API NEVER performs pricing logic.
package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"msp-pricing/core/catalog"
	"msp-pricing/internal/errors"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// Server is the API server
type Server struct {
	router  chi.Router
	version string
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// NewServer creates a new API server pricing against cat
func NewServer(version string, cat *catalog.Catalog, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		router:  chi.NewRouter(),
		version: version,
		catalog: cat,
		logger:  logger,
	}

	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.router.Use(requestID)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)

	// Supporting endpoints
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/version", s.handleVersion)
	s.router.Get("/catalog", s.handleCatalog)

	// Core endpoints
	s.router.Route("/pricing", func(r chi.Router) {
		r.Post("/adhoc", s.handleAdhoc)
		r.Post("/prepaid", s.handlePrepaid)
		r.Post("/msp", s.handleMSP)
		r.Post("/compare", s.handleCompare)
	})
	s.router.Post("/savings", s.handleSavings)
	s.router.Post("/quotes", s.handleQuote)

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, errors.Newf(errors.TypeInvalidInput, "no route for %s %s", r.Method, r.URL.Path), http.StatusNotFound)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, errors.Newf(errors.TypeInvalidInput, "%s not allowed on %s", r.Method, r.URL.Path), http.StatusMethodNotAllowed)
	})
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, HealthResponse{
		Status:         "healthy",
		Version:        s.version,
		CatalogVersion: s.catalog.Version(),
		Time:           time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, VersionResponse{
		Version:            s.version,
		Engine:             "msp-pricing",
		APIVersion:         "v1",
		CatalogVersion:     s.catalog.Version(),
		CatalogFingerprint: s.catalog.Fingerprint().Hex(),
	}, http.StatusOK)
}

// decode reads a single JSON object into v, rejecting unknown fields
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if stderrors.As(err, &typeErr) && strings.HasSuffix(typeErr.Field, "quantity") {
			return errors.Wrapf(errors.TypeInvalidQuantity, err, "%s must be a whole number, got %s", typeErr.Field, typeErr.Value).
				WithContext("field", typeErr.Field)
		}
		return errors.Wrap(errors.TypeInvalidInput, "malformed request body", err)
	}
	if dec.More() {
		return errors.New(errors.TypeInvalidInput, "request body must hold a single JSON object")
	}
	return nil
}

// statusFor maps an error's type to an HTTP status
func statusFor(err error) int {
	switch errors.TypeOf(err) {
	case errors.TypeInvalidInput:
		return http.StatusBadRequest
	case errors.TypeInvalidQuantity, errors.TypeUnknownKey, errors.TypeUnknownService:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, status int) {
	detail := ErrorDetail{
		Code:      string(errors.TypeOf(err)),
		Message:   err.Error(),
		RequestID: RequestID(r.Context()),
	}
	var e *errors.Error
	if stderrors.As(err, &e) {
		detail.Context = e.Context
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("request_id", detail.RequestID), zap.Error(err))
		detail.Message = "internal error"
		detail.Context = nil
	}
	s.writeJSON(w, ErrorBody{Error: detail}, status)
}

// fail writes err with the status its type maps to
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.writeError(w, r, err, statusFor(err))
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
