// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/okian/winedex/internal/adapters/repository"
	service "github.com/okian/winedex/internal/app"
	"github.com/okian/winedex/internal/domain/classify"
	"github.com/okian/winedex/internal/domain/model"
	"github.com/okian/winedex/internal/domain/query"
	"github.com/okian/winedex/internal/domain/types"
	"github.com/okian/winedex/internal/validation"
	"github.com/okian/winedex/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	List(ctx context.Context, q service.ListQuery) ([]types.Wine, error)
	Get(ctx context.Context, id int) (types.Wine, error)
	Add(ctx context.Context, w types.Wine) (types.Wine, error)
	Update(ctx context.Context, id int, w types.Wine) (types.Wine, error)
	Delete(ctx context.Context, id int) error
	Card(ctx context.Context, id int) (service.Card, error)

	CollectionStats(ctx context.Context) (model.CollectionStats, error)
	Groups(ctx context.Context, by, sortMode string) ([]query.Group, error)
	Reclassify(ctx context.Context) (int, error)
	UniqueValues(ctx context.Context, field string) ([]string, error)
	Reference() classify.Reference
}

// Server wires HTTP routes for the wine journal API.
type Server struct {
	router *chi.Mux
	logger logger.Logger

	allowedOrigins []string

	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	winesHandler      *WinesHandler
	collectionHandler *CollectionHandler
}

// NewServer creates a new API server with all handlers and routes.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		router:         chi.NewRouter(),
		logger:         logger.Nop(),
		allowedOrigins: []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.winesHandler = NewWinesHandler(deps, s.logger)
	s.collectionHandler = NewCollectionHandler(deps, s.logger)

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Router exposes the chi router so other packages can mount extra routes.
func (s *Server) Router() chi.Router {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	r := s.router

	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/metrics", MetricsMiddleware(s.healthHandler.HandleHealth, "metrics"))
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	r.Route("/api", func(r chi.Router) {
		r.Route("/wines", func(r chi.Router) {
			r.Get("/", MetricsMiddleware(s.winesHandler.HandleList, "wines_list"))
			r.Post("/", MetricsMiddleware(s.winesHandler.HandleCreate, "wines_create"))
			r.Get("/{id}", MetricsMiddleware(s.winesHandler.HandleGet, "wines_get"))
			r.Put("/{id}", MetricsMiddleware(s.winesHandler.HandleUpdate, "wines_update"))
			r.Delete("/{id}", MetricsMiddleware(s.winesHandler.HandleDelete, "wines_delete"))
			r.Get("/{id}/card", MetricsMiddleware(s.winesHandler.HandleCard, "wines_card"))
		})

		r.Route("/collection", func(r chi.Router) {
			r.Get("/stats", MetricsMiddleware(s.collectionHandler.HandleStats, "collection_stats"))
			r.Get("/groups", MetricsMiddleware(s.collectionHandler.HandleGroups, "collection_groups"))
			r.Post("/reclassify", MetricsMiddleware(s.collectionHandler.HandleReclassify, "collection_reclassify"))
		})

		r.Get("/values/{field}", MetricsMiddleware(s.collectionHandler.HandleValues, "values"))
		r.Get("/reference", MetricsMiddleware(s.collectionHandler.HandleReference, "reference"))
	})
}

type errorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
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

// writeServiceError translates domain and store errors into HTTP responses.
func writeServiceError(ctx context.Context, w http.ResponseWriter, log logger.Logger, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    "validation_failed",
			Message: validation.ErrValidation.Error(),
			Details: verr.Fields,
		})
	case errors.Is(err, query.ErrUnknownField):
		writeError(w, http.StatusBadRequest, "unknown_field", err)
	case errors.Is(err, query.ErrInvalidOrder):
		writeError(w, http.StatusBadRequest, "invalid_order", err)
	case errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case isNotFound(err):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
	default:
		log.Error(ctx, "request failed", logger.Error(err), logger.String("request_id", GetRequestID(ctx)))
		writeError(w, http.StatusInternalServerError, "internal", nil)
	}
}

// isNotFound allows the API to translate upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
