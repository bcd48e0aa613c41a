package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/workforce-api/internal/dto"
	"github.com/workforce-api/internal/middleware"
)

// Router настраивает маршруты API
type Router struct {
	logger         *slog.Logger
	deptHandler    *DepartmentHandler
	empHandler     *EmployeeHandler
	projectHandler *ProjectHandler

	allowedOrigins []string
	metrics        *middleware.Metrics
	metricsHandler http.Handler
}

// RouterOption настраивает Router
type RouterOption func(*Router)

// WithCORS разрешает запросы с указанных источников
func WithCORS(origins []string) RouterOption {
	return func(r *Router) {
		r.allowedOrigins = origins
	}
}

// WithMetrics включает сбор метрик и endpoint /metrics
func WithMetrics(m *middleware.Metrics, handler http.Handler) RouterOption {
	return func(r *Router) {
		r.metrics = m
		r.metricsHandler = handler
	}
}

// NewRouter создаёт новый роутер
func NewRouter(
	deptHandler *DepartmentHandler,
	empHandler *EmployeeHandler,
	projectHandler *ProjectHandler,
	logger *slog.Logger,
	opts ...RouterOption,
) *Router {
	r := &Router{
		logger:         logger,
		deptHandler:    deptHandler,
		empHandler:     empHandler,
		projectHandler: projectHandler,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Setup настраивает все маршруты
func (r *Router) Setup() http.Handler {
	mux := chi.NewRouter()

	mux.Use(middleware.Recoverer(r.logger))
	mux.Use(middleware.Logger(r.logger))
	if r.metrics != nil {
		mux.Use(r.metrics.Handler)
	}
	if len(r.allowedOrigins) > 0 {
		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins: r.allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	mux.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		r.deptHandler.respondError(w, http.StatusNotFound, "not found")
	})
	mux.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		r.deptHandler.respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	if r.metricsHandler != nil {
		mux.Handle("/metrics", r.metricsHandler)
	}

	mux.Group(func(api chi.Router) {
		api.Use(middleware.ContentType)

		api.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			r.deptHandler.respondJSON(w, http.StatusOK, dto.HealthResponse{
				Status:    "healthy",
				Timestamp: time.Now().UTC(),
			})
		})

		api.Route("/api/departments", func(rt chi.Router) {
			rt.Get("/", r.deptHandler.GetAll)
			rt.Post("/", r.deptHandler.Create)
			rt.Get("/search", r.deptHandler.Search)
			rt.Get("/{id}", r.deptHandler.GetByID)
			rt.Put("/{id}", r.deptHandler.Update)
			rt.Delete("/{id}", r.deptHandler.Delete)
			rt.Get("/{id}/employees", r.deptHandler.GetEmployees)
		})

		api.Route("/api/employees", func(rt chi.Router) {
			rt.Get("/", r.empHandler.GetAll)
			rt.Post("/", r.empHandler.Create)
			rt.Get("/search", r.empHandler.Search)
			rt.Get("/{id}", r.empHandler.GetByID)
			rt.Put("/{id}", r.empHandler.Update)
			rt.Delete("/{id}", r.empHandler.Delete)
			rt.Post("/{id}/projects/{projectId}", r.empHandler.AssignToProject)
			rt.Delete("/{id}/projects/{projectId}", r.empHandler.RemoveFromProject)
		})

		api.Route("/api/projects", func(rt chi.Router) {
			rt.Get("/", r.projectHandler.GetAll)
			rt.Post("/", r.projectHandler.Create)
			rt.Get("/search", r.projectHandler.Search)
			rt.Get("/{id}", r.projectHandler.GetByID)
			rt.Put("/{id}", r.projectHandler.Update)
			rt.Delete("/{id}", r.projectHandler.Delete)
			rt.Get("/{id}/employees", r.projectHandler.GetEmployees)
		})
	})

	return mux
}
