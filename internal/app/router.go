package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/schoolhub/schoolhub/internal/auth"
	"github.com/schoolhub/schoolhub/internal/classrooms"
	"github.com/schoolhub/schoolhub/internal/observability"
	"github.com/schoolhub/schoolhub/internal/schools"
	"github.com/schoolhub/schoolhub/internal/students"
	"github.com/schoolhub/schoolhub/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	TokenHandler      *auth.Handler
	UsersHandler      *users.Handler
	SchoolsHandler    *schools.Handler
	ClassroomsHandler *classrooms.Handler
	StudentsHandler   *students.Handler
	Metrics           *observability.Metrics
}

// NewRouter constructs the chi.Router with schoolhub defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", params.UsersHandler.MountRoutes)
		r.Route("/token", params.TokenHandler.MountRoutes)
		r.Route("/schools", params.SchoolsHandler.MountRoutes)
		r.Route("/classrooms", params.ClassroomsHandler.MountRoutes)
		r.Route("/students", params.StudentsHandler.MountRoutes)
	})

	return r
}
