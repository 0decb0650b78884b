package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/leadforge/leadforge/internal/auth"
	"github.com/leadforge/leadforge/internal/calendar"
	"github.com/leadforge/leadforge/internal/company"
	"github.com/leadforge/leadforge/internal/forms"
	"github.com/leadforge/leadforge/internal/observability"
	"github.com/leadforge/leadforge/internal/submissions"
	"github.com/leadforge/leadforge/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	Tokens             *auth.TokenIssuer
	AuthHandler        *auth.Handler
	FormsHandler       *forms.Handler
	SubmissionsHandler *submissions.Handler
	CompanyHandler     *company.Handler
	CalendarHandler    *calendar.Handler
	JobHandler         *jobs.Handler
	Metrics            *observability.Metrics
}

// NewRouter constructs the chi.Router. Everything except the auth entry
// points and the health endpoints sits behind bearer-token auth.
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

	r.Route("/auth", func(r chi.Router) {
		params.AuthHandler.MountPublicRoutes(r)
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(params.Tokens))
			params.AuthHandler.MountProtectedRoutes(r)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(params.Tokens))

		r.Route("/forms", func(r chi.Router) {
			r.Route("/data", params.SubmissionsHandler.MountRoutes)
			params.FormsHandler.MountRoutes(r)
		})
		r.Route("/companies", params.CompanyHandler.MountRoutes)
		r.Route("/calendar", params.CalendarHandler.MountRoutes)
	})

	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
