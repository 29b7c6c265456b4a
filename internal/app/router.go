package app

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/hmc-console/hmc-console/internal/auth"
	"github.com/hmc-console/hmc-console/internal/companies"
	"github.com/hmc-console/hmc-console/internal/departments"
	"github.com/hmc-console/hmc-console/internal/employees"
	"github.com/hmc-console/hmc-console/internal/observability"
	"github.com/hmc-console/hmc-console/internal/platform/httpx"
	"github.com/hmc-console/hmc-console/internal/shared"
	"github.com/hmc-console/hmc-console/internal/trainings"
	"github.com/hmc-console/hmc-console/internal/view"
	"github.com/hmc-console/hmc-console/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	Pages              *view.Responder
	Redis              redis.UniversalClient
	SessionManager     *shared.SessionManager
	CSRFManager        *shared.CSRFManager
	AuthHandler        *auth.Handler
	CompaniesHandler   *companies.Handler
	DepartmentsHandler *departments.Handler
	EmployeesHandler   *employees.Handler
	TrainingsHandler   *trainings.Handler
	Metrics            *observability.Metrics
}

// NewRouter constructs the chi.Router with console defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	if !InTestMode() {
		r.Use(chimw.Logger)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		status := httpx.HealthStatus{Status: "ok", Checks: map[string]string{"redis": "ok"}}
		code := http.StatusOK
		if params.Redis != nil {
			if err := params.Redis.Ping(r.Context()).Err(); err != nil {
				params.Logger.Warn("health check redis", slog.Any("error", err))
				status.Status = "degraded"
				status.Checks["redis"] = err.Error()
				code = http.StatusServiceUnavailable
			}
		}
		httpx.JSON(w, code, status)
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		params.Pages.Render(w, r, "pages/welcome.html", "HMC", nil, http.StatusOK)
	})

	params.AuthHandler.MountRoutes(r)

	r.Group(func(r chi.Router) {
		r.Use(shared.RequireAuth)
		params.CompaniesHandler.MountRoutes(r)
		params.DepartmentsHandler.MountRoutes(r)
		params.EmployeesHandler.MountRoutes(r)
		params.TrainingsHandler.MountRoutes(r)
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	return r
}

// staticCacheHandler wraps a file server with Cache-Control headers.
// Static assets are cached for 1 hour in browser.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
