package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/hmc-console/hmc-console/internal/apiclient"
	"github.com/hmc-console/hmc-console/internal/auth"
	"github.com/hmc-console/hmc-console/internal/companies"
	"github.com/hmc-console/hmc-console/internal/departments"
	"github.com/hmc-console/hmc-console/internal/employees"
	"github.com/hmc-console/hmc-console/internal/observability"
	"github.com/hmc-console/hmc-console/internal/shared"
	"github.com/hmc-console/hmc-console/internal/trainings"
	"github.com/hmc-console/hmc-console/internal/view"
)

// SessionCookieName names the console session cookie.
const SessionCookieName = "hmc_session"

// NewConsole assembles the console handler: one backend client for the
// process, the Redis backed session store and submit guard, and every page
// handler mounted on the router. metrics may be nil.
func NewConsole(cfg *Config, logger *slog.Logger, client redis.UniversalClient, metrics *observability.Metrics) (http.Handler, error) {
	templates, err := view.NewEngine()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	sessions := shared.NewSessionManager(client, SessionCookieName, cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrf := shared.NewCSRFManager(cfg.CSRFSecret)

	opts := []apiclient.Option{
		apiclient.WithTimeout(cfg.APITimeout),
		apiclient.WithRequestEditor(apiclient.Bearer(shared.TokenFromContext)),
	}
	if metrics != nil {
		opts = append(opts, apiclient.WithObserver(metrics))
	}
	api := apiclient.New(cfg.APIBaseURL, opts...)

	pages := &view.Responder{
		Logger:      logger,
		Templates:   templates,
		CSRF:        csrf,
		Submit:      shared.NewSubmitGuard(client, cfg.SubmitGuardTTL),
		NotFound:    view.NotFoundRedirect{Delay: cfg.NotFoundRedirectDelay},
		DisplayName: auth.DisplayName,
	}

	return NewRouter(RouterParams{
		Logger:             logger,
		Config:             cfg,
		Pages:              pages,
		Redis:              client,
		SessionManager:     sessions,
		CSRFManager:        csrf,
		AuthHandler:        auth.NewHandler(logger, api, pages),
		CompaniesHandler:   companies.NewHandler(logger, api, pages),
		DepartmentsHandler: departments.NewHandler(logger, api, pages),
		EmployeesHandler:   employees.NewHandler(logger, api, pages),
		TrainingsHandler:   trainings.NewHandler(logger, api, pages),
		Metrics:            metrics,
	}), nil
}
