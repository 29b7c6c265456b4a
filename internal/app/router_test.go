package app_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmc-console/hmc-console/internal/app"
	"github.com/hmc-console/hmc-console/internal/observability"
	"github.com/hmc-console/hmc-console/internal/platform/httpx"
	_ "github.com/hmc-console/hmc-console/testing"
)

func newConsole(t *testing.T) (http.Handler, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &app.Config{
		AppEnv:                "test",
		APIBaseURL:            "http://127.0.0.1:1/api",
		APITimeout:            time.Second,
		SessionSecret:         "s",
		SessionTTL:            time.Hour,
		CSRFSecret:            "c",
		SubmitGuardTTL:        time.Minute,
		NotFoundRedirectDelay: time.Second,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler, err := app.NewConsole(cfg, logger, client, observability.NewMetrics())
	require.NoError(t, err)
	return handler, mr
}

func TestHealthz(t *testing.T) {
	handler, _ := newConsole(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var status httpx.HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "ok", status.Checks["redis"])
}

func TestHealthzDegradedWithoutRedis(t *testing.T) {
	handler, mr := newConsole(t)
	mr.Close()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var status httpx.HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "degraded", status.Status)
}

func TestWelcomePage(t *testing.T) {
	handler, _ := newConsole(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="/login"`)
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestStaticAssetsAreCached(t *testing.T) {
	handler, _ := newConsole(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/css/app.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))
}

func TestMetricsEndpoint(t *testing.T) {
	handler, _ := newConsole(t)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hmc_http_requests_total")
}

func TestProtectedPagesRedirectToLogin(t *testing.T) {
	handler, _ := newConsole(t)

	for _, path := range []string{"/companies", "/companies/c1", "/companies/c1/departments/d1", "/trainings"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, "/login", rec.Header().Get("Location"), path)
	}
}
