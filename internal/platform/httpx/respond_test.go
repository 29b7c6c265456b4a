package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProblem(t *testing.T) {
	rr := httptest.NewRecorder()
	Problem(rr, http.StatusForbidden, "Forbidden", "csrf token mismatch")

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))
	var body ProblemDetail
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, ProblemDetail{Title: "Forbidden", Status: http.StatusForbidden, Detail: "csrf token mismatch"}, body)
}

func TestJSONHealth(t *testing.T) {
	rr := httptest.NewRecorder()
	JSON(rr, http.StatusOK, HealthStatus{Status: "ok", Checks: map[string]string{"redis": "ok"}})
	assert.JSONEq(t, `{"status":"ok","checks":{"redis":"ok"}}`, rr.Body.String())
}
